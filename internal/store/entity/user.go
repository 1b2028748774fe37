package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the fixed set of user roles. Authorization is an exact match
// between the stored role and the role an action requires; ADMIN is a
// distinct role, not a superuser.
type Role string

const (
	RoleAdmin              Role = "ADMIN"
	RoleStoreIncharge      Role = "STORE_INCHARGE"
	RoleProcurementManager Role = "PROCUREMENT_MANAGER"
	RoleAccountsManager    Role = "ACCOUNTS_MANAGER"

	// RoleAny passes any authenticated user.
	RoleAny Role = "ALL"
)

// Valid reports whether r names a role that can be stored on a user.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleStoreIncharge, RoleProcurementManager, RoleAccountsManager:
		return true
	}
	return false
}

// Action is a permission-gated operation on the document pipelines.
type Action string

const (
	ActionCreateInvoice  Action = "invoice.create"
	ActionUpdateInvoice  Action = "invoice.update"
	ActionDeleteInvoice  Action = "invoice.delete"
	ActionApproveInvoice Action = "invoice.approve"
	ActionApprovePayment Action = "invoice.approve_payment"
	ActionCreateDc       Action = "dc.create"
	ActionApproveDc      Action = "dc.approve"
)

// actionRoles maps each gated action to the single role allowed to invoke it.
var actionRoles = map[Action]Role{
	ActionCreateInvoice:  RoleStoreIncharge,
	ActionUpdateInvoice:  RoleStoreIncharge,
	ActionDeleteInvoice:  RoleStoreIncharge,
	ActionApproveInvoice: RoleProcurementManager,
	ActionApprovePayment: RoleAccountsManager,
	ActionCreateDc:       RoleStoreIncharge,
	ActionApproveDc:      RoleProcurementManager,
}

// RoleFor returns the role an action requires.
func RoleFor(action Action) Role {
	return actionRoles[action]
}

// User is an application account. Passwords are stored as bcrypt hashes.
type User struct {
	ID           string    `json:"id" gorm:"type:varchar(36);primaryKey"`
	Email        string    `json:"email" gorm:"size:128;not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:128;not null"`
	Role         Role      `json:"role" gorm:"size:32;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

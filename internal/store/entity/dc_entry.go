package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DcEntry is one delivery-challan receipt. Unlike an invoice it carries no
// pricing, only the received quantity, and has no child entities.
type DcEntry struct {
	ID                  string          `json:"id" gorm:"type:varchar(36);primaryKey"`
	DateOfReceipt       time.Time       `json:"dateOfReceipt" gorm:"not null"`
	VendorName          string          `json:"vendorName" gorm:"size:256;not null;index"`
	DcNumber            string          `json:"dcNumber" gorm:"size:64;not null;index"`
	VehicleNumber       string          `json:"vehicleNumber" gorm:"size:32"`
	MaterialDescription string          `json:"materialDescription" gorm:"size:512"`
	UOM                 string          `json:"uom" gorm:"column:uom;size:16"`
	ReceivedQuantity    decimal.Decimal `json:"receivedQuantity" gorm:"type:decimal(15,3);not null"`
	PurposeOfMaterial   string          `json:"purposeOfMaterial" gorm:"size:256"`
	DcAttachment        string          `json:"dcAttachment" gorm:"size:512"`
	BMRNNumber          string          `json:"bmrnNumber" gorm:"column:bmrn_number;size:64"`
	Remarks             string          `json:"remarks" gorm:"type:text"`
	Approved            bool            `json:"approved" gorm:"not null;default:false;index"`
	CreatedBy           string          `json:"createdBy" gorm:"size:36;index"`
	CreatedAt           time.Time       `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt           time.Time       `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (DcEntry) TableName() string {
	return "dc_entries"
}

func (d *DcEntry) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}

package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Repositories is the set of data-access objects, wired once in main.
type Repositories struct {
	User    *UserRepository
	Invoice *MaterialInvoiceRepository
	Dc      *DcEntryRepository
	Counter *CounterRepository
}

// NewRepositories creates the repository set on a shared gorm handle.
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:    NewUserRepository(db),
		Invoice: NewMaterialInvoiceRepository(db),
		Dc:      NewDcEntryRepository(db),
		Counter: NewCounterRepository(db),
	}
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
)

// MaterialInvoiceRepository reads and writes material invoices and their
// line items. Mutating methods that belong to a larger unit of work take
// the caller's transaction handle.
type MaterialInvoiceRepository struct {
	db *gorm.DB
}

func NewMaterialInvoiceRepository(db *gorm.DB) *MaterialInvoiceRepository {
	return &MaterialInvoiceRepository{db: db}
}

// FindByID loads an invoice with its line items.
func (r *MaterialInvoiceRepository) FindByID(ctx context.Context, id string) (*entity.MaterialInvoice, error) {
	var invoice entity.MaterialInvoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// List returns all invoices with items, newest first.
func (r *MaterialInvoiceRepository) List(ctx context.Context) ([]entity.MaterialInvoice, error) {
	var invoices []entity.MaterialInvoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// CreateTx inserts an invoice together with its items.
func (r *MaterialInvoiceRepository) CreateTx(ctx context.Context, tx *gorm.DB, invoice *entity.MaterialInvoice) error {
	return tx.WithContext(ctx).Create(invoice).Error
}

// ReplaceTx saves the parent and swaps its items wholesale: the existing
// rows are deleted and the submitted set inserted, never diffed.
func (r *MaterialInvoiceRepository) ReplaceTx(ctx context.Context, tx *gorm.DB, invoice *entity.MaterialInvoice) error {
	if err := tx.WithContext(ctx).
		Where("material_invoice_id = ?", invoice.ID).
		Delete(&entity.InvoiceMaterialItem{}).Error; err != nil {
		return err
	}
	items := invoice.Items
	invoice.Items = nil
	if err := tx.WithContext(ctx).Save(invoice).Error; err != nil {
		invoice.Items = items
		return err
	}
	for i := range items {
		items[i].ID = ""
		items[i].MaterialInvoiceID = invoice.ID
	}
	if len(items) > 0 {
		if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}
	}
	invoice.Items = items
	return nil
}

// Delete removes an invoice and, via the FK constraint, its items.
func (r *MaterialInvoiceRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).
		Where("material_invoice_id = ?", id).
		Delete(&entity.InvoiceMaterialItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.MaterialInvoice{}).Error
}

// SetApproved flips the material-approval flag.
func (r *MaterialInvoiceRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	res := r.db.WithContext(ctx).
		Model(&entity.MaterialInvoice{}).
		Where("id = ?", id).
		Update("approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetPaid flips the payment flag and stamps or clears paid_on.
func (r *MaterialInvoiceRepository) SetPaid(ctx context.Context, id string, paid bool, paidOn interface{}) error {
	res := r.db.WithContext(ctx).
		Model(&entity.MaterialInvoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"paid": paid, "paid_on": paidOn})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MaxNumericSuffix returns the highest numeric suffix stored in the given
// reference column. Used once at startup to backfill the counters from
// data created before counter rows existed.
func (r *MaterialInvoiceRepository) MaxNumericSuffix(ctx context.Context, column string, parse func(string) int64) (int64, error) {
	var refs []string
	if err := r.db.WithContext(ctx).
		Model(&entity.MaterialInvoice{}).
		Pluck(column, &refs).Error; err != nil {
		return 0, err
	}
	var max int64
	for _, ref := range refs {
		if n := parse(ref); n > max {
			max = n
		}
	}
	return max, nil
}

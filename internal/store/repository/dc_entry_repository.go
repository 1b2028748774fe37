package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
)

// DcEntryRepository reads and writes delivery-challan entries.
type DcEntryRepository struct {
	db *gorm.DB
}

func NewDcEntryRepository(db *gorm.DB) *DcEntryRepository {
	return &DcEntryRepository{db: db}
}

// FindByID loads a DC entry by primary key.
func (r *DcEntryRepository) FindByID(ctx context.Context, id string) (*entity.DcEntry, error) {
	var dc entity.DcEntry
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &dc, nil
}

// List returns all DC entries, newest first.
func (r *DcEntryRepository) List(ctx context.Context) ([]entity.DcEntry, error) {
	var dcs []entity.DcEntry
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&dcs).Error
	return dcs, err
}

// Create inserts a DC entry.
func (r *DcEntryRepository) Create(ctx context.Context, dc *entity.DcEntry) error {
	return r.db.WithContext(ctx).Create(dc).Error
}

// SetApproved flips the approval flag.
func (r *DcEntryRepository) SetApproved(ctx context.Context, id string, approved bool) error {
	res := r.db.WithContext(ctx).
		Model(&entity.DcEntry{}).
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

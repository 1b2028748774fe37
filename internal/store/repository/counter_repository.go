package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/entity"
	"github.com/Srinu-likitha/store-management-mvp/internal/store/numbering"
)

// CounterRepository manages the per-sequence counter rows that back
// reference-number assignment.
type CounterRepository struct {
	db *gorm.DB
}

func NewCounterRepository(db *gorm.DB) *CounterRepository {
	return &CounterRepository{db: db}
}

// NextTx increments the counter for kind inside the caller's transaction
// and returns the formatted reference. The UPDATE takes a row lock, so the
// value is unique even under concurrent creations; if the surrounding
// transaction rolls back, so does the increment.
func (r *CounterRepository) NextTx(ctx context.Context, tx *gorm.DB, kind numbering.Kind) (string, error) {
	res := tx.WithContext(ctx).
		Model(&entity.DocumentCounter{}).
		Where("kind = ?", string(kind)).
		Update("value", gorm.Expr("value + 1"))
	if res.Error != nil {
		return "", fmt.Errorf("increment counter %s: %w", kind, res.Error)
	}
	if res.RowsAffected == 0 {
		return "", fmt.Errorf("counter %s not seeded", kind)
	}

	var counter entity.DocumentCounter
	if err := tx.WithContext(ctx).
		Where("kind = ?", string(kind)).
		First(&counter).Error; err != nil {
		return "", fmt.Errorf("read counter %s: %w", kind, err)
	}
	return numbering.Format(kind, counter.Value), nil
}

// Seed ensures a counter row exists for kind, starting at value. An
// existing row is only moved forward, never back.
func (r *CounterRepository) Seed(ctx context.Context, kind numbering.Kind, value int64) error {
	var counter entity.DocumentCounter
	err := r.db.WithContext(ctx).
		Where("kind = ?", string(kind)).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.WithContext(ctx).Create(&entity.DocumentCounter{
			Kind:  string(kind),
			Value: value,
		}).Error
	}
	if err != nil {
		return err
	}
	if counter.Value < value {
		return r.db.WithContext(ctx).
			Model(&entity.DocumentCounter{}).
			Where("kind = ?", string(kind)).
			Update("value", value).Error
	}
	return nil
}

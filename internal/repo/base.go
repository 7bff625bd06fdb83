package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base provides the connection and the row helpers shared by the store, item
// and tag repositories.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx, or the raw connection when ctx is nil.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// ExistsByID reports whether a row of model's table has the given primary key.
func (b Base) ExistsByID(ctx context.Context, model any, id uint) (bool, error) {
	var count int64
	if err := b.DB(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByIDWithTx hard-deletes the row with id from model's table and returns
// gorm.ErrRecordNotFound when nothing matched.
func DeleteByIDWithTx(tx *gorm.DB, model any, id uint) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	res := tx.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

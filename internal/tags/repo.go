package tags

import (
	"context"
	"fmt"

	"github.com/angelmondragon/store-service/internal/repo"
	"github.com/angelmondragon/store-service/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles tag and item/tag link persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to tag operations.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Store").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("items.id") })
}

// FindByID loads a tag with its store and items.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := withRelations(r.DB(ctx)).First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListByStore returns the tags carrying storeID, ordered by id.
func (r *Repository) ListByStore(ctx context.Context, storeID uint) ([]models.Tag, error) {
	var tags []models.Tag
	if err := withRelations(r.DB(ctx)).
		Where("tags.store_id = ?", storeID).
		Order("tags.id").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// FindByIDWithTx loads the bare tag row using the provided transaction.
func (r *Repository) FindByIDWithTx(tx *gorm.DB, id uint) (*models.Tag, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var tag models.Tag
	if err := tx.First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// CreateWithTx inserts the tag.
func (r *Repository) CreateWithTx(tx *gorm.DB, tag *models.Tag) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if tag == nil {
		return fmt.Errorf("tag is required")
	}
	return tx.Omit(clause.Associations).Create(tag).Error
}

// CountLinksWithTx counts the items currently linked to tagID.
func (r *Repository) CountLinksWithTx(tx *gorm.DB, tagID uint) (int64, error) {
	if tx == nil {
		return 0, gorm.ErrInvalidTransaction
	}
	var count int64
	err := tx.Model(&models.ItemTag{}).Where("tag_id = ?", tagID).Count(&count).Error
	return count, err
}

// DeleteWithTx removes the tag row.
func (r *Repository) DeleteWithTx(tx *gorm.DB, id uint) error {
	return repo.DeleteByIDWithTx(tx, &models.Tag{}, id)
}

// LinkWithTx records the item/tag pair; an existing link is left untouched.
func (r *Repository) LinkWithTx(tx *gorm.DB, itemID, tagID uint) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	link := models.ItemTag{ItemID: itemID, TagID: tagID}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_id"}, {Name: "tag_id"}},
		DoNothing: true,
	}).Create(&link).Error
}

// UnlinkWithTx removes the item/tag pair if present.
func (r *Repository) UnlinkWithTx(tx *gorm.DB, itemID, tagID uint) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	return tx.Where("item_id = ? AND tag_id = ?", itemID, tagID).Delete(&models.ItemTag{}).Error
}

package items

import (
	"context"
	"fmt"

	"github.com/angelmondragon/store-service/internal/repo"
	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles item persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to item operations.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Store").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") })
}

// FindByID loads an item with its store and tags.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := withRelations(r.DB(ctx)).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns every item with its store and tags, ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.Item, error) {
	var items []models.Item
	if err := withRelations(r.DB(ctx)).Order("items.id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByIDWithTx loads the bare item row using the provided transaction.
func (r *Repository) FindByIDWithTx(tx *gorm.DB, id uint) (*models.Item, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var item models.Item
	if err := tx.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateWithTx inserts the item. A non-zero ID is written as given and the
// id sequence is moved past it.
func (r *Repository) CreateWithTx(tx *gorm.DB, item *models.Item) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if item == nil {
		return fmt.Errorf("item is required")
	}
	explicitID := item.ID != 0
	if err := tx.Omit(clause.Associations).Create(item).Error; err != nil {
		return err
	}
	if explicitID {
		return db.SyncSequence(tx, models.Item{}.TableName())
	}
	return nil
}

// UpdateWithTx writes the item's scalar columns.
func (r *Repository) UpdateWithTx(tx *gorm.DB, item *models.Item) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if item == nil {
		return fmt.Errorf("item is required")
	}
	return tx.Model(item).
		Updates(map[string]any{"name": item.Name, "price": item.Price, "store_id": item.StoreID}).Error
}

// DeleteWithTx removes the item; the schema cascades to its tag links.
func (r *Repository) DeleteWithTx(tx *gorm.DB, id uint) error {
	return repo.DeleteByIDWithTx(tx, &models.Item{}, id)
}

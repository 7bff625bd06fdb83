package stores

import (
	"context"
	"fmt"

	"github.com/angelmondragon/store-service/internal/repo"
	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository handles store persistence.
type Repository struct {
	repo.Base
}

// NewRepository binds a GORM DB to store operations.
func NewRepository(conn *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(conn)}
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("items.id") }).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.id") })
}

// FindByID loads a store with its items and tags.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := withRelations(r.DB(ctx)).First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// List returns every store with its items and tags, ordered by id.
func (r *Repository) List(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := withRelations(r.DB(ctx)).Order("stores.id").Find(&stores).Error; err != nil {
		return nil, err
	}
	return stores, nil
}

// Exists reports whether a store row with id is present.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	return r.ExistsByID(ctx, &models.Store{}, id)
}

// FindByIDWithTx loads the bare store row using the provided transaction.
func (r *Repository) FindByIDWithTx(tx *gorm.DB, id uint) (*models.Store, error) {
	if tx == nil {
		return nil, gorm.ErrInvalidTransaction
	}
	var store models.Store
	if err := tx.First(&store, id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// CreateWithTx inserts the store. A non-zero ID is written as given and the
// id sequence is moved past it.
func (r *Repository) CreateWithTx(tx *gorm.DB, store *models.Store) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if store == nil {
		return fmt.Errorf("store is required")
	}
	explicitID := store.ID != 0
	if err := tx.Omit(clause.Associations).Create(store).Error; err != nil {
		return err
	}
	if explicitID {
		return db.SyncSequence(tx, models.Store{}.TableName())
	}
	return nil
}

// UpdateNameWithTx renames an existing store.
func (r *Repository) UpdateNameWithTx(tx *gorm.DB, store *models.Store, name string) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return tx.Model(store).Omit(clause.Associations).Update("name", name).Error
}

// DeleteWithTx removes the store; the schema cascades to its items and their links.
func (r *Repository) DeleteWithTx(tx *gorm.DB, id uint) error {
	return repo.DeleteByIDWithTx(tx, &models.Store{}, id)
}

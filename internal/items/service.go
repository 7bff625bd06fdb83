package items

import (
	"context"
	"fmt"

	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/db/models"
	pkgerrors "github.com/angelmondragon/store-service/pkg/errors"
	"gorm.io/gorm"
)

type itemRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Item, error)
	List(ctx context.Context) ([]models.Item, error)
	FindByIDWithTx(tx *gorm.DB, id uint) (*models.Item, error)
	CreateWithTx(tx *gorm.DB, item *models.Item) error
	UpdateWithTx(tx *gorm.DB, item *models.Item) error
	DeleteWithTx(tx *gorm.DB, id uint) error
}

type storeLookup interface {
	FindByIDWithTx(tx *gorm.DB, id uint) (*models.Store, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes item operations.
type Service interface {
	GetByID(ctx context.Context, id uint) (*ItemDTO, error)
	List(ctx context.Context) ([]ItemDTO, error)
	Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	Upsert(ctx context.Context, id uint, input UpdateItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo   itemRepository
	stores storeLookup
	tx     txRunner
}

// NewService builds an item service. stores is consulted to reject items
// pointing at a missing store.
func NewService(repo itemRepository, stores storeLookup, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, stores: stores, tx: tx}, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	return FromModel(item), nil
}

func (s *service) List(ctx context.Context) ([]ItemDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}
	return FromModels(items), nil
}

func (s *service) Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	if input.Price == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"price": "is required"})
	}
	item := &models.Item{Name: input.Name, Price: *input.Price, StoreID: input.StoreID}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.requireStore(tx, item.StoreID); err != nil {
			return err
		}
		return s.repo.CreateWithTx(tx, item)
	})
	if err != nil {
		return nil, mapWriteError(err, "create item")
	}
	return s.GetByID(ctx, item.ID)
}

// Upsert applies the supplied fields to an existing item, or creates the
// item under id when it does not exist.
func (s *service) Upsert(ctx context.Context, id uint, input UpdateItemInput) (*ItemDTO, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		existing, err := s.repo.FindByIDWithTx(tx, id)
		switch {
		case err == nil:
			if input.Name != nil {
				existing.Name = *input.Name
			}
			if input.Price != nil {
				existing.Price = *input.Price
			}
			if input.StoreID != nil && *input.StoreID != existing.StoreID {
				if err := s.requireStore(tx, *input.StoreID); err != nil {
					return err
				}
				existing.StoreID = *input.StoreID
			}
			return s.repo.UpdateWithTx(tx, existing)
		case db.IsNotFound(err):
			if input.Name == nil || input.Price == nil || input.StoreID == nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "name, price and store_id are required to create an item").
					WithDetails(missingCreateFields(input))
			}
			if err := s.requireStore(tx, *input.StoreID); err != nil {
				return err
			}
			return s.repo.CreateWithTx(tx, &models.Item{
				ID:      id,
				Name:    *input.Name,
				Price:   *input.Price,
				StoreID: *input.StoreID,
			})
		default:
			return err
		}
	})
	if err != nil {
		return nil, mapWriteError(err, "upsert item")
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteWithTx(tx, id)
	})
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	return nil
}

func (s *service) requireStore(tx *gorm.DB, storeID uint) error {
	if _, err := s.stores.FindByIDWithTx(tx, storeID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return err
	}
	return nil
}

func missingCreateFields(input UpdateItemInput) map[string]string {
	details := map[string]string{}
	if input.Name == nil {
		details["name"] = "is required"
	}
	if input.Price == nil {
		details["price"] = "is required"
	}
	if input.StoreID == nil {
		details["store_id"] = "is required"
	}
	return details
}

func mapWriteError(err error, step string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	switch {
	case db.IsUniqueViolation(err, ""):
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Item already exists")
	case db.IsForeignKeyViolation(err):
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "store not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}

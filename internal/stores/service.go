package stores

import (
	"context"
	"fmt"

	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/db/models"
	pkgerrors "github.com/angelmondragon/store-service/pkg/errors"
	"gorm.io/gorm"
)

type storeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Store, error)
	List(ctx context.Context) ([]models.Store, error)
	FindByIDWithTx(tx *gorm.DB, id uint) (*models.Store, error)
	CreateWithTx(tx *gorm.DB, store *models.Store) error
	UpdateNameWithTx(tx *gorm.DB, store *models.Store, name string) error
	DeleteWithTx(tx *gorm.DB, id uint) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes store operations.
type Service interface {
	GetByID(ctx context.Context, id uint) (*StoreDTO, error)
	List(ctx context.Context) ([]StoreDTO, error)
	Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error)
	Upsert(ctx context.Context, id uint, input UpdateStoreInput) (*StoreDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo storeRepository
	tx   txRunner
}

// NewService builds a store service with the provided repository.
func NewService(repo storeRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx}, nil
}

func (s *service) GetByID(ctx context.Context, id uint) (*StoreDTO, error) {
	store, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return FromModel(store), nil
}

func (s *service) List(ctx context.Context) ([]StoreDTO, error) {
	stores, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	return FromModels(stores), nil
}

func (s *service) Create(ctx context.Context, input CreateStoreInput) (*StoreDTO, error) {
	store := &models.Store{Name: input.Name}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.CreateWithTx(tx, store)
	})
	if err != nil {
		return nil, mapWriteError(err, "create store")
	}
	return s.GetByID(ctx, store.ID)
}

// Upsert renames the store when it exists and otherwise creates it under id.
func (s *service) Upsert(ctx context.Context, id uint, input UpdateStoreInput) (*StoreDTO, error) {
	if input.StoreID != id {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store_id does not match path").
			WithDetails(map[string]any{"store_id": "must equal the store id in the path"})
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		existing, err := s.repo.FindByIDWithTx(tx, id)
		switch {
		case err == nil:
			return s.repo.UpdateNameWithTx(tx, existing, input.Name)
		case db.IsNotFound(err):
			return s.repo.CreateWithTx(tx, &models.Store{ID: id, Name: input.Name})
		default:
			return err
		}
	})
	if err != nil {
		return nil, mapWriteError(err, "upsert store")
	}
	return s.GetByID(ctx, id)
}

// Delete removes the store and, through the schema, its items. Tags stay.
func (s *service) Delete(ctx context.Context, id uint) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.DeleteWithTx(tx, id)
	})
	if err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete store")
	}
	return nil
}

func mapWriteError(err error, step string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if db.IsUniqueViolation(err, "") {
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Store already exists")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}

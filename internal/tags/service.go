package tags

import (
	"context"
	"fmt"

	"github.com/angelmondragon/store-service/internal/items"
	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/db/models"
	pkgerrors "github.com/angelmondragon/store-service/pkg/errors"
	"gorm.io/gorm"
)

const unlinkedMessage = "removed"

type tagRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Tag, error)
	ListByStore(ctx context.Context, storeID uint) ([]models.Tag, error)
	FindByIDWithTx(tx *gorm.DB, id uint) (*models.Tag, error)
	CreateWithTx(tx *gorm.DB, tag *models.Tag) error
	CountLinksWithTx(tx *gorm.DB, tagID uint) (int64, error)
	DeleteWithTx(tx *gorm.DB, id uint) error
	LinkWithTx(tx *gorm.DB, itemID, tagID uint) error
	UnlinkWithTx(tx *gorm.DB, itemID, tagID uint) error
}

type storeLookup interface {
	Exists(ctx context.Context, id uint) (bool, error)
	FindByIDWithTx(tx *gorm.DB, id uint) (*models.Store, error)
}

type itemLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Item, error)
	FindByIDWithTx(tx *gorm.DB, id uint) (*models.Item, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes tag operations and the item/tag linking protocol.
type Service interface {
	ListByStore(ctx context.Context, storeID uint) ([]TagDTO, error)
	Create(ctx context.Context, storeID uint, input CreateTagInput) (*TagDTO, error)
	GetByID(ctx context.Context, id uint) (*TagDTO, error)
	Delete(ctx context.Context, id uint) error
	Link(ctx context.Context, itemID, tagID uint) (*TagDTO, error)
	Unlink(ctx context.Context, itemID, tagID uint) (*UnlinkResult, error)
}

type service struct {
	repo   tagRepository
	stores storeLookup
	items  itemLookup
	tx     txRunner
}

// NewService builds a tag service over the tag, store and item repositories.
func NewService(repo tagRepository, stores storeLookup, items itemLookup, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tag repository required")
	}
	if stores == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if items == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, stores: stores, items: items, tx: tx}, nil
}

func (s *service) ListByStore(ctx context.Context, storeID uint) ([]TagDTO, error) {
	ok, err := s.stores.Exists(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
	}

	tags, err := s.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tags")
	}
	return FromModels(tags), nil
}

// Create adds a tag to an existing store. The store reference is checked
// here because tags.store_id carries no foreign key.
func (s *service) Create(ctx context.Context, storeID uint, input CreateTagInput) (*TagDTO, error) {
	tag := &models.Tag{Name: input.Name, StoreID: storeID}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.stores.FindByIDWithTx(tx, storeID); err != nil {
			if db.IsNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "store not found")
			}
			return err
		}
		return s.repo.CreateWithTx(tx, tag)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Tag already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create tag")
	}
	return s.GetByID(ctx, tag.ID)
}

func (s *service) GetByID(ctx context.Context, id uint) (*TagDTO, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tag not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tag")
	}
	return FromModel(tag), nil
}

// Delete removes a tag only while no item is linked to it.
func (s *service) Delete(ctx context.Context, id uint) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.FindByIDWithTx(tx, id); err != nil {
			return err
		}
		linked, err := s.repo.CountLinksWithTx(tx, id)
		if err != nil {
			return err
		}
		if linked > 0 {
			return tagInUse(linked)
		}
		return s.repo.DeleteWithTx(tx, id)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		switch {
		case db.IsNotFound(err):
			return pkgerrors.New(pkgerrors.CodeNotFound, "tag not found")
		case db.IsForeignKeyViolation(err):
			// a link committed between the count and the delete
			return pkgerrors.Wrap(pkgerrors.CodeStateConflict, err, "Tag is not free, associated with one or more items")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete tag")
	}
	return nil
}

// Link associates an item with a tag. Linking an already linked pair succeeds
// without writing.
func (s *service) Link(ctx context.Context, itemID, tagID uint) (*TagDTO, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.requirePair(tx, itemID, tagID); err != nil {
			return err
		}
		return s.repo.LinkWithTx(tx, itemID, tagID)
	})
	if err != nil {
		return nil, mapLinkError(err, "link item and tag")
	}
	return s.GetByID(ctx, tagID)
}

// Unlink dissociates an item from a tag. Unlinking a pair that is not linked
// succeeds without writing.
func (s *service) Unlink(ctx context.Context, itemID, tagID uint) (*UnlinkResult, error) {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.requirePair(tx, itemID, tagID); err != nil {
			return err
		}
		return s.repo.UnlinkWithTx(tx, itemID, tagID)
	})
	if err != nil {
		return nil, mapLinkError(err, "unlink item and tag")
	}

	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}
	tag, err := s.GetByID(ctx, tagID)
	if err != nil {
		return nil, err
	}
	return &UnlinkResult{
		Message: unlinkedMessage,
		Item:    items.FromModel(item),
		Tag:     tag,
	}, nil
}

func (s *service) requirePair(tx *gorm.DB, itemID, tagID uint) error {
	if _, err := s.repo.FindByIDWithTx(tx, tagID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "tag not found")
		}
		return err
	}
	if _, err := s.items.FindByIDWithTx(tx, itemID); err != nil {
		if db.IsNotFound(err) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return err
	}
	return nil
}

func tagInUse(linked int64) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "Tag is not free, associated with one or more items").
		WithDetails(map[string]any{"linked_items": linked})
}

func mapLinkError(err error, step string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if db.IsForeignKeyViolation(err) {
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "item or tag not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, step)
}

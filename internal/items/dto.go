package items

import (
	"github.com/angelmondragon/store-service/pkg/db/models"
	"github.com/angelmondragon/store-service/pkg/types"
)

// ItemDTO is the item payload with its store and tags as plain projections.
type ItemDTO struct {
	ProductID uint              `json:"product_id"`
	Name      string            `json:"name"`
	Price     float64           `json:"price"`
	StoreID   uint              `json:"store_id"`
	Store     *types.PlainStore `json:"store"`
	Tags      []types.PlainTag  `json:"tags"`
}

// CreateItemInput holds creation-time data for a new item.
type CreateItemInput struct {
	Name    string   `json:"name" validate:"required,max=80"`
	Price   *float64 `json:"price" validate:"required"`
	StoreID uint     `json:"store_id" validate:"required,max=2147483647"`
}

// UpdateItemInput is the PUT body. Absent fields are left unchanged; all
// three are needed when the item does not exist yet.
type UpdateItemInput struct {
	Name    *string  `json:"name,omitempty" validate:"omitempty,min=1,max=80"`
	Price   *float64 `json:"price,omitempty"`
	StoreID *uint    `json:"store_id,omitempty" validate:"omitempty,gt=0,max=2147483647"`
}

// FromModel maps the persisted item into a DTO.
func FromModel(m *models.Item) *ItemDTO {
	if m == nil {
		return nil
	}
	return &ItemDTO{
		ProductID: m.ID,
		Name:      m.Name,
		Price:     m.Price,
		StoreID:   m.StoreID,
		Store:     types.PlainStoreFromModel(m.Store),
		Tags:      types.PlainTagsFromModels(m.Tags),
	}
}

// FromModels maps a slice of items, never returning nil.
func FromModels(ms []models.Item) []ItemDTO {
	out := make([]ItemDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}

package stores

import (
	"github.com/angelmondragon/store-service/pkg/db/models"
	"github.com/angelmondragon/store-service/pkg/types"
)

// StoreDTO is the store payload with its items and tags flattened to plain projections.
type StoreDTO struct {
	StoreID uint              `json:"store_id"`
	Name    string            `json:"name"`
	Items   []types.PlainItem `json:"items"`
	Tags    []types.PlainTag  `json:"tags"`
}

// CreateStoreInput holds creation-time data for a new store.
type CreateStoreInput struct {
	Name string `json:"name" validate:"required,max=80"`
}

// UpdateStoreInput is the PUT body; StoreID must match the path id.
type UpdateStoreInput struct {
	StoreID uint   `json:"store_id" validate:"required,max=2147483647"`
	Name    string `json:"name" validate:"required,max=80"`
}

// FromModel maps the persisted store into a DTO.
func FromModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		StoreID: m.ID,
		Name:    m.Name,
		Items:   types.PlainItemsFromModels(m.Items),
		Tags:    types.PlainTagsFromModels(m.Tags),
	}
}

// FromModels maps a slice of stores, never returning nil.
func FromModels(ms []models.Store) []StoreDTO {
	out := make([]StoreDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}

package tags

import (
	"github.com/angelmondragon/store-service/internal/items"
	"github.com/angelmondragon/store-service/pkg/db/models"
	"github.com/angelmondragon/store-service/pkg/types"
)

// TagDTO is the tag payload. Store is null once the owning store is gone.
type TagDTO struct {
	TagID   uint              `json:"tag_id"`
	Name    string            `json:"name"`
	StoreID uint              `json:"store_id"`
	Store   *types.PlainStore `json:"store"`
	Items   []types.PlainItem `json:"items"`
}

// CreateTagInput holds creation-time data for a new tag.
type CreateTagInput struct {
	Name string `json:"name" validate:"required,max=80"`
}

// UnlinkResult confirms removal of an item/tag link.
type UnlinkResult struct {
	Message string         `json:"message"`
	Item    *items.ItemDTO `json:"item"`
	Tag     *TagDTO        `json:"tag"`
}

// FromModel maps the persisted tag into a DTO.
func FromModel(m *models.Tag) *TagDTO {
	if m == nil {
		return nil
	}
	return &TagDTO{
		TagID:   m.ID,
		Name:    m.Name,
		StoreID: m.StoreID,
		Store:   types.PlainStoreFromModel(m.Store),
		Items:   types.PlainItemsFromModels(m.Items),
	}
}

// FromModels maps a slice of tags, never returning nil.
func FromModels(ms []models.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(ms))
	for i := range ms {
		out = append(out, *FromModel(&ms[i]))
	}
	return out
}

package types

import "github.com/angelmondragon/store-service/pkg/db/models"

// PlainStore is the non-recursive store projection embedded in item and tag payloads.
type PlainStore struct {
	StoreID uint   `json:"store_id"`
	Name    string `json:"name"`
}

// PlainItem is the non-recursive item projection embedded in store and tag payloads.
type PlainItem struct {
	ProductID uint    `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
}

// PlainTag is the non-recursive tag projection embedded in store and item payloads.
type PlainTag struct {
	TagID uint   `json:"tag_id"`
	Name  string `json:"name"`
}

func PlainStoreFromModel(m *models.Store) *PlainStore {
	if m == nil || m.ID == 0 {
		return nil
	}
	return &PlainStore{StoreID: m.ID, Name: m.Name}
}

func PlainItemsFromModels(items []models.Item) []PlainItem {
	out := make([]PlainItem, 0, len(items))
	for _, it := range items {
		out = append(out, PlainItem{ProductID: it.ID, Name: it.Name, Price: it.Price})
	}
	return out
}

func PlainTagsFromModels(tags []models.Tag) []PlainTag {
	out := make([]PlainTag, 0, len(tags))
	for _, tg := range tags {
		out = append(out, PlainTag{TagID: tg.ID, Name: tg.Name})
	}
	return out
}

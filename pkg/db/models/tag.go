package models

import "time"

// Tag is a store-owned label that can be attached to many items.
// StoreID carries no foreign key; tags survive deletion of their store.
type Tag struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;size:80;not null;uniqueIndex:tags_name_key"`
	StoreID   uint      `gorm:"column:store_id;not null;index:tags_store_id_idx"`
	Store     *Store    `gorm:"foreignKey:StoreID"`
	Items     []Item    `gorm:"many2many:item_tags"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Tag) TableName() string {
	return "tags"
}

package models

import "time"

// Item is a product sold by exactly one store.
type Item struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;size:80;not null;uniqueIndex:items_name_key"`
	Price     float64   `gorm:"column:price;not null"`
	StoreID   uint      `gorm:"column:store_id;not null;index:items_store_id_idx"`
	Store     *Store    `gorm:"foreignKey:StoreID"`
	Tags      []Tag     `gorm:"many2many:item_tags"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Item) TableName() string {
	return "items"
}

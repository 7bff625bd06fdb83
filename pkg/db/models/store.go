package models

import "time"

// Store is a shop owning items and tags.
type Store struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;size:80;not null;uniqueIndex:stores_name_key"`
	Items     []Item    `gorm:"foreignKey:StoreID;constraint:OnDelete:CASCADE"`
	Tags      []Tag     `gorm:"foreignKey:StoreID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Store) TableName() string {
	return "stores"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// ItemTag is one row of the item/tag association table.
type ItemTag struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	ItemID    uint      `gorm:"column:item_id;not null;uniqueIndex:item_tags_item_tag_key"`
	TagID     uint      `gorm:"column:tag_id;not null;uniqueIndex:item_tags_item_tag_key;index:item_tags_tag_id_idx"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ItemTag) TableName() string {
	return "item_tags"
}

// SetupJoinTables registers ItemTag as the join model for both sides of the
// item/tag relation so preloads read the same table the link protocol writes.
func SetupJoinTables(conn *gorm.DB) error {
	if err := conn.SetupJoinTable(&Item{}, "Tags", &ItemTag{}); err != nil {
		return err
	}
	return conn.SetupJoinTable(&Tag{}, "Items", &ItemTag{})
}

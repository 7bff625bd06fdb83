package db_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/store-service/pkg/config"
	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/db/dbtest"
	"github.com/angelmondragon/store-service/pkg/db/models"
	"github.com/angelmondragon/store-service/pkg/migrate"
)

func countStores(t *testing.T, client *db.Client) int64 {
	t.Helper()
	var count int64
	require.NoError(t, client.DB().Model(&models.Store{}).Count(&count).Error)
	return count
}

func TestWithTxCommitsAndRollsBackStores(t *testing.T) {
	client := dbtest.New(t)
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models.Store{Name: "committed"}).Error
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), countStores(t, client))

	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Store{Name: "rolled back"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.EqualError(t, err, "boom")
	assert.Equal(t, int64(1), countStores(t, client))
}

func TestWithTxRollsBackAndRepanics(t *testing.T) {
	client := dbtest.New(t)

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
			if err := tx.Create(&models.Store{Name: "half written"}).Error; err != nil {
				return err
			}
			panic("kaboom")
		})
	})
	assert.Equal(t, int64(0), countStores(t, client))
}

func TestPingAndDialect(t *testing.T) {
	client := dbtest.New(t)
	require.NoError(t, client.Ping(context.Background()))
	assert.Equal(t, "sqlite", client.Dialect())
}

func TestOpenRegistersItemTagJoinTable(t *testing.T) {
	client := dbtest.New(t)
	conn := client.DB()

	assoc := conn.Model(&models.Item{}).Association("Tags")
	require.NoError(t, assoc.Error)
	require.NotNil(t, assoc.Relationship.JoinTable)
	assert.Equal(t, "item_tags", assoc.Relationship.JoinTable.Table)
	assert.Equal(t, reflect.TypeOf(models.ItemTag{}), assoc.Relationship.JoinTable.ModelType)

	store := models.Store{Name: "Acme"}
	require.NoError(t, conn.Create(&store).Error)
	item := models.Item{Name: "Soap", Price: 2, StoreID: store.ID}
	require.NoError(t, conn.Omit("Tags").Create(&item).Error)
	tag := models.Tag{Name: "Bath", StoreID: store.ID}
	require.NoError(t, conn.Omit("Items").Create(&tag).Error)
	require.NoError(t, conn.Create(&models.ItemTag{ItemID: item.ID, TagID: tag.ID}).Error)

	var loaded models.Item
	require.NoError(t, conn.Preload("Tags").First(&loaded, item.ID).Error)
	require.Len(t, loaded.Tags, 1)
	assert.Equal(t, tag.ID, loaded.Tags[0].ID)

	var back models.Tag
	require.NoError(t, conn.Preload("Items").First(&back, tag.ID).Error)
	require.Len(t, back.Items, 1)
	assert.Equal(t, item.ID, back.Items[0].ID)
}

func TestNewEnforcesForeignKeysOnExplicitSQLiteDSN(t *testing.T) {
	ctx := context.Background()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	client, err := db.New(ctx, config.DBConfig{Driver: config.DriverSQLite, DSN: dsn}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.DB().DB()
	require.NoError(t, err)
	_, err = migrate.Up(ctx, sqlDB, config.DriverSQLite)
	require.NoError(t, err)

	var enabled int
	require.NoError(t, client.DB().Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)

	conn := client.DB()
	orphan := models.Item{Name: "Orphan", Price: 1, StoreID: 999}
	err = conn.Omit("Tags", "Store").Create(&orphan).Error
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err), "unexpected error %v", err)

	store := models.Store{Name: "Acme"}
	require.NoError(t, conn.Create(&store).Error)
	require.NoError(t, conn.Omit("Tags", "Store").Create(&models.Item{Name: "Soap", Price: 1, StoreID: store.ID}).Error)
	require.NoError(t, conn.Delete(&models.Store{}, store.ID).Error)

	var items int64
	require.NoError(t, conn.Model(&models.Item{}).Count(&items).Error)
	assert.Zero(t, items, "store delete must cascade to its items")
}

func TestSQLiteDSNForcesForeignKeys(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "store.db", want: "store.db?_foreign_keys=on"},
		{in: "file:x?mode=memory&cache=shared", want: "file:x?_foreign_keys=on&cache=shared&mode=memory"},
		{in: "file:x?_foreign_keys=off", want: "file:x?_foreign_keys=on"},
		{in: "file:x?_fk=0&mode=rwc", want: "file:x?_foreign_keys=on&mode=rwc"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, db.SQLiteDSN(tt.in), tt.in)
	}
}

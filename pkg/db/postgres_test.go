package db_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/store-service/pkg/config"
	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/db/models"
	"github.com/angelmondragon/store-service/pkg/migrate"
	"gorm.io/gorm"
)

// Runs only against a disposable database: every table is dropped afterwards.
func TestPostgresSequenceSync(t *testing.T) {
	dsn := os.Getenv("STORESVC_DB_DSN")
	if dsn == "" {
		t.Skip("STORESVC_DB_DSN not set")
	}
	ctx := context.Background()

	client, err := db.New(ctx, config.DBConfig{DSN: dsn, Driver: config.DriverPostgres}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.DB().DB()
	require.NoError(t, err)
	_, err = migrate.Up(ctx, sqlDB, config.DriverPostgres)
	require.NoError(t, err)
	t.Cleanup(func() {
		for {
			if _, err := migrate.Down(ctx, sqlDB, config.DriverPostgres); err != nil {
				return
			}
		}
	})

	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Store{ID: 50, Name: "explicit"}).Error; err != nil {
			return err
		}
		return db.SyncSequence(tx, models.Store{}.TableName())
	})
	require.NoError(t, err)

	next := models.Store{Name: "generated"}
	require.NoError(t, client.DB().WithContext(ctx).Create(&next).Error)
	require.Equal(t, uint(51), next.ID)
}

// Package dbtest opens throwaway SQLite databases carrying the real schema.
package dbtest

import (
	"context"
	"fmt"
	"testing"

	"github.com/angelmondragon/store-service/pkg/config"
	"github.com/angelmondragon/store-service/pkg/db"
	"github.com/angelmondragon/store-service/pkg/migrate"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
)

// DSN returns a private in-memory SQLite DSN with foreign keys enforced.
func DSN() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
}

// New returns a migrated client over a fresh in-memory database that is
// closed when the test ends.
func New(t testing.TB) *db.Client {
	t.Helper()

	conn, err := db.Open(sqlite.Open(db.SQLiteDSN(DSN())))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if _, err := migrate.Up(context.Background(), sqlDB, config.DriverSQLite); err != nil {
		_ = sqlDB.Close()
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db.NewFromConn(conn)
}

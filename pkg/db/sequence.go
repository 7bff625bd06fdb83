package db

import (
	"fmt"

	"gorm.io/gorm"
)

// SyncSequence moves the identity sequence of table past its highest id.
// Rows written with a client-supplied id (PUT upserts) bypass the sequence,
// so the next generated id would collide without this. SQLite derives the
// next rowid from the table itself and needs nothing.
func SyncSequence(tx *gorm.DB, table string) error {
	if tx == nil {
		return gorm.ErrInvalidTransaction
	}
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%[1]s', 'id'), COALESCE((SELECT MAX(id) FROM %[1]s), 0) + 1, false)`,
		table,
	)
	if err := tx.Exec(query).Error; err != nil {
		return fmt.Errorf("sync %s id sequence: %w", table, err)
	}
	return nil
}

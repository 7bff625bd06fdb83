package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGColumn     string `json:"pg_column,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`

	SQLiteCode       int    `json:"sqlite_code,omitempty"`
	SQLiteConstraint string `json:"sqlite_constraint,omitempty"`
	SQLiteTable      string `json:"sqlite_table,omitempty"`
	SQLiteColumn     string `json:"sqlite_column,omitempty"`

	// Violation is "unique" or "foreign_key" when GORM translated the driver error.
	Violation string `json:"violation,omitempty"`
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		d.Violation = "unique"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		d.Violation = "foreign_key"
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		d.PGCode = pgxErr.Code
		d.PGConstraint = pgxErr.ConstraintName
		d.PGTable = pgxErr.TableName
		d.PGColumn = pgxErr.ColumnName
		d.PGDetail = pgxErr.Detail
		d.PGMessage = pgxErr.Message
		return d
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		d.PGCode = string(pqErr.Code)
		d.PGConstraint = pqErr.Constraint
		d.PGTable = pqErr.Table
		d.PGColumn = pqErr.Column
		d.PGDetail = pqErr.Detail
		d.PGMessage = pqErr.Message
		return d
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		d.SQLiteCode = int(liteErr.ExtendedCode)
		d.SQLiteConstraint, d.SQLiteTable, d.SQLiteColumn = parseSQLiteConstraint(liteErr.Error())
		return d
	}

	return d
}

// parseSQLiteConstraint splits messages such as
// "UNIQUE constraint failed: stores.name" into kind, table and column.
func parseSQLiteConstraint(msg string) (kind, table, column string) {
	head, target, _ := strings.Cut(msg, ": ")
	kind, ok := strings.CutSuffix(head, " constraint failed")
	if !ok {
		return "", "", ""
	}
	// composite keys are reported as "t.a, t.b"; the first column names the table
	first, _, _ := strings.Cut(target, ",")
	table, column, _ = strings.Cut(strings.TrimSpace(first), ".")
	return kind, table, column
}

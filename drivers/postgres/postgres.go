// Package postgres provides the PostgreSQL driver for owsql.
package postgres

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/datashield/owsql"
	"github.com/datashield/owsql/drivers/base"
)

// Driver is the PostgreSQL-backed owsql.Driver: like MySQL it escapes both
// a single quote and a backslash inside literals, matching the original
// implementation's single_quotaion_and_backslash_escape grouping for every
// non-SQLite dialect (spec.md 4.F, DESIGN.md).
type Driver struct {
	base.Driver
}

// New wraps an already-open PostgreSQL *sql.DB.
func New(db *sql.DB) *Driver {
	return &Driver{base.Driver{DB: db, Config: base.Config{DBType: owsql.Postgresql}}}
}

// Open opens dsn with the pgx/v5/stdlib driver and returns it already
// wrapped in an owsql.Connection.
func Open(dsn string, opts ...owsql.Option) (*owsql.Connection, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return owsql.Open(New(db), opts...), nil
}

// Package base provides shared plumbing for owsql dialect drivers.
//
// Concrete drivers (drivers/sqlite, drivers/mysql, drivers/postgres) embed
// Driver and supply a Config naming their dialect; Driver then implements
// owsql.Driver (Execute/Iterate/DBType) on top of a pooled *sql.DB.
package base

import (
	"context"
	"database/sql"

	"github.com/datashield/owsql"
)

// Config carries the dialect-specific facts a concrete driver supplies.
type Config struct {
	// DBType identifies the dialect, selecting the Connection's escape
	// predicate.
	DBType owsql.Dialect
}

// Driver provides the shared owsql.Driver implementation over a pooled
// *sql.DB. Concrete drivers embed it and only need to open the pool with
// the right database/sql driver name and DSN.
type Driver struct {
	DB     *sql.DB
	Config Config
}

// Exec runs fn inside a transaction, committing on success and rolling
// back on error. Identical for every dialect.
func (d *Driver) Exec(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Execute runs sqlText with no result set expected.
func (d *Driver) Execute(sqlText string) error {
	_, err := d.DB.Exec(sqlText)
	return err
}

// Iterate runs sqlText and invokes cb once per row, in column order, until
// cb returns false or rows are exhausted. Every value is surfaced as an
// optional string, keeping backend-specific column types out of the core
// (spec.md §9: "avoid leaking backend row/column types into the core").
func (d *Driver) Iterate(sqlText string, cb func([]owsql.ColumnValue) bool) error {
	rows, err := d.DB.Query(sqlText)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	for rows.Next() {
		raw := make([]sql.NullString, len(cols))
		dest := make([]interface{}, len(cols))
		for i := range raw {
			dest[i] = &raw[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return err
		}

		pairs := make([]owsql.ColumnValue, len(cols))
		for i, name := range cols {
			pairs[i] = owsql.ColumnValue{Column: name}
			if raw[i].Valid {
				v := raw[i].String
				pairs[i].Value = &v
			}
		}
		if !cb(pairs) {
			break
		}
	}
	return rows.Err()
}

// DBType reports the dialect this driver was configured for.
func (d *Driver) DBType() owsql.Dialect {
	return d.Config.DBType
}

// Close releases the pooled connection. Identical for every dialect.
func (d *Driver) Close() error {
	return d.DB.Close()
}

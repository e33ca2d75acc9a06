// Package mock provides an in-memory fake owsql.Driver for testing
// Connection without a real database server.
//
// This driver uses a real SQLite in-memory database under the hood, so
// Execute/Iterate behave like a genuine driver; data is not persisted and
// is lost when the driver is closed.
package mock

import (
	"database/sql"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver for the in-memory DB

	"github.com/datashield/owsql"
)

// Driver is an in-memory fake implementation of owsql.Driver for testing.
type Driver struct {
	mu           sync.Mutex
	db           *sql.DB
	dbType       owsql.Dialect
	executeErr   error
	iterateErr   error
	executeCalls int
	iterateCalls int
}

// New creates a mock driver backed by a fresh in-memory SQLite database,
// reporting dbType from DBType().
func New(dbType owsql.Dialect) *Driver {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		panic("mock driver: failed to create in-memory database: " + err.Error())
	}
	return &Driver{db: db, dbType: dbType}
}

// SetExecuteError makes Execute return err regardless of sql.
func (d *Driver) SetExecuteError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.executeErr = err
}

// SetIterateError makes Iterate return err regardless of sql.
func (d *Driver) SetIterateError(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.iterateErr = err
}

// Execute runs sqlText against the in-memory database.
func (d *Driver) Execute(sqlText string) error {
	d.mu.Lock()
	d.executeCalls++
	if d.executeErr != nil {
		err := d.executeErr
		d.mu.Unlock()
		return err
	}
	d.mu.Unlock()

	_, err := d.db.Exec(sqlText)
	return err
}

// Iterate runs sqlText and invokes cb once per row until cb returns false
// or rows are exhausted.
func (d *Driver) Iterate(sqlText string, cb func([]owsql.ColumnValue) bool) error {
	d.mu.Lock()
	d.iterateCalls++
	if d.iterateErr != nil {
		err := d.iterateErr
		d.mu.Unlock()
		return err
	}
	d.mu.Unlock()

	rows, err := d.db.Query(sqlText)
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

// DBType reports the dialect this mock was constructed with.
func (d *Driver) DBType() owsql.Dialect {
	return d.dbType
}

// Close closes the in-memory database connection.
func (d *Driver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// ExecuteCalls returns how many times Execute was invoked (for testing).
func (d *Driver) ExecuteCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.executeCalls
}

// IterateCalls returns how many times Iterate was invoked (for testing).
func (d *Driver) IterateCalls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.iterateCalls
}

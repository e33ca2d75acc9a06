// Package sqlite provides the SQLite driver for owsql.
//
// It is ideal for embedded databases, development, testing, and
// single-server applications.
//
// # Basic Usage
//
//	import (
//	    "github.com/datashield/owsql/drivers/sqlite"
//	)
//
//	conn, err := sqlite.Open("myapp.db")
//	if err != nil {
//	    // handle error
//	}
//	defer conn.Close()
//
// # Database File
//
// SQLite stores the database in a single file. Common patterns:
//
//   - Persistent: "myapp.db" or "/path/to/database.db"
//   - In-memory: ":memory:" (lost when the connection closes)
//   - Temporary: "" (empty string, deleted when closed)
package sqlite

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"github.com/datashield/owsql"
	"github.com/datashield/owsql/drivers/base"
)

// Driver is the SQLite-backed owsql.Driver: it escapes only a single quote
// inside literals, matching spec.md 4.F's dialect grouping.
type Driver struct {
	base.Driver
}

// New wraps an already-open SQLite *sql.DB.
func New(db *sql.DB) *Driver {
	return &Driver{base.Driver{DB: db, Config: base.Config{DBType: owsql.Sqlite}}}
}

// Open opens dsn with the mattn/go-sqlite3 driver and returns it already
// wrapped in an owsql.Connection.
func Open(dsn string, opts ...owsql.Option) (*owsql.Connection, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return owsql.Open(New(db), opts...), nil
}

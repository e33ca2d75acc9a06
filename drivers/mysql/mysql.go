// Package mysql provides the MySQL driver for owsql.
//
// It supports MySQL 5.7+ and MariaDB 10.2+.
//
// # Basic Usage
//
//	import (
//	    "github.com/datashield/owsql/drivers/mysql"
//	)
//
//	conn, err := mysql.Open("user:password@tcp(localhost:3306)/dbname")
//	if err != nil {
//	    // handle error
//	}
//	defer conn.Close()
package mysql

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"

	"github.com/datashield/owsql"
	"github.com/datashield/owsql/drivers/base"
)

// Driver is the MySQL-backed owsql.Driver: it escapes both a single quote
// and a backslash inside literals, matching spec.md 4.F's dialect grouping.
type Driver struct {
	base.Driver
}

// New wraps an already-open MySQL *sql.DB.
func New(db *sql.DB) *Driver {
	return &Driver{base.Driver{DB: db, Config: base.Config{DBType: owsql.Mysql}}}
}

// Open opens dsn with the go-sql-driver/mysql driver and returns it already
// wrapped in an owsql.Connection.
func Open(dsn string, opts ...owsql.Option) (*owsql.Connection, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return owsql.Open(New(db), opts...), nil
}

package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/datashield/owsql"
	"github.com/datashield/owsql/drivers/mysql"
	"github.com/datashield/owsql/drivers/postgres"
	"github.com/datashield/owsql/drivers/sqlite"
)

// Driver name constants.
//
// These are the recognized --driver values. postgres/postgresql are
// aliases for the same backend.
const (
	DriverPostgres   = "postgres"
	DriverPostgreSQL = "postgresql"
	DriverMySQL      = "mysql"
	DriverSQLite     = "sqlite"
	DriverSQLite3    = "sqlite3"
)

// openConnection opens app.config.DSN with the driver package matching
// app.config.Driver and applies any --error-level option. --ow-len is
// applied afterwards by setupConnection.
func (app *App) openConnection() (*owsql.Connection, error) {
	opts, err := app.connectionOptions()
	if err != nil {
		return nil, err
	}

	switch app.config.Driver {
	case DriverPostgres, DriverPostgreSQL:
		return postgres.Open(app.config.DSN, opts...)
	case DriverMySQL:
		return mysql.Open(app.config.DSN, opts...)
	case DriverSQLite, DriverSQLite3:
		return sqlite.Open(app.config.DSN, opts...)
	default:
		return nil, fmt.Errorf("unsupported driver: %s (supported: postgres, mysql, sqlite)", app.config.Driver)
	}
}

// connectionOptions translates --error-level into owsql.Option values.
func (app *App) connectionOptions() ([]owsql.Option, error) {
	var opts []owsql.Option

	if app.config.ErrorLevel != "" {
		level, err := parseErrorLevel(app.config.ErrorLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, owsql.WithErrorLevel(level))
	}

	return opts, nil
}

func parseErrorLevel(s string) (owsql.ErrorLevel, error) {
	switch strings.ToLower(s) {
	case "always-ok", "alwaysok":
		return owsql.AlwaysOk, nil
	case "release":
		return owsql.Release, nil
	case "develop":
		return owsql.Develop, nil
	case "debug":
		return owsql.Debug, nil
	default:
		return 0, fmt.Errorf("unknown --error-level %q (want always-ok, release, develop, or debug)", s)
	}
}

// parseOwLen parses "n" (fixed length) or "lo-hi" (half-open range) into
// the bounds SetOwLen expects.
func parseOwLen(s string) ([]int, error) {
	parts := strings.SplitN(s, "-", 2)
	bounds := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid --ow-len %q: %w", s, err)
		}
		bounds = append(bounds, n)
	}
	return bounds, nil
}

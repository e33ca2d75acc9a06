package postgres

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/datashield/owsql"
)

// TestDriverCreation tests driver creation and the DBType it reports to
// owsql.Connection.
func TestDriverCreation(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	defer db.Close()

	driver := New(db)
	if driver.DBType() != owsql.Postgresql {
		t.Errorf("DBType() = %v, want Postgresql", driver.DBType())
	}
}

// TestMustEscape mirrors spec.md §8's boundary table: PostgreSQL doubles
// both a single quote and a backslash, same as MySQL.
func TestMustEscape(t *testing.T) {
	tests := []struct {
		name string
		char rune
		want bool
	}{
		{"single quote", '\'', true},
		{"backslash", '\\', true},
		{"double quote", '"', false},
		{"ordinary letter", 'a', false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := owsql.Postgresql.MustEscape(tt.char); got != tt.want {
				t.Errorf("Postgresql.MustEscape(%q) = %v, want %v", tt.char, got, tt.want)
			}
		})
	}
}

// TestDriverExecuteIterate exercises base.Driver's Execute/Iterate against
// a sqlmock expectation set, the way the teacher's driver tests stub out a
// real server connection.
func TestDriverExecuteIterate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	defer db.Close()

	driver := New(db)

	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))
	if err := driver.Execute("INSERT INTO users (id) VALUES (1)"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	rows := sqlmock.NewRows([]string{"id", "email"}).AddRow("1", "alice@example.com")
	mock.ExpectQuery("SELECT id, email FROM users").WillReturnRows(rows)

	var got []string
	err = driver.Iterate("SELECT id, email FROM users", func(cols []owsql.ColumnValue) bool {
		for _, c := range cols {
			if c.Column == "email" && c.Value != nil {
				got = append(got, *c.Value)
			}
		}
		return true
	})
	if err != nil {
		t.Fatalf("Iterate failed: %v", err)
	}
	if len(got) != 1 || got[0] != "alice@example.com" {
		t.Errorf("Iterate rows = %v, want [alice@example.com]", got)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet sqlmock expectations: %v", err)
	}
}


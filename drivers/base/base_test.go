package base

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/datashield/owsql"
)

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return &Driver{DB: db, Config: Config{DBType: owsql.Sqlite}}
}

func TestDriver_ExecuteAndIterate(t *testing.T) {
	d := newTestDriver(t)

	if err := d.Execute("CREATE TABLE widgets (id INTEGER PRIMARY KEY, name TEXT)"); err != nil {
		t.Fatalf("Execute(create) failed: %v", err)
	}
	if err := d.Execute("INSERT INTO widgets (id, name) VALUES (1, 'gear'), (2, NULL)"); err != nil {
		t.Fatalf("Execute(insert) failed: %v", err)
	}

	var got [][]owsql.ColumnValue
	err := d.Iterate("SELECT id, name FROM widgets ORDER BY id", func(cols []owsql.ColumnValue) bool {
		got = append(got, cols)
		return true
	})
	if err != nil {
		t.Fatalf("Iterate failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d rows, want 2", len(got))
	}
	if got[0][1].Value == nil || *got[0][1].Value != "gear" {
		t.Errorf("row 0 name = %v, want \"gear\"", got[0][1].Value)
	}
	if got[1][1].Value != nil {
		t.Errorf("row 1 name = %v, want nil (NULL)", got[1][1].Value)
	}
}

func TestDriver_IterateStopsEarly(t *testing.T) {
	d := newTestDriver(t)
	if err := d.Execute("CREATE TABLE nums (n INTEGER)"); err != nil {
		t.Fatalf("Execute(create) failed: %v", err)
	}
	if err := d.Execute("INSERT INTO nums (n) VALUES (1), (2), (3)"); err != nil {
		t.Fatalf("Execute(insert) failed: %v", err)
	}

	count := 0
	err := d.Iterate("SELECT n FROM nums ORDER BY n", func(cols []owsql.ColumnValue) bool {
		count++
		return count < 2
	})
	if err != nil {
		t.Fatalf("Iterate failed: %v", err)
	}
	if count != 2 {
		t.Errorf("cb called %d times, want 2", count)
	}
}

func TestDriver_DBType(t *testing.T) {
	d := newTestDriver(t)
	if d.DBType() != owsql.Sqlite {
		t.Errorf("DBType() = %v, want Sqlite", d.DBType())
	}
}

func TestDriver_Exec(t *testing.T) {
	d := newTestDriver(t)
	if err := d.Execute("CREATE TABLE t (n INTEGER)"); err != nil {
		t.Fatalf("Execute(create) failed: %v", err)
	}

	err := d.Exec(context.Background(), func(tx *sql.Tx) error {
		_, err := tx.Exec("INSERT INTO t (n) VALUES (1)")
		return err
	})
	if err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	var n int
	if err := d.DB.QueryRow("SELECT COUNT(*) FROM t").Scan(&n); err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if n != 1 {
		t.Errorf("row count = %d, want 1", n)
	}
}

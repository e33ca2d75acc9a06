package owsql

import (
	"testing"
)

// fakeDriver is a minimal in-process owsql.Driver for tests that don't need
// a real database; see drivers/mock for the sqlite-backed fake used by the
// CLI demo.
type fakeDriver struct {
	dbType   Dialect
	lastSQL  string
	execErr  error
	rows     [][]ColumnValue
	iterated []string
}

func (d *fakeDriver) Execute(sql string) error {
	d.lastSQL = sql
	return d.execErr
}

func (d *fakeDriver) Iterate(sql string, cb func([]ColumnValue) bool) error {
	d.lastSQL = sql
	for _, row := range d.rows {
		d.iterated = append(d.iterated, sql)
		if !cb(row) {
			break
		}
	}
	return nil
}

func (d *fakeDriver) DBType() Dialect { return d.dbType }

func TestConnection_OwIdempotentAndActualSQL(t *testing.T) {
	conn := Open(&fakeDriver{dbType: Sqlite})

	ph1, err := conn.Ow("SELECT")
	if err != nil {
		t.Fatalf("Ow failed: %v", err)
	}
	ph2, err := conn.Ow("SELECT")
	if err != nil {
		t.Fatalf("Ow failed: %v", err)
	}
	if ph1 != ph2 {
		t.Errorf("Ow(SELECT) returned different placeholders on repeat calls: %q vs %q", ph1, ph2)
	}

	got, err := conn.ActualSQL(ph1)
	if err != nil {
		t.Fatalf("ActualSQL failed: %v", err)
	}
	if got != " SELECT " {
		t.Errorf("ActualSQL(ow(SELECT)) = %q, want %q", got, " SELECT ")
	}
}

func TestConnection_RawValueIsQuotedAndEscaped(t *testing.T) {
	conn := Open(&fakeDriver{dbType: Sqlite})

	selectFrag, err := conn.Ow("SELECT name FROM users WHERE id = ")
	if err != nil {
		t.Fatalf("Ow failed: %v", err)
	}

	got, err := conn.ActualSQL(selectFrag + "42 OR 1=1; --")
	if err != nil {
		t.Fatalf("ActualSQL failed: %v", err)
	}
	want := " SELECT name FROM users WHERE id =  '42 OR 1=1; --' "
	if got != want {
		t.Errorf("ActualSQL = %q, want %q", got, want)
	}
}

func TestConnection_InvalidLiteralIsDeferred(t *testing.T) {
	conn := Open(&fakeDriver{dbType: Sqlite}, WithErrorLevel(Develop))

	ph, err := conn.Ow("O'Reilly")
	if err != nil {
		t.Fatalf("Ow itself should not fail (error is deferred): %v", err)
	}

	_, err = conn.ActualSQL(ph)
	if err == nil {
		t.Fatal("ActualSQL should surface the deferred invalid-literal error")
	}
	if err.Error() != "invalid literal" {
		t.Errorf("error = %q, want %q", err.Error(), "invalid literal")
	}
}

func TestConnection_AllowlistAcceptsAndDenies(t *testing.T) {
	conn := Open(&fakeDriver{dbType: Sqlite})

	if err := conn.AddAllowlist("Alice", "Bob"); err != nil {
		t.Fatalf("AddAllowlist failed: %v", err)
	}

	selectFrag, _ := conn.Ow("SELECT * FROM users WHERE name = ")

	aliceOK, err := conn.Allowlist("Alice")
	if err != nil {
		t.Fatalf("Allowlist(Alice) failed: %v", err)
	}
	if _, err := conn.ActualSQL(selectFrag + aliceOK); err != nil {
		t.Errorf("ActualSQL with allowlisted value failed: %v", err)
	}

	denied, err := conn.Allowlist("Alice OR 1=1; --")
	if err != nil {
		t.Fatalf("Allowlist(deny) should not fail itself: %v", err)
	}
	if _, err := conn.ActualSQL(denied); err == nil {
		t.Error("ActualSQL with a denied allowlist value should fail")
	} else if err.Error() != "deny value" {
		t.Errorf("error = %q, want %q", err.Error(), "deny value")
	}
}

func TestConnection_IntAcceptsAndRejects(t *testing.T) {
	conn := Open(&fakeDriver{dbType: Sqlite})

	ph, err := conn.Int("42")
	if err != nil {
		t.Fatalf("Int(42) failed: %v", err)
	}
	got, err := conn.ActualSQL(ph)
	if err != nil || got != " 42 " {
		t.Errorf("ActualSQL(int(42)) = (%q, %v), want (\" 42 \", nil)", got, err)
	}

	ph2, err := conn.Int(42)
	if err != nil {
		t.Fatalf("Int(42) failed: %v", err)
	}
	if ph != ph2 {
		t.Errorf("Int(\"42\") and Int(42) should canonicalize to the same placeholder: %q vs %q", ph, ph2)
	}

	bad, err := conn.Int("42 or 1=1; --")
	if err != nil {
		t.Fatalf("Int(bad) should not fail itself: %v", err)
	}
	if _, err := conn.ActualSQL(bad); err == nil {
		t.Error("ActualSQL with a non-integer int() value should fail")
	} else if err.Error() != "non integer" {
		t.Errorf("error = %q, want %q", err.Error(), "non integer")
	}
}

func TestConnection_SetOwLenClampsToMinimum(t *testing.T) {
	conn := Open(&fakeDriver{dbType: Sqlite})
	conn.SetOwLen(10)

	ph, err := conn.Ow("SELECT")
	if err != nil {
		t.Fatalf("Ow failed: %v", err)
	}
	trimmed := ph[1 : len(ph)-1] // strip the padding spaces
	if len(trimmed) != minPlaceholderLen {
		t.Errorf("placeholder length = %d, want %d (clamped minimum)", len(trimmed), minPlaceholderLen)
	}
}

func TestConnection_SetErrorLevelRejectsDebugOutsideDebugBuild(t *testing.T) {
	conn := Open(&fakeDriver{dbType: Sqlite})
	err := conn.SetErrorLevel(Debug)
	if IsDebugBuild {
		if err != nil {
			t.Errorf("SetErrorLevel(Debug) failed in a debug build: %v", err)
		}
		return
	}
	if err == nil {
		t.Error("SetErrorLevel(Debug) should fail outside a debug build")
	}
}

func TestConnection_AlwaysOkSwallowsErrors(t *testing.T) {
	conn := Open(&fakeDriver{dbType: Sqlite}, WithErrorLevel(AlwaysOk))

	ph, err := conn.Ow("O'Reilly")
	if err != nil {
		t.Fatalf("Ow failed: %v", err)
	}
	if _, err := conn.ActualSQL(ph); err != nil {
		t.Errorf("AlwaysOk should swallow the invalid-literal error, got: %v", err)
	}
}

func TestConnection_ExecuteDelegatesToDriver(t *testing.T) {
	driver := &fakeDriver{dbType: Mysql}
	conn := Open(driver)

	selectFrag, _ := conn.Ow("DELETE FROM sessions WHERE token = ")
	if err := conn.Execute(selectFrag + "abc"); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	want := " DELETE FROM sessions WHERE token =  'abc' "
	if driver.lastSQL != want {
		t.Errorf("driver received %q, want %q", driver.lastSQL, want)
	}
}

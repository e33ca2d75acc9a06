package cli

import (
	"fmt"
	"io"

	"github.com/datashield/owsql"
	"github.com/datashield/owsql/drivers/base"
	"github.com/datashield/owsql/drivers/mock"
	"github.com/spf13/cobra"
)

func (app *App) demoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Run a self-contained ow/int/allowlist walkthrough",
		Long: `Runs the library's worked example against an in-memory SQLite table:
creates a users table, shows ow/int/allowlist composing a query, and
prints both the escaped path and the rejected path.

This command never touches --driver/--dsn; it is a living doctest
companion to the package-level Go doc examples.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.OutOrStdout())
		},
	}
}

func runDemo(w io.Writer) error {
	driver := mock.New(owsql.Sqlite)
	defer driver.Close()

	conn := owsql.Open(driver)
	defer conn.Close()

	table := base.QuoteIdentifier("users", base.DoubleQuote)

	createTable, err := conn.Ow(fmt.Sprintf("CREATE TABLE %s (id INTEGER PRIMARY KEY, name TEXT)", table))
	if err != nil {
		return err
	}
	if err := conn.Execute(createTable); err != nil {
		return fmt.Errorf("demo: create table: %w", err)
	}

	insert, err := conn.Ow(fmt.Sprintf("INSERT INTO %s (id, name) VALUES (", table))
	if err != nil {
		return err
	}
	comma, err := conn.Ow(", ")
	if err != nil {
		return err
	}
	closeParen, err := conn.Ow(")")
	if err != nil {
		return err
	}
	one, err := conn.Int(1)
	if err != nil {
		return err
	}

	name := "O'Reilly"
	composed := insert + one + comma + name + closeParen

	actual, err := conn.ActualSQL(composed)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "composed statement:")
	fmt.Fprintln(w, "  "+composed)
	fmt.Fprintln(w, "rewrites to:")
	fmt.Fprintln(w, "  "+actual)

	if err := conn.Execute(composed); err != nil {
		return fmt.Errorf("demo: insert: %w", err)
	}

	selectFrag, err := conn.Ow(fmt.Sprintf("SELECT name FROM %s WHERE name = ", table))
	if err != nil {
		return err
	}
	injection := "nobody' OR '1'='1"
	rows, err := conn.Rows(selectFrag + injection)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nquery with an injection attempt in the raw value returned %d row(s) (want 0)\n", len(rows))

	if err := conn.AddAllowlist("name", "id"); err != nil {
		return err
	}
	col, err := conn.Allowlist("name")
	if err != nil {
		return err
	}
	denied, err := conn.Allowlist("name; DROP TABLE users; --")
	if err != nil {
		return err
	}
	if _, err := conn.ActualSQL(selectFrag + col); err != nil {
		return fmt.Errorf("demo: allowlisted column should rewrite cleanly: %w", err)
	}
	if _, err := conn.ActualSQL(selectFrag + denied); err == nil {
		return fmt.Errorf("demo: non-allowlisted column should have been rejected")
	}
	fmt.Fprintf(w, "\nnon-allowlisted identifier was rejected\n")

	return nil
}

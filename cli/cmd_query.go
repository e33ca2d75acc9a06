package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/datashield/owsql"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func (app *App) queryCmd() *cobra.Command {
	var execute bool

	cmd := &cobra.Command{
		Use:   "query [sql]",
		Short: "Rewrite, and optionally run, a composed SQL statement",
		Long: `Run the tokenize/rewrite pipeline over a hand-typed SQL string and print
the result. Placeholders registered earlier in the same process (there
are none when run from the command line) are substituted with their
trusted fragments; any other text is quoted and escaped as an untrusted
value, exactly as Connection.ActualSQL would see it.

With --execute, the rewritten statement is also run against the driver
and the resulting rows (if any) are printed as a table, or as JSON with
--json.

Examples:
  # Show what the statement rewrites to without running it
  owsql query --driver sqlite --dsn ":memory:" "SELECT 1"

  # Also send the rewritten statement to the driver
  owsql query --driver sqlite --dsn ":memory:" --execute "SELECT 1"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := app.setupConnection()
			if err != nil {
				return err
			}
			defer conn.Close()

			sql, err := conn.ActualSQL(args[0])
			if err != nil {
				return fmt.Errorf("rewrite failed: %w", err)
			}

			if !execute {
				fmt.Fprintln(cmd.OutOrStdout(), sql)
				return nil
			}

			if err := app.checkConfirmation("execute a query"); err != nil {
				return err
			}

			rows, err := conn.Rows(args[0])
			if err != nil {
				return fmt.Errorf("execute failed: %w", err)
			}

			if app.config.JSON {
				return outputRowsJSON(cmd.OutOrStdout(), rows)
			}
			return outputRowsTable(cmd.OutOrStdout(), rows)
		},
	}

	cmd.Flags().BoolVar(&execute, "execute", false, "Run the statement and print its rows")
	return cmd
}

type jsonRow map[string]*string

func outputRowsJSON(w io.Writer, rows []owsql.Row) error {
	out := make([]jsonRow, 0, len(rows))
	for _, r := range rows {
		jr := make(jsonRow, len(r.Columns))
		for i, col := range r.Columns {
			jr[col] = r.Values[i]
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func outputRowsTable(w io.Writer, rows []owsql.Row) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "(no rows)")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header(rows[0].Columns)

	for _, r := range rows {
		cells := make([]string, len(r.Values))
		for i, v := range r.Values {
			if v == nil {
				cells[i] = "NULL"
			} else {
				cells[i] = *v
			}
		}
		if err := table.Append(cells); err != nil {
			return err
		}
	}

	return table.Render()
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the owsql CLI's own version string, not a database schema
// version — this module has no migration concept.
const version = "0.1.0"

func (app *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the owsql CLI version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("owsql " + version)
			return nil
		},
	}
}

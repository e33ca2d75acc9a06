// Package cli provides the owsql command-line tool.
//
// It is a small operator utility for inspecting and exercising the
// trust-tagging query pipeline from a shell: rewriting a hand-built
// composition to see what actually reaches the driver, optionally running
// it, and a self-contained "demo" walkthrough of ow/int/allowlist.
//
// Example usage:
//
//	owsql query --driver sqlite --dsn ":memory:" "SELECT 1"
//	owsql demo
package cli

import (
	"fmt"
	"os"

	"github.com/datashield/owsql"
	"github.com/spf13/cobra"
)

// App holds the CLI application state.
type App struct {
	config  *Config
	rootCmd *cobra.Command
}

// Run starts the CLI. This is the main entry point for the owsql binary.
//
// Configuration priority:
//  1. Command-line flags (highest)
//  2. Config file .owsql.yaml (requires --use-config)
//  3. Environment variables (lowest)
func Run() {
	app := &App{config: &Config{}}

	app.rootCmd = &cobra.Command{
		Use:   "owsql",
		Short: "owsql query inspector and demo CLI",
		Long: `owsql - inspect and exercise trust-tagged SQL composition.

Configuration priority:
  1. Command-line flags (highest)
  2. Config file .owsql.yaml (requires --use-config)
  3. Environment variables (OWSQL_DRIVER, OWSQL_DSN) (lowest)

Examples:
  # Show what a composed query rewrites to
  owsql query --driver sqlite --dsn ":memory:" "SELECT 1"

  # Also send the rewritten statement to the driver
  owsql query --driver sqlite --dsn ":memory:" --execute "SELECT 1"

  # Run the built-in ow/int/allowlist walkthrough
  owsql demo`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.addGlobalFlags()
	app.addCommands()

	if err := app.rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// addGlobalFlags adds flags that are available to all commands.
func (app *App) addGlobalFlags() {
	flags := app.rootCmd.PersistentFlags()

	flags.StringVar(&app.config.Driver, "driver", "", "Database driver (sqlite, mysql, postgres)")
	flags.StringVar(&app.config.DSN, "dsn", "", "Database connection string")
	flags.StringVar(&app.config.ErrorLevel, "error-level", "", "Error level (always-ok, release, develop, debug)")
	flags.StringVar(&app.config.OwLen, "ow-len", "", "Placeholder length: fixed \"n\" or half-open range \"lo-hi\"")
	flags.BoolVar(&app.config.UseConfig, "use-config", false, "Enable config file (.owsql.yaml)")
	flags.StringVar(&app.config.Env, "env", "", "Environment from config file")
	flags.BoolVar(&app.config.Yes, "yes", false, "Skip confirmation prompts")
	flags.BoolVar(&app.config.JSON, "json", false, "Output in JSON format")
	flags.BoolVar(&app.config.Verbose, "verbose", false, "Verbose output")
}

// addCommands registers all CLI commands.
func (app *App) addCommands() {
	app.rootCmd.AddCommand(
		app.queryCmd(),
		app.demoCmd(),
		app.versionCmd(),
	)
}

// setupConnection loads configuration from all sources and opens a
// Connection for the configured driver/DSN.
func (app *App) setupConnection() (*owsql.Connection, error) {
	if err := app.loadConfig(); err != nil {
		return nil, err
	}

	if app.config.Driver == "" {
		return nil, fmt.Errorf("driver is required (use --driver or OWSQL_DRIVER)")
	}
	if app.config.DSN == "" {
		return nil, fmt.Errorf("dsn is required (use --dsn or OWSQL_DSN)")
	}

	conn, err := app.openConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to open connection: %w", err)
	}

	if app.config.OwLen != "" {
		bounds, err := parseOwLen(app.config.OwLen)
		if err != nil {
			conn.Close()
			return nil, err
		}
		conn.SetOwLen(bounds...)
	}

	return conn, nil
}

// loadConfig loads configuration from all sources.
// Priority: flags > config file > env.
func (app *App) loadConfig() error {
	if app.config.UseConfig {
		if err := app.loadConfigFile(); err != nil {
			return err
		}
	}
	app.loadEnv()
	return nil
}

func (app *App) loadEnv() {
	if app.config.Driver == "" {
		if driver := os.Getenv("OWSQL_DRIVER"); driver != "" {
			app.config.Driver = driver
		}
	}
	if app.config.DSN == "" {
		if dsn := os.Getenv("OWSQL_DSN"); dsn != "" {
			app.config.DSN = dsn
		}
	}
	if app.config.ErrorLevel == "" {
		if level := os.Getenv("OWSQL_ERROR_LEVEL"); level != "" {
			app.config.ErrorLevel = level
		}
	}
}

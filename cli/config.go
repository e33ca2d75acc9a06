package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the CLI, merged from flags,
// an optional config file, and environment variables in that priority
// order (flags win).
type Config struct {
	Driver     string `yaml:"driver"`
	DSN        string `yaml:"dsn"`
	ErrorLevel string `yaml:"error_level"`
	OwLen      string `yaml:"ow_len"`

	UseConfig bool   `yaml:"-"`
	Env       string `yaml:"-"`
	Yes       bool   `yaml:"-"`
	JSON      bool   `yaml:"-"`
	Verbose   bool   `yaml:"-"`

	configFile *ConfigFile
}

// ConfigFile represents the structure of .owsql.yaml.
type ConfigFile struct {
	ConfigLocked bool                    `yaml:"config_locked"`
	Environments map[string]*Environment `yaml:",inline"`
}

// Environment represents a single named environment's defaults.
type Environment struct {
	Driver              string `yaml:"driver"`
	DSN                 string `yaml:"dsn"`
	ErrorLevel          string `yaml:"error_level"`
	OwLen               string `yaml:"ow_len"`
	RequireConfirmation bool   `yaml:"require_confirmation"`
}

func (app *App) loadConfigFile() error {
	configPath := ".owsql.yaml"
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: .owsql.yaml (use --use-config only when config file exists)")
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cf ConfigFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	app.config.configFile = &cf

	if cf.ConfigLocked {
		return fmt.Errorf("config file is locked for safety. Remove 'config_locked: true' or use flags/ENV vars instead")
	}

	if app.config.Env != "" {
		env, ok := cf.Environments[app.config.Env]
		if !ok {
			return fmt.Errorf("environment '%s' not found in config file", app.config.Env)
		}

		if app.config.Driver == "" {
			app.config.Driver = env.Driver
		}
		if app.config.DSN == "" {
			app.config.DSN = env.DSN
		}
		if app.config.ErrorLevel == "" {
			app.config.ErrorLevel = env.ErrorLevel
		}
		if app.config.OwLen == "" {
			app.config.OwLen = env.OwLen
		}

		app.config.configFile.Environments = map[string]*Environment{
			app.config.Env: env,
		}
	}

	return nil
}

func (app *App) requiresConfirmation() bool {
	if app.config.Yes {
		return false
	}
	if app.config.configFile == nil || app.config.Env == "" {
		return false
	}
	env, ok := app.config.configFile.Environments[app.config.Env]
	if !ok {
		return false
	}
	return env.RequireConfirmation
}

func (app *App) getEnvironmentName() string {
	if app.config.Env != "" {
		return app.config.Env
	}
	return "custom"
}

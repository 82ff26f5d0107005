package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/udisondev/buildcalc/internal/game/totals"
	"github.com/udisondev/buildcalc/internal/model"
)

// TableSource selects where lookup tables come from.
type TableSource string

const (
	SourceBuiltin  TableSource = "builtin"
	SourceFile     TableSource = "file"
	SourceDatabase TableSource = "database"
)

// Calculator holds all configuration for the build calculator.
// Every field can be overridden by its BUILDCALC_* environment variable.
type Calculator struct {
	LogLevel string `yaml:"log_level" env:"BUILDCALC_LOG_LEVEL"`

	// Tables
	TableSource TableSource    `yaml:"table_source" env:"BUILDCALC_TABLE_SOURCE"`
	DataDir     string         `yaml:"data_dir" env:"BUILDCALC_DATA_DIR"`
	Database    DatabaseConfig `yaml:"database"`

	// Apply embedded migrations before reading tables from the database.
	Migrate bool `yaml:"migrate" env:"BUILDCALC_MIGRATE"`

	// Calculation
	PvMode          model.PvMode     `yaml:"pv_mode" env:"BUILDCALC_PV_MODE"`
	DamageHeuristic totals.Heuristic `yaml:"damage_heuristic" env:"BUILDCALC_DAMAGE_HEURISTIC"`
	ProcBreakdown   bool             `yaml:"proc_breakdown" env:"BUILDCALC_PROC_BREAKDOWN"`
	Workers         int              `yaml:"workers" env:"BUILDCALC_WORKERS"` // concurrent builds
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `yaml:"host" env:"BUILDCALC_DB_HOST"`
	Port     int    `yaml:"port" env:"BUILDCALC_DB_PORT"`
	User     string `yaml:"user" env:"BUILDCALC_DB_USER"`
	Password string `yaml:"password" env:"BUILDCALC_DB_PASSWORD"`
	DBName   string `yaml:"dbname" env:"BUILDCALC_DB_NAME"`
	SSLMode  string `yaml:"sslmode" env:"BUILDCALC_DB_SSLMODE"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultCalculator returns Calculator config with sensible defaults.
func DefaultCalculator() Calculator {
	return Calculator{
		LogLevel:        "info",
		TableSource:     SourceBuiltin,
		DataDir:         "data",
		PvMode:          model.PvE,
		DamageHeuristic: totals.HeuristicMax,
		ProcBreakdown:   true,
		Workers:         4,
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "buildcalc",
			Password: "buildcalc",
			DBName:   "buildcalc",
			SSLMode:  "disable",
		},
	}
}

// Validate reports every invalid setting at once.
func (c Calculator) Validate() error {
	var errs error
	switch c.TableSource {
	case SourceBuiltin, SourceFile, SourceDatabase:
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown table source %q", c.TableSource))
	}
	if c.TableSource == SourceFile && c.DataDir == "" {
		errs = multierr.Append(errs, errors.New("data_dir is required for file tables"))
	}
	if c.Workers < 1 {
		errs = multierr.Append(errs, fmt.Errorf("workers must be positive, got %d", c.Workers))
	}
	if !c.PvMode.Valid() {
		errs = multierr.Append(errs, fmt.Errorf("invalid pv mode %d", c.PvMode))
	}
	return errs
}

// LoadCalculator loads calculator config from a YAML file and applies
// environment overrides. If the file doesn't exist, defaults are used.
func LoadCalculator(path string) (Calculator, error) {
	cfg := DefaultCalculator()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

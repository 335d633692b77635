package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/AntonStoeckl/library-catalog-go/library/core"
	"github.com/AntonStoeckl/library-catalog-go/shared/shell"
)

const (
	// DriverPGX uses a pgx connection pool, optionally with a read replica.
	DriverPGX = "pgx"

	// DriverPostgres uses database/sql with lib/pq.
	DriverPostgres = "postgres"

	// DriverSQLX uses sqlx on top of lib/pq.
	DriverSQLX = "sqlx"

	// DriverSQLite uses the pure Go sqlite driver.
	DriverSQLite = "sqlite"

	// ExporterNone disables telemetry export, spans are still created for log correlation.
	ExporterNone = "none"

	// ExporterStdout writes spans and metrics as JSON to stderr.
	ExporterStdout = "stdout"

	// EnvDatabaseDSN overrides database.dsn.
	EnvDatabaseDSN = "LIBRARIAN_DATABASE_DSN"

	// EnvDatabaseDriver overrides database.driver.
	EnvDatabaseDriver = "LIBRARIAN_DATABASE_DRIVER"

	defaultSQLiteDSN = "file:librarian.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
)

var (
	// ErrReadingConfigFailed is returned when the config file can't be read.
	ErrReadingConfigFailed = errors.New("reading the config file failed")

	// ErrParsingConfigFailed is returned when the config file isn't valid YAML for Config.
	ErrParsingConfigFailed = errors.New("parsing the config file failed")

	// ErrInvalidConfig is returned by Validate.
	ErrInvalidConfig = errors.New("invalid config")
)

// Config is the complete librarian configuration.
type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Operator  OperatorConfig  `yaml:"operator"`
	Log       LogConfig       `yaml:"log"`
	Retry     RetryConfig     `yaml:"retry"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// DatabaseConfig selects the driver and the connection.
type DatabaseConfig struct {
	Driver      string `yaml:"driver"`
	DSN         string `yaml:"dsn"`
	ReplicaDSN  string `yaml:"replica_dsn"`
	TablePrefix string `yaml:"table_prefix"`
}

// OperatorConfig is the principal the CLI acts as.
type OperatorConfig struct {
	Username    string   `yaml:"username"`
	BorrowerID  string   `yaml:"borrower_id"`
	Permissions []string `yaml:"permissions"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// RetryConfig tunes the optimistic concurrency retries of command handlers.
type RetryConfig struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	BaseDelay    time.Duration `yaml:"base_delay"`
	JitterFactor float64       `yaml:"jitter_factor"`
}

// TelemetryConfig selects the OpenTelemetry exporter.
type TelemetryConfig struct {
	Exporter    string `yaml:"exporter"`
	ServiceName string `yaml:"service_name"`
}

// Default returns a configuration for a local sqlite database.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    defaultSQLiteDSN,
		},
		Log: LogConfig{Level: "info"},
		Retry: RetryConfig{
			MaxAttempts:  6,
			BaseDelay:    10 * time.Millisecond,
			JitterFactor: 0.3,
		},
		Telemetry: TelemetryConfig{
			Exporter:    ExporterNone,
			ServiceName: "librarian",
		},
	}
}

// Load reads the YAML file at path on top of Default and applies the environment overrides.
// An empty path only applies the overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadingConfigFailed, err)
		}

		if err = yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, errors.Join(ErrParsingConfigFailed, err)
		}
	}

	cfg = cfg.WithEnvironment(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// WithEnvironment returns the config with the environment overrides applied.
func (c Config) WithEnvironment(lookup func(string) (string, bool)) Config {
	if driver, ok := lookup(EnvDatabaseDriver); ok && driver != "" {
		c.Database.Driver = driver
	}

	if dsn, ok := lookup(EnvDatabaseDSN); ok && dsn != "" {
		c.Database.DSN = dsn
	}

	return c
}

// Validate checks the driver, the DSN, the exporter and the retry settings.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DriverPGX, DriverPostgres, DriverSQLX, DriverSQLite:
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}

	if c.Database.DSN == "" {
		return fmt.Errorf("%w: database dsn must not be empty", ErrInvalidConfig)
	}

	if c.Database.ReplicaDSN != "" && c.Database.Driver != DriverPGX {
		return fmt.Errorf("%w: a replica is only supported with the %s driver", ErrInvalidConfig, DriverPGX)
	}

	switch c.Telemetry.Exporter {
	case ExporterNone, ExporterStdout:
	default:
		return fmt.Errorf("%w: unknown telemetry exporter %q", ErrInvalidConfig, c.Telemetry.Exporter)
	}

	if c.Retry.MaxAttempts <= 0 {
		return fmt.Errorf("%w: retry max_attempts must be positive", ErrInvalidConfig)
	}

	return nil
}

// RetryOptions converts the retry settings for shell.RetryWithExponentialBackoff.
func (c Config) RetryOptions() []shell.RetryOption {
	return []shell.RetryOption{
		shell.WithMaxAttempts(c.Retry.MaxAttempts),
		shell.WithBaseDelay(c.Retry.BaseDelay),
		shell.WithJitterFactor(c.Retry.JitterFactor),
	}
}

// Principal returns the configured operator, or false if none is configured.
func (c Config) Principal() (shell.Principal, bool) {
	if c.Operator.Username == "" {
		return shell.Principal{}, false
	}

	return shell.Principal{
		BorrowerID:  c.Operator.BorrowerID,
		Username:    c.Operator.Username,
		Permissions: core.ParsePermissions(c.Operator.Permissions),
	}, true
}

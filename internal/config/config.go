// Package config provides configuration loading for the showroom CLI and the
// development backend.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	// Backend is the REST backend the site and the admin talk to.
	Backend BackendConfig `mapstructure:"backend"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`

	// Audit configures the optional persisted sync journal.
	Audit AuditConfig `mapstructure:"audit"`

	// MockBackend configures cmd/mockbackend.
	MockBackend MockBackendConfig `mapstructure:"mockbackend"`
}

// BackendConfig holds the REST backend location.
type BackendConfig struct {
	// URL is the base URL; requests go to {URL}/api/{endpoint}.
	// Empty means not configured.
	URL string `mapstructure:"url"`

	// Timeout bounds each request. Zero disables the timeout.
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// AuditConfig holds the audit database configuration.
type AuditConfig struct {
	// Driver is "postgres", "sqlite" or empty (disabled).
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Enabled reports whether an audit store is configured.
func (a AuditConfig) Enabled() bool {
	return a.Driver != "" && a.DSN != ""
}

// MockBackendConfig holds development backend settings.
type MockBackendConfig struct {
	Listen string `mapstructure:"listen"`
	Seed   bool   `mapstructure:"seed"`
}

// DefaultConfig returns a configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:     "",
			Timeout: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		MockBackend: MockBackendConfig{
			Listen: ":5000",
			Seed:   true,
		},
	}
}

// Options controls where Load looks for configuration.
type Options struct {
	// ConfigPath is an explicit config file. Empty searches the defaults.
	ConfigPath string

	// EnvFile is a dotenv file loaded before environment resolution.
	// Empty means ".env"; a missing file is not an error.
	EnvFile string
}

// Load loads configuration from file, .env and environment.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error reading %s: %w", envFile, err)
	}

	v := viper.New()

	setDefaults(v)

	if opts.ConfigPath != "" {
		// An explicit file must exist, unlike the default search paths.
		if _, err := os.Stat(opts.ConfigPath); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		v.SetConfigFile(opts.ConfigPath)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".showroom"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("SHOWROOM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("backend.url", "SHOWROOM_BACKEND_URL", "BACKEND_URL"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	cfg.Backend.URL = strings.TrimRight(strings.TrimSpace(cfg.Backend.URL), "/")

	// Sync log lines are JSON only.
	if cfg.Logging.Format != "json" {
		return nil, fmt.Errorf("unsupported logging.format %q: only \"json\" is supported", cfg.Logging.Format)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("backend.url", "")
	v.SetDefault("backend.timeout", "0s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")
	v.SetDefault("audit.driver", "")
	v.SetDefault("audit.dsn", "")
	v.SetDefault("mockbackend.listen", ":5000")
	v.SetDefault("mockbackend.seed", true)
}

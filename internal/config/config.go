package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/i474232898/climate-data-explorer/internal/climate"
)

type AppConfig struct {
	Port     string `env:"PORT" envDefault:"8080"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DataURL wins over DataPath when both are set.
	DataPath    string        `env:"DATA_PATH" envDefault:"data/ddbb_surface_temperature_countries.csv"`
	DataURL     string        `env:"DATA_URL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`

	BaselineStart int `env:"BASELINE_START" envDefault:"1951"`
	BaselineEnd   int `env:"BASELINE_END" envDefault:"1980"`
	DefaultWindow int `env:"DEFAULT_WINDOW" envDefault:"10"`

	// Memo cache retention.
	CacheMaxEntries int           `env:"CACHE_MAX_ENTRIES" envDefault:"256"` // 0 = unlimited
	CacheMaxAge     time.Duration `env:"CACHE_MAX_AGE" envDefault:"1h"`      // 0 = unlimited

	// ReloadInterval re-reads the dataset periodically. 0 disables it.
	ReloadInterval time.Duration `env:"RELOAD_INTERVAL" envDefault:"0"`

	// DotenvErr is set when no .env file could be loaded. It is informational.
	DotenvErr error
}

// Load reads an optional .env file, then the environment, with sensible defaults.
func Load() (*AppConfig, error) {
	dotenvErr := godotenv.Load()

	cfg, err := parse(env.Options{})
	if err != nil {
		return nil, err
	}
	cfg.DotenvErr = dotenvErr
	return cfg, nil
}

// LoadFrom builds the config from the given variables only.
func LoadFrom(vars map[string]string) (*AppConfig, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.BaselineStart > c.BaselineEnd {
		errs = append(errs, fmt.Errorf("BASELINE_START %d is after BASELINE_END %d", c.BaselineStart, c.BaselineEnd))
	}
	if c.DefaultWindow < 1 {
		errs = append(errs, fmt.Errorf("DEFAULT_WINDOW must be at least 1, got %d", c.DefaultWindow))
	}
	if c.CacheMaxEntries < 0 {
		errs = append(errs, fmt.Errorf("CACHE_MAX_ENTRIES must not be negative, got %d", c.CacheMaxEntries))
	}
	if c.ReloadInterval < 0 {
		errs = append(errs, fmt.Errorf("RELOAD_INTERVAL must not be negative, got %s", c.ReloadInterval))
	}
	if c.DataURL == "" && c.DataPath == "" {
		errs = append(errs, errors.New("one of DATA_PATH or DATA_URL is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Baseline is the configured anomaly reference period.
func (c *AppConfig) Baseline() climate.Baseline {
	return climate.Baseline{Start: c.BaselineStart, End: c.BaselineEnd}
}

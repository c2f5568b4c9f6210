package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	pkgconfig "github.com/neetharmaliackal/fittrack-pro-02/pkg/config"
)

// Config holds all configuration for the fittrack client.
type Config struct {
	Environment string `env:"FITTRACK_ENV" envDefault:"development"`
	LogLevel    string `env:"FITTRACK_LOG_LEVEL" envDefault:"info"`

	// Remote API
	APIBaseURL     string        `env:"FITTRACK_API_BASE_URL" envDefault:"https://fitness-tracker-be-group-hdgi.vercel.app/api"`
	RequestTimeout time.Duration `env:"FITTRACK_REQUEST_TIMEOUT" envDefault:"30s"`

	// Local state: session file and log file live here. Empty means
	// "pick a default under the user config dir".
	StateDir string `env:"FITTRACK_STATE_DIR"`
	LogFile  string `env:"FITTRACK_LOG_FILE"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load fittrack config: %w", err)
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("FITTRACK_API_BASE_URL must not be empty")
	}
	parsed, err := url.Parse(cfg.APIBaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid FITTRACK_API_BASE_URL: %q", cfg.APIBaseURL)
	}

	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("FITTRACK_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}

	if cfg.StateDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve user config dir: %w", err)
		}
		cfg.StateDir = filepath.Join(base, "fittrack")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.StateDir, "fittrack.log")
	}

	return cfg, nil
}

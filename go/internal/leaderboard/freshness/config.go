package freshness

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the refresh policy shared by every controller
type Config struct {
	PollInterval time.Duration `yaml:"poll_interval"` // between refreshes while live
	StaleAfter   time.Duration `yaml:"stale_after"`   // cached data older than this is refetched on mount
	Cooldown     time.Duration `yaml:"cooldown"`      // loading indicator hold after a fetch completes
	FetchTimeout time.Duration `yaml:"fetch_timeout"` // a fetch running longer is abandoned
}

func DefaultConfig() Config {
	return Config{
		PollInterval: 2 * time.Minute,
		StaleAfter:   5 * time.Minute,
		Cooldown:     500 * time.Millisecond,
		FetchTimeout: 30 * time.Second,
	}
}

type fileConfig struct {
	Freshness Config `yaml:"freshness"`
}

// LoadConfig reads the freshness section of a YAML file. Unset fields keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	fc := fileConfig{Freshness: DefaultConfig()}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := fc.Freshness.validate(); err != nil {
		return Config{}, err
	}
	return fc.Freshness, nil
}

func (c Config) validate() error {
	switch {
	case c.PollInterval <= 0:
		return fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval)
	case c.FetchTimeout <= 0:
		return fmt.Errorf("fetch_timeout must be positive, got %s", c.FetchTimeout)
	case c.StaleAfter < 0 || c.Cooldown < 0:
		return fmt.Errorf("stale_after and cooldown cannot be negative")
	}
	return nil
}

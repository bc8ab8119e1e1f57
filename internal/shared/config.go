package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// EnvAPIToken is the environment variable consulted when the config file
// carries no API token.
const EnvAPIToken = "FOOTBALL_DATA_API_KEY"

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	API      APIConfig      `toml:"api"`
	Database DatabaseConfig `toml:"database"`
	Scan     ScanConfig     `toml:"scan"`
}

// APIConfig contains football-data.org credentials and endpoint settings.
type APIConfig struct {
	Token   string `toml:"token"`
	BaseURL string `toml:"base_url"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ScanConfig contains the default scan parameters.
type ScanConfig struct {
	AreaID            int64   `toml:"area_id"`             // governing region, e.g. 2077 for Europe
	Format            string  `toml:"format"`              // "LEAGUE", "CUP", or "" for both
	OddsLow           float64 `toml:"odds_low"`            // odds band, inclusive at both ends
	OddsHigh          float64 `toml:"odds_high"`
	WinWindow         int     `toml:"win_window"`          // matches required for a win streak
	GoalsWindow       int     `toml:"goals_window"`        // matches required for the goals check
	GoalsThreshold    int     `toml:"goals_threshold"`     // combined goals per match
	RequestsPerSecond float64 `toml:"requests_per_second"` // pacing; <= 0 disables
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
// An API token in the FOOTBALL_DATA_API_KEY environment variable overrides the file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if token := os.Getenv(EnvAPIToken); token != "" {
		config.API.Token = token
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
// The environment token override applies here as well.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	if token := os.Getenv(EnvAPIToken); token != "" {
		config.API.Token = token
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"odsearch/internal/eventbus"
)

// EnvPrefix prefixes environment overrides, e.g. ODSEARCH_API_BASE_URL
const EnvPrefix = "ODSEARCH"

// Spinner styles understood by the UI
var SpinnerStyles = []string{"dot", "line", "minidot", "points"}

// Config represents the application configuration
type Config struct {
	Version int          `toml:"version" mapstructure:"version"`
	API     APIConfig    `toml:"api" mapstructure:"api"`
	Search  SearchConfig `toml:"search" mapstructure:"search"`
	UI      UISettings   `toml:"ui" mapstructure:"ui"`
	Log     LogConfig    `toml:"log" mapstructure:"log"`
}

// APIConfig points at the search API
type APIConfig struct {
	BaseURL string `toml:"base_url" mapstructure:"base_url"`
	Timeout string `toml:"timeout" mapstructure:"timeout"` // "0s" means no timeout
}

// SearchConfig controls search cycle behavior
type SearchConfig struct {
	// SurfaceErrors shows fetch failures instead of leaving the spinner running
	SurfaceErrors bool `toml:"surface_errors" mapstructure:"surface_errors"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	Spinner          string `toml:"spinner" mapstructure:"spinner"`
	ShowDescriptions bool   `toml:"show_descriptions" mapstructure:"show_descriptions"`
}

// LogConfig controls the log file
type LogConfig struct {
	Level string `toml:"level" mapstructure:"level"`
	File  string `toml:"file" mapstructure:"file"`
}

// RequestTimeout parses the API timeout. Zero means no timeout.
func (c *Config) RequestTimeout() (time.Duration, error) {
	if c.API.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid api.timeout %q: %w", c.API.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("api.timeout must not be negative, got %s", d)
	}
	return d, nil
}

// Validate checks the configuration for values the app cannot run with
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	switch {
	case c.API.BaseURL == "":
		errs = append(errs, errors.New("api.base_url is required"))
	case err != nil:
		errs = append(errs, fmt.Errorf("invalid api.base_url: %w", err))
	case u.Scheme != "http" && u.Scheme != "https":
		errs = append(errs, fmt.Errorf("api.base_url must be http or https, got %q", c.API.BaseURL))
	case u.Host == "":
		errs = append(errs, fmt.Errorf("api.base_url has no host: %q", c.API.BaseURL))
	}

	if _, err := c.RequestTimeout(); err != nil {
		errs = append(errs, err)
	}

	if !validSpinner(c.UI.Spinner) {
		errs = append(errs, fmt.Errorf("ui.spinner must be one of %s, got %q", strings.Join(SpinnerStyles, ", "), c.UI.Spinner))
	}

	return errors.Join(errs...)
}

func validSpinner(name string) bool {
	for _, s := range SpinnerStyles {
		if s == name {
			return true
		}
	}
	return false
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.Publisher
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "odsearch", "config.toml")
}

// NewConfigService creates a config service backed by path, or DefaultPath when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.Publisher) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// Path returns the file Load and Save use
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file.
// A missing file yields the defaults with environment overrides applied.
func (cs *configService) Load() (*Config, error) {
	path := cs.filePath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		path = ""
	}

	cfg, err := read(path)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path, BaseURL: cfg.API.BaseURL})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return read(path)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// read builds a config from defaults, the optional file at path and the environment
func read(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func newViper() *viper.Viper {
	d := DefaultConfig()

	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault("version", d.Version)
	v.SetDefault("api.base_url", d.API.BaseURL)
	v.SetDefault("api.timeout", d.API.Timeout)
	v.SetDefault("search.surface_errors", d.Search.SurfaceErrors)
	v.SetDefault("ui.spinner", d.UI.Spinner)
	v.SetDefault("ui.show_descriptions", d.UI.ShowDescriptions)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APIConfig{
			BaseURL: "https://api.datascienceontology.org",
			Timeout: "0s",
		},
		Search: SearchConfig{
			SurfaceErrors: false,
		},
		UI: UISettings{
			Spinner:          "dot",
			ShowDescriptions: true,
		},
		Log: LogConfig{
			Level: "info",
			File:  "odsearch.log",
		},
	}
}

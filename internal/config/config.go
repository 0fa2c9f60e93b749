package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides, e.g. EXAMFINDER_DATA_SOURCE
const EnvPrefix = "EXAMFINDER"

// Config represents the application configuration
type Config struct {
	Version         int           `mapstructure:"version"`
	DataSource      string        `mapstructure:"data_source"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"` // 0 disables periodic reloads
	BaseURL         string        `mapstructure:"base_url"`
	Reminders       []int         `mapstructure:"reminders"` // minutes before an exam
	UptimeSince     string        `mapstructure:"uptime_since"`
	Log             LogSettings   `mapstructure:"log"`
	UI              UISettings    `mapstructure:"ui"`
}

// LogSettings controls the zerolog output
type LogSettings struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowProvenance bool `mapstructure:"show_provenance"`
}

// Since parses UptimeSince, falling back to fallback when unset or invalid
func (c *Config) Since(fallback time.Time) time.Time {
	if c.UptimeSince == "" {
		return fallback
	}
	t, err := time.Parse(time.RFC3339, c.UptimeSince)
	if err != nil {
		return fallback
	}
	return t
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
	filePath string
}

// NewConfigService creates a config service for the user's config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "examfinder", "config.toml"),
	}
}

// NewConfigServiceWithPath creates a config service bound to path
func NewConfigServiceWithPath(path string) ConfigService {
	return &configService{filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the config file when present. A missing file yields the
// defaults; environment overrides apply in both cases.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, os.ErrNotExist) {
		return read("")
	}
	return read(cs.filePath)
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
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

	data, err := toml.Marshal(toDocument(config))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// read builds a viper instance with defaults and env overrides, then
// merges the file at path if one is given
func read(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Reminders == nil {
		cfg.Reminders = []int{}
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("data_source", d.DataSource)
	v.SetDefault("refresh_interval", d.RefreshInterval)
	v.SetDefault("base_url", d.BaseURL)
	v.SetDefault("reminders", d.Reminders)
	v.SetDefault("uptime_since", d.UptimeSince)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("ui.show_provenance", d.UI.ShowProvenance)
}

// document is the on-disk TOML layout. Durations are written as strings
// like "10m0s" so the file stays editable by hand.
type document struct {
	Version         int         `toml:"version"`
	DataSource      string      `toml:"data_source"`
	RefreshInterval string      `toml:"refresh_interval"`
	BaseURL         string      `toml:"base_url"`
	Reminders       []int       `toml:"reminders"`
	UptimeSince     string      `toml:"uptime_since,omitempty"`
	Log             logDocument `toml:"log"`
	UI              uiDocument  `toml:"ui"`
}

type logDocument struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type uiDocument struct {
	ShowProvenance bool `toml:"show_provenance"`
}

func toDocument(c *Config) document {
	reminders := c.Reminders
	if reminders == nil {
		reminders = []int{}
	}
	return document{
		Version:         c.Version,
		DataSource:      c.DataSource,
		RefreshInterval: c.RefreshInterval.String(),
		BaseURL:         c.BaseURL,
		Reminders:       reminders,
		UptimeSince:     c.UptimeSince,
		Log:             logDocument{Level: c.Log.Level, File: c.Log.File},
		UI:              uiDocument{ShowProvenance: c.UI.ShowProvenance},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:         1,
		DataSource:      "exams.json",
		RefreshInterval: 0,
		BaseURL:         "https://exams.example.edu/finder",
		Reminders:       []int{30, 60},
		Log: LogSettings{
			Level: "info",
			File:  "examfinder.log",
		},
		UI: UISettings{
			ShowProvenance: true,
		},
	}
}

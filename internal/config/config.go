package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"outcomepicker/internal/eventbus"
)

// Source kinds understood by the catalog package
const (
	SourceMemory = "memory"
	SourceSQLite = "sqlite"
	SourceHTTP   = "http"
)

// EnvPrefix is the prefix for environment overrides, e.g. OUTCOMEPICKER_PICKER_PAGE_SIZE
const EnvPrefix = "OUTCOMEPICKER"

// Config represents the application configuration
type Config struct {
	Version    int            `mapstructure:"version"`
	LogFile    string         `mapstructure:"log_file"`
	Source     SourceConfig   `mapstructure:"source"`
	Picker     PickerSettings `mapstructure:"picker"`
	UISettings UISettings     `mapstructure:"ui"`
}

// SourceConfig selects where outcomes come from
type SourceConfig struct {
	Kind    string        `mapstructure:"kind"`    // memory, sqlite or http
	Path    string        `mapstructure:"path"`    // catalog file (memory) or database (sqlite)
	URL     string        `mapstructure:"url"`     // base URL (http)
	Timeout time.Duration `mapstructure:"timeout"` // per request
}

// PickerSettings controls search and paging behaviour
type PickerSettings struct {
	Title    string        `mapstructure:"title"`
	PageSize int           `mapstructure:"page_size"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowDescriptions bool `mapstructure:"show_descriptions"`
	ShowLabels       bool `mapstructure:"show_labels"`
}

// fileConfig is the on-disk TOML shape; durations are written as strings
type fileConfig struct {
	Version int    `toml:"version"`
	LogFile string `toml:"log_file,omitempty"`
	Source  struct {
		Kind    string `toml:"kind"`
		Path    string `toml:"path,omitempty"`
		URL     string `toml:"url,omitempty"`
		Timeout string `toml:"timeout"`
	} `toml:"source"`
	Picker struct {
		Title    string `toml:"title"`
		PageSize int    `toml:"page_size"`
		Debounce string `toml:"debounce"`
	} `toml:"picker"`
	UI struct {
		ShowDescriptions bool `toml:"show_descriptions"`
		ShowLabels       bool `toml:"show_labels"`
	} `toml:"ui"`
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
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns ~/.config/outcomepicker/config.toml (or the platform equivalent)
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
	return filepath.Join(configDir, "outcomepicker", "config.toml")
}

// DataDir returns the directory for the catalog database and the log file
func DataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataDir, "outcomepicker")
}

// NewConfigService creates a config service for path; an empty path means DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when the
// file does not exist. Environment overrides apply in both cases.
func (cs *configService) Load() (*Config, error) {
	var (
		cfg *Config
		err error
	)
	if _, statErr := os.Stat(cs.filePath); os.IsNotExist(statErr) {
		cfg, err = load(newViper(), "")
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
	}
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:       cs.filePath,
			SourceKind: cfg.Source.Kind,
		})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
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
	return load(newViper(), path)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(toFile(config))
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		LogFile: filepath.Join(DataDir(), "outcomepicker.log"),
		Source: SourceConfig{
			Kind:    SourceSQLite,
			Path:    filepath.Join(DataDir(), "catalog.db"),
			Timeout: 10 * time.Second,
		},
		Picker: PickerSettings{
			Title:    "Outcomes",
			PageSize: 10,
			Debounce: 250 * time.Millisecond,
		},
		UISettings: UISettings{
			ShowDescriptions: true,
			ShowLabels:       true,
		},
	}
}

// Validate checks the values a picker cannot run without
func (c *Config) Validate() error {
	var errs []error
	switch c.Source.Kind {
	case SourceMemory, SourceSQLite:
		if c.Source.Path == "" {
			errs = append(errs, fmt.Errorf("source.path is required for %s sources", c.Source.Kind))
		}
	case SourceHTTP:
		if c.Source.URL == "" {
			errs = append(errs, errors.New("source.url is required for http sources"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown source.kind %q", c.Source.Kind))
	}
	if c.Picker.PageSize <= 0 {
		errs = append(errs, fmt.Errorf("picker.page_size must be positive, got %d", c.Picker.PageSize))
	}
	if c.Picker.Debounce < 0 {
		errs = append(errs, errors.New("picker.debounce must not be negative"))
	}
	return errors.Join(errs...)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("version", d.Version)
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("source.kind", d.Source.Kind)
	v.SetDefault("source.path", d.Source.Path)
	v.SetDefault("source.url", d.Source.URL)
	v.SetDefault("source.timeout", d.Source.Timeout)
	v.SetDefault("picker.title", d.Picker.Title)
	v.SetDefault("picker.page_size", d.Picker.PageSize)
	v.SetDefault("picker.debounce", d.Picker.Debounce)
	v.SetDefault("ui.show_descriptions", d.UISettings.ShowDescriptions)
	v.SetDefault("ui.show_labels", d.UISettings.ShowLabels)
}

func load(v *viper.Viper, path string) (*Config, error) {
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
	return &cfg, nil
}

func toFile(c *Config) fileConfig {
	var f fileConfig
	f.Version = c.Version
	f.LogFile = c.LogFile
	f.Source.Kind = c.Source.Kind
	f.Source.Path = c.Source.Path
	f.Source.URL = c.Source.URL
	f.Source.Timeout = c.Source.Timeout.String()
	f.Picker.Title = c.Picker.Title
	f.Picker.PageSize = c.Picker.PageSize
	f.Picker.Debounce = c.Picker.Debounce.String()
	f.UI.ShowDescriptions = c.UISettings.ShowDescriptions
	f.UI.ShowLabels = c.UISettings.ShowLabels
	return f
}

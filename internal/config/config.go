package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"dirgrip/internal/eventbus"
)

// DefaultMaxHistory bounds the navigable history list
const DefaultMaxHistory = 20

// Config represents the application configuration
type Config struct {
	Version int             `toml:"version"`
	History HistorySettings `toml:"history"`
	Startup StartupSettings `toml:"startup"`
	UI      UISettings      `toml:"ui"`
}

// HistorySettings holds the persisted directory history
type HistorySettings struct {
	Entries    []string `toml:"entries"`
	MaxEntries int      `toml:"max_entries"`
}

// StartupSettings selects the directory used when history is empty
type StartupSettings struct {
	UseHomeDirectory  bool   `toml:"use_home_directory"`
	UseFixedDirectory bool   `toml:"use_fixed_directory"`
	FixedDirectory    string `toml:"fixed_directory"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowVisitLog  bool `toml:"show_visit_log"`
	ConfirmOnQuit bool `toml:"confirm_on_quit"`
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

// NewConfigService creates a new config service
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

	dirgripDir := filepath.Join(configDir, "dirgrip")
	os.MkdirAll(dirgripDir, 0755)

	return &configService{
		filePath: filepath.Join(dirgripDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		// Return default config if file doesn't exist
		cfg = DefaultConfig()
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			History:    cfg.History.Entries,
			MaxHistory: cfg.History.MaxEntries,
		})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}
	return nil
}

// Path returns the location of the config file
func (cs *configService) Path() string {
	return cs.filePath
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.History.MaxEntries <= 0 {
		cfg.History.MaxEntries = DefaultMaxHistory
	}
	return &cfg, nil
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

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		History: HistorySettings{
			MaxEntries: DefaultMaxHistory,
		},
		Startup: StartupSettings{
			UseHomeDirectory: true,
		},
		UI: UISettings{
			ShowVisitLog:  true,
			ConfirmOnQuit: false,
		},
	}
}

// Package config handles configuration management using Viper
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Defaults for newly created windows
	Editor EditorConfig `mapstructure:"editor"`

	// Monitor preview canvas
	Preview PreviewConfig `mapstructure:"preview"`

	// Monitor detection
	Display DisplayConfig `mapstructure:"display"`

	// Cluster document written by export
	Export ExportConfig `mapstructure:"export"`

	// SSH-hosted editor
	Server ServerConfig `mapstructure:"server"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// EditorConfig contains defaults applied to new windows
type EditorConfig struct {
	MaxWindowPixels   int    `mapstructure:"max_window_pixels"`
	DefaultProjection string `mapstructure:"default_projection"`
	DefaultQuality    int    `mapstructure:"default_quality"` // cube-map resolution, e.g. 1024
	ProfilePath       string `mapstructure:"profile_path"`    // where ctrl+s saves the editor state
}

// PreviewConfig sizes the monitor preview in terminal cells
type PreviewConfig struct {
	Columns int `mapstructure:"columns"`
	Rows    int `mapstructure:"rows"`
}

// DisplayConfig selects the monitor detection backend
type DisplayConfig struct {
	Backend  string          `mapstructure:"backend"` // auto, wlr-randr, xrandr, static
	Monitors []MonitorConfig `mapstructure:"monitors"`
}

// MonitorConfig describes a monitor for the static backend
type MonitorConfig struct {
	Name   string `mapstructure:"name"`
	X      int    `mapstructure:"x"`
	Y      int    `mapstructure:"y"`
	Width  int    `mapstructure:"width"`
	Height int    `mapstructure:"height"`
}

// ExportConfig contains settings for the exported cluster document
type ExportConfig struct {
	Path          string `mapstructure:"path"`
	MasterAddress string `mapstructure:"master_address"`
	Port          int    `mapstructure:"port"`
}

// ServerConfig contains server-specific settings
type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	BindAddress string `mapstructure:"bind_address"`
	MaxSessions int    `mapstructure:"max_sessions"` // 0 means unlimited

	// SSH configuration
	SSHHostKeyPath   string   `mapstructure:"ssh_host_key_path"`
	SSHWhitelist     []string `mapstructure:"ssh_whitelist"`      // List of allowed SSH key fingerprints
	SSHWhitelistOnly bool     `mapstructure:"ssh_whitelist_only"` // Only allow whitelisted keys
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
	LogFile  string `mapstructure:"log_file"`  // Where logs go while the editor owns the terminal
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Editor: EditorConfig{
			MaxWindowPixels:   10000,
			DefaultProjection: "Planar",
			DefaultQuality:    1024,
			ProfilePath:       "waylayout-profile.yaml",
		},
		Preview: PreviewConfig{
			Columns: 64,
			Rows:    16,
		},
		Display: DisplayConfig{
			Backend:  "auto",
			Monitors: []MonitorConfig{},
		},
		Export: ExportConfig{
			Path:          "waylayout.json",
			MasterAddress: "localhost",
			Port:          20401,
		},
		Server: ServerConfig{
			Port:             23234,
			BindAddress:      "127.0.0.1",
			MaxSessions:      4,
			SSHHostKeyPath:   filepath.Join(configDir(), "host_key"),
			SSHWhitelist:     []string{},
			SSHWhitelistOnly: true,
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
			LogFile:  "",
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	// Set config name and type
	viper.SetConfigName("waylayout")
	viper.SetConfigType("toml")

	// If a specific path is set, use only that
	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		viper.AddConfigPath(configDir())
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	viper.SetEnvPrefix("WAYLAYOUT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	// Unmarshal config
	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return err
	}
	cfg = c

	return nil
}

// setDefaults registers individual fields so partial files merge properly
func setDefaults() {
	viper.SetDefault("editor.max_window_pixels", DefaultConfig.Editor.MaxWindowPixels)
	viper.SetDefault("editor.default_projection", DefaultConfig.Editor.DefaultProjection)
	viper.SetDefault("editor.default_quality", DefaultConfig.Editor.DefaultQuality)
	viper.SetDefault("editor.profile_path", DefaultConfig.Editor.ProfilePath)

	viper.SetDefault("preview.columns", DefaultConfig.Preview.Columns)
	viper.SetDefault("preview.rows", DefaultConfig.Preview.Rows)

	viper.SetDefault("display.backend", DefaultConfig.Display.Backend)
	viper.SetDefault("display.monitors", DefaultConfig.Display.Monitors)

	viper.SetDefault("export.path", DefaultConfig.Export.Path)
	viper.SetDefault("export.master_address", DefaultConfig.Export.MasterAddress)
	viper.SetDefault("export.port", DefaultConfig.Export.Port)

	viper.SetDefault("server.port", DefaultConfig.Server.Port)
	viper.SetDefault("server.bind_address", DefaultConfig.Server.BindAddress)
	viper.SetDefault("server.max_sessions", DefaultConfig.Server.MaxSessions)
	viper.SetDefault("server.ssh_host_key_path", DefaultConfig.Server.SSHHostKeyPath)
	viper.SetDefault("server.ssh_whitelist", DefaultConfig.Server.SSHWhitelist)
	viper.SetDefault("server.ssh_whitelist_only", DefaultConfig.Server.SSHWhitelistOnly)

	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)
	viper.SetDefault("logging.log_file", DefaultConfig.Logging.LogFile)
}

// Validate checks values that would otherwise fail much later
func (c *Config) Validate() error {
	if c.Editor.MaxWindowPixels < 10 {
		return fmt.Errorf("editor.max_window_pixels must be at least 10, got %d", c.Editor.MaxWindowPixels)
	}
	if c.Preview.Columns < 8 || c.Preview.Rows < 4 {
		return fmt.Errorf("preview must be at least 8x4 cells, got %dx%d", c.Preview.Columns, c.Preview.Rows)
	}
	for i, m := range c.Display.Monitors {
		if m.Width <= 0 || m.Height <= 0 {
			return fmt.Errorf("display.monitors[%d] (%s) has invalid size %dx%d", i, m.Name, m.Width, m.Height)
		}
	}
	if c.Export.Port <= 0 || c.Export.Port > 65535 {
		return fmt.Errorf("export.port out of range: %d", c.Export.Port)
	}
	if c.Server.MaxSessions < 0 {
		return fmt.Errorf("server.max_sessions must not be negative, got %d", c.Server.MaxSessions)
	}
	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save saves the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	// Create directory if it doesn't exist
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Write config
	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	// If override is set, use that
	if configPathOverride != "" {
		return configPathOverride
	}

	// Check if config file is already loaded
	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	return filepath.Join(configDir(), "waylayout.toml")
}

// AddSSHKeyToWhitelist adds an SSH key fingerprint to the whitelist
func AddSSHKeyToWhitelist(fingerprint string) error {
	cfg := Get()

	// Check if already whitelisted
	for _, fp := range cfg.Server.SSHWhitelist {
		if fp == fingerprint {
			return fmt.Errorf("key already whitelisted")
		}
	}

	// Add to whitelist
	cfg.Server.SSHWhitelist = append(cfg.Server.SSHWhitelist, fingerprint)
	viper.Set("server.ssh_whitelist", cfg.Server.SSHWhitelist)
	return Save()
}

// RemoveSSHKeyFromWhitelist removes an SSH key fingerprint from the whitelist
func RemoveSSHKeyFromWhitelist(fingerprint string) error {
	cfg := Get()

	// Find and remove
	for i, fp := range cfg.Server.SSHWhitelist {
		if fp == fingerprint {
			cfg.Server.SSHWhitelist = append(cfg.Server.SSHWhitelist[:i], cfg.Server.SSHWhitelist[i+1:]...)
			viper.Set("server.ssh_whitelist", cfg.Server.SSHWhitelist)
			return Save()
		}
	}

	return fmt.Errorf("key not found in whitelist")
}

// IsSSHKeyWhitelisted checks if an SSH key fingerprint is whitelisted
func IsSSHKeyWhitelisted(fingerprint string) bool {
	cfg := Get()

	for _, fp := range cfg.Server.SSHWhitelist {
		if fp == fingerprint {
			return true
		}
	}

	return false
}

// configDir is ~/.config/waylayout, or the working directory when HOME is unknown
func configDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "waylayout")
	}
	return "."
}

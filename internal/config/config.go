package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DirName is the directory under the user's home holding CLI state
	DirName = ".memberdesk"

	// FileName is the global config file name
	FileName = "config.json"

	// EnvPrefix prefixes environment overrides, e.g. MEMBERDESK_SERVER_URL
	EnvPrefix = "MEMBERDESK"

	// DefaultServerURL is used when nothing else is configured
	DefaultServerURL = "http://localhost:8080"
)

// Config represents the application configuration
type Config struct {
	// API server URL
	ServerURL string `json:"server_url" mapstructure:"server_url"`

	// Authentication token (will be populated after login)
	AuthToken string `json:"auth_token,omitempty" mapstructure:"auth_token"`

	// Signed-in staff user
	UserID string `json:"user_id,omitempty" mapstructure:"user_id"`
	Email  string `json:"email,omitempty" mapstructure:"email"`

	// Runtime environment, "production" switches to JSON logs
	Env string `json:"env,omitempty" mapstructure:"env"`

	// Log level: debug, info, warn, error
	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level"`

	// IANA time zone of the gym, used for ages and contract dates
	Timezone string `json:"timezone,omitempty" mapstructure:"timezone"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server_url", DefaultServerURL)
	v.SetDefault("auth_token", "")
	v.SetDefault("user_id", "")
	v.SetDefault("email", "")
	v.SetDefault("env", "development")
	v.SetDefault("log_level", "warn")
	v.SetDefault("timezone", "America/Los_Angeles")
}

// Load loads the configuration from the given file path. A missing file is
// not an error; defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	return &cfg, nil
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	// The file holds the auth token
	return os.WriteFile(path, data, 0600)
}

// Location returns the configured time zone, falling back to local time
func (c *Config) Location() *time.Location {
	if c == nil || c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoggedIn reports whether an auth token is available
func (c *Config) LoggedIn() bool {
	return c != nil && c.AuthToken != ""
}

// GetGlobalConfigDir returns ~/.memberdesk, or $MEMBERDESK_HOME when set
func GetGlobalConfigDir() (string, error) {
	if dir := os.Getenv(EnvPrefix + "_HOME"); dir != "" {
		return dir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	return filepath.Join(homeDir, DirName), nil
}

// GetGlobalConfigPath returns the path of the global config file
func GetGlobalConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// LoadGlobalConfig loads the global config file
func LoadGlobalConfig() (*Config, error) {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

// SaveGlobalConfig writes the global config file
func SaveGlobalConfig(cfg *Config) error {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return err
	}
	return cfg.Save(path)
}

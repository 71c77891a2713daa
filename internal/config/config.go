// Package config loads and persists roster settings with Viper. Two values
// live in the config file: the REST base URL the dashboard talks to (read
// once at startup) and the sidebar collapse preference (written back on
// every toggle).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	// Config keys.
	keyBaseURL          = "base_url"
	keySidebarCollapsed = "sidebar_collapsed"

	// EnvBaseURL overrides base_url when set.
	EnvBaseURL = "ROSTER_BASE_URL"

	// DefaultBaseURL is used when neither config file nor environment
	// provides one.
	DefaultBaseURL = "http://localhost:3000"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Roster configuration

# Base URL of the users REST API (overridable by ROSTER_BASE_URL or --base-url)
base_url: http://localhost:3000

# Sidebar collapse preference; managed by the dashboard
sidebar_collapsed: false
`

// Config is the loaded settings plus the handle needed to write the
// sidebar preference back.
type Config struct {
	BaseURL          string
	SidebarCollapsed bool

	v    *viper.Viper
	path string
}

// Load reads config.yaml from the given directory, creating the directory
// and a default file on first run. A missing config.yaml is not an error.
// ROSTER_BASE_URL wins over the file value.
func Load(configDir string) (*Config, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(keyBaseURL, DefaultBaseURL)
	v.SetDefault(keySidebarCollapsed, false)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.BindEnv(keyBaseURL, EnvBaseURL); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	return &Config{
		BaseURL:          v.GetString(keyBaseURL),
		SidebarCollapsed: v.GetBool(keySidebarCollapsed),
		v:                v,
		path:             filepath.Join(configDir, configFileExt),
	}, nil
}

// SetSidebarCollapsed updates the preference and writes the config file.
func (c *Config) SetSidebarCollapsed(collapsed bool) error {
	c.SidebarCollapsed = collapsed
	c.v.Set(keySidebarCollapsed, collapsed)
	if err := c.v.WriteConfigAs(c.path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		// File already exists.
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

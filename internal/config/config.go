package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// DataDir overrides where the database and settings live.
	// Empty means ~/.obra.
	DataDir string `yaml:"data_dir"`

	// Locale drives currency and number formatting, e.g. "es-ES"
	Locale string `yaml:"locale"`

	KeyMappings KeyMappings `yaml:"key_mappings"`
	ColorScheme ColorScheme `yaml:"theme"`
}

// Load loads config from the user's config directory.
// Returns default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return defaultConfig(), nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return defaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()
	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

func defaultConfig() *Config {
	return &Config{
		Locale:      "es-ES",
		KeyMappings: DefaultKeyMappings(),
		ColorScheme: DefaultColorScheme(),
	}
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "obra", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "obra", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Locale == "" {
		c.Locale = "es-ES"
	}
	c.KeyMappings.applyDefaults()
	c.ColorScheme.applyDefaults()
}

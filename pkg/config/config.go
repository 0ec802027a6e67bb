package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml.sample
var configTemplate string

// DefaultPageSize is the number of cards shown per "load more" step when
// the config does not override it.
const DefaultPageSize = 24

// Config describes a commdeck installation: where the communication
// collection lives, how it is indexed and how the web UI serves it.
type Config struct {
	// Items is the path or http(s) URL of the {"items": [...]} document.
	Items string `toml:"items"`
	// IndexSummaries enables the secondary search index over summaries.
	IndexSummaries bool `toml:"index_summaries"`
	// PageSize is the card count per load-more step. Defaults to 24.
	PageSize int `toml:"page_size"`
	Web      Web `toml:"web"`
}

// Web holds the serve command's listen address.
type Web struct {
	Host string `toml:"host"`
	Port string `toml:"port"`
}

func GetDefaultConfig() (*Config, error) {
	items, err := GetDefaultItemsPath()
	if err != nil {
		return nil, fmt.Errorf("getting default items path: %w", err)
	}
	return &Config{
		Items:          items,
		IndexSummaries: true,
		PageSize:       DefaultPageSize,
		Web:            Web{Host: "localhost", Port: "8080"},
	}, nil
}

func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefaultConfig()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if config.Items == "" {
		items, err := GetDefaultItemsPath()
		if err != nil {
			return nil, fmt.Errorf("getting default items path: %w", err)
		}
		config.Items = items
	}
	if config.PageSize <= 0 {
		config.PageSize = DefaultPageSize
	}
	if config.Web.Host == "" {
		config.Web.Host = "localhost"
	}
	if config.Web.Port == "" {
		config.Web.Port = "8080"
	}

	return &config, nil
}

func (c *Config) SaveConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

func (c *Config) SaveTemplateConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	template, err := c.generateConfigTemplate()
	if err != nil {
		return fmt.Errorf("generating config template: %w", err)
	}
	return os.WriteFile(configPath, []byte(template), 0644)
}

func (c *Config) generateConfigTemplate() (string, error) {
	items := c.Items
	if items == "" {
		var err error
		items, err = GetDefaultItemsPath()
		if err != nil {
			return "", fmt.Errorf("getting default items path: %w", err)
		}
	}

	// Replace the placeholder items path with the actual path
	template := strings.Replace(configTemplate, "/home/user/.local/share/commdeck/items.json", items, 1)
	return template, nil
}

// GetDefaultDataDir returns the default data directory for item documents
func GetDefaultDataDir() (string, error) {
	// Use XDG_DATA_HOME if set, otherwise use ~/.local/share
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	commdeckDir := filepath.Join(dataDir, "commdeck")

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(commdeckDir, 0755); err != nil {
		return "", fmt.Errorf("creating data directory %s: %w", commdeckDir, err)
	}

	return commdeckDir, nil
}

// GetDefaultItemsPath returns the default items document path in the user's
// data directory
func GetDefaultItemsPath() (string, error) {
	dataDir, err := GetDefaultDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, "items.json"), nil
}

// GetConfigDir returns the configuration directory for commdeck
func GetConfigDir() (string, error) {
	// Use XDG_CONFIG_HOME if set, otherwise use ~/.config
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	commdeckConfigDir := filepath.Join(configDir, "commdeck")

	// Create the directory if it doesn't exist
	if err := os.MkdirAll(commdeckConfigDir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory %s: %w", commdeckConfigDir, err)
	}

	return commdeckConfigDir, nil
}

// GetDefaultConfigPath returns the default configuration file path
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

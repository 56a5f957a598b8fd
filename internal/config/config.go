package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

// Config holds all configuration for glycemic.
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig says where the food and recipe data come from. Empty paths
// select the bundled data.
type CatalogConfig struct {
	Path            string `mapstructure:"path"`
	RecipesPath     string `mapstructure:"recipes_path"`
	DefaultCategory string `mapstructure:"default_category"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.recipes_path", "")
	v.SetDefault("catalog.default_category", string(models.DefaultCategory))

	v.SetDefault("server.port", "8888")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetConfigName("glycemic")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(homeDir(), ".glycemic"))
	v.AddConfigPath(".")

	v.SetEnvPrefix("GLYCEMIC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that configuration values are usable.
func (c *Config) Validate() error {
	if _, ok := models.ParseCategory(c.Catalog.DefaultCategory); !ok {
		return fmt.Errorf("catalog.default_category %q is not a known category", c.Catalog.DefaultCategory)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server.port must not be empty")
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json")
	}
	return nil
}

// DefaultCategory returns the configured starting category
func (c *Config) DefaultCategory() models.Category {
	category, ok := models.ParseCategory(c.Catalog.DefaultCategory)
	if !ok {
		return models.DefaultCategory
	}
	return category
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

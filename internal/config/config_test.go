package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehigh-university-libraries/glycemic/internal/models"
)

// isolate points HOME and the working directory at empty temp dirs so no
// real config file is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)
	return dir
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.Catalog.Path)
	assert.Empty(t, cfg.Catalog.RecipesPath)
	assert.Equal(t, models.CategoryFruit, cfg.DefaultCategory())
	assert.Equal(t, "8888", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("GLYCEMIC_CATALOG_PATH", "/data/foods.parquet")
	t.Setenv("GLYCEMIC_CATALOG_DEFAULT_CATEGORY", "vegetable")
	t.Setenv("GLYCEMIC_SERVER_PORT", "9000")
	t.Setenv("GLYCEMIC_LOGGING_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/foods.parquet", cfg.Catalog.Path)
	assert.Equal(t, models.CategoryVegetable, cfg.DefaultCategory())
	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfigFile(t *testing.T) {
	dir := isolate(t)
	content := `catalog:
  recipes_path: ./recipes.yaml
  default_category: Chinese Cuisine
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "glycemic.yaml"), []byte(content), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "./recipes.yaml", cfg.Catalog.RecipesPath)
	assert.Equal(t, models.CategoryChinese, cfg.DefaultCategory())
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsInvalid(t *testing.T) {
	isolate(t)
	t.Setenv("GLYCEMIC_CATALOG_DEFAULT_CATEGORY", "Dessert")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Catalog: CatalogConfig{DefaultCategory: "Fruit"},
		Server:  ServerConfig{Port: "8888"},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown category", func(c *Config) { c.Catalog.DefaultCategory = "Dessert" }},
		{"empty port", func(c *Config) { c.Server.Port = "" }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

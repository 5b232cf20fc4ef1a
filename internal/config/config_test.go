package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdpboard/internal/engine"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	// Isolated viper instance, no files or env
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadWithViper(v)
	require.NoError(t, err)

	assert.Equal(t, "Asia", cfg.Query.Region)
	assert.Equal(t, 2020, cfg.Query.Year)
	assert.Equal(t, "average", cfg.Query.Operation)
	assert.Equal(t, DefaultDataPath, cfg.Data.Path)
	assert.Equal(t, "Country Name", cfg.Data.NameColumn)
	assert.Equal(t, "Continent", cfg.Data.GroupColumn)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
}

func TestLoadFromFile_LegacyJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"region": "Europe", "year": 2015, "operation": "sum"}`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "Europe", cfg.Query.Region)
	assert.Equal(t, 2015, cfg.Query.Year)
	assert.Equal(t, "sum", cfg.Query.Operation)
}

func TestLoadFromFile_NestedTOML(t *testing.T) {
	path := writeFile(t, "gdp.toml", `
[query]
region = "France"
year = 2019
operation = "sum"

[data]
path = "/data/gdp.csv"

[server]
port = 9090
rate_limit = 0
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "France", cfg.Query.Region)
	assert.Equal(t, "/data/gdp.csv", cfg.Data.Path)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.0, cfg.Server.RateLimit)
}

func TestLoadFromFile_NestedKeysWinOverLegacy(t *testing.T) {
	path := writeFile(t, "config.yaml", "region: Europe\nquery:\n  region: Africa\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Africa", cfg.Query.Region)
}

func TestLoadFromFile_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "config.json", `{"query": {"region": "Europe"}}`)
	t.Setenv("GDPBOARD_QUERY_REGION", "Oceania")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Oceania", cfg.Query.Region)
}

func TestLoadFromFile_LogSection(t *testing.T) {
	path := writeFile(t, "config.yaml", "log:\n  verbose: true\n")
	t.Setenv("GDPBOARD_LOG_JSON", "true")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Log.JSON)
	assert.True(t, cfg.Log.Verbose)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadFromFile_UnsupportedOperation(t *testing.T) {
	path := writeFile(t, "config.json", `{"region": "Europe", "year": 2015, "operation": "median"}`)

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, engine.ErrUnsupportedOperation))
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Query:  QueryConfig{Region: "Asia", Year: 2020, Operation: "sum"},
			Data:   DataConfig{Path: "x.csv", NameColumn: "Country Name", GroupColumn: "Continent"},
			Server: ServerConfig{Port: 8080, RateLimit: 10},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"year zero is valid", func(c *Config) { c.Query.Year = 0 }, false},
		{"rate limit disabled", func(c *Config) { c.Server.RateLimit = 0 }, false},
		{"empty region", func(c *Config) { c.Query.Region = "" }, true},
		{"negative year", func(c *Config) { c.Query.Year = -1 }, true},
		{"bad operation", func(c *Config) { c.Query.Operation = "max" }, true},
		{"empty operation", func(c *Config) { c.Query.Operation = "" }, true},
		{"empty data path", func(c *Config) { c.Data.Path = "" }, true},
		{"empty name column", func(c *Config) { c.Data.NameColumn = "" }, true},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }, true},
		{"negative rate limit", func(c *Config) { c.Server.RateLimit = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

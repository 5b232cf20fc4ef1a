// Package config loads gdpboard settings with Viper.
//
// Precedence, lowest to highest: defaults < config file < GDPBOARD_* env vars
// < explicit overrides set by the caller (usually CLI flags).
//
// The flat keys of the legacy config.json format ("region", "year",
// "operation") are still honored and replace the built-in defaults.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

const EnvPrefix = "GDPBOARD"

// DefaultConfigName is searched for (config.json, config.toml, config.yaml...)
// in the working directory when no explicit file is given.
const DefaultConfigName = "config"

type Config struct {
	Query  QueryConfig  `mapstructure:"query"`
	Data   DataConfig   `mapstructure:"data"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// QueryConfig is the dashboard query: an aggregate of region in year.
type QueryConfig struct {
	Region    string `mapstructure:"region"`
	Year      int    `mapstructure:"year"`
	Operation string `mapstructure:"operation"`
}

type DataConfig struct {
	Path        string `mapstructure:"path"`
	NameColumn  string `mapstructure:"name_column"`
	GroupColumn string `mapstructure:"group_column"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
	// Requests per second allowed per client, 0 disables limiting
	RateLimit float64 `mapstructure:"rate_limit"`
}

type LogConfig struct {
	JSON    bool `mapstructure:"json"`
	Verbose bool `mapstructure:"verbose"`
}

// NewViper builds a Viper instance with defaults and env binding, then reads
// path if given, or the first config.* file in the working directory.
// A missing default config file is not an error; a missing explicit one is.
func NewViper(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
		return v, nil
	}

	v.SetConfigName(DefaultConfigName)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}
	return v, nil
}

// LoadWithViper unmarshals and validates the configuration held by v.
// It is safe to call again after v re-reads its file.
func LoadWithViper(v *viper.Viper) (*Config, error) {
	applyLegacyKeys(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v, err := NewViper(path)
	if err != nil {
		return nil, err
	}
	return LoadWithViper(v)
}

// applyLegacyKeys turns the top-level region/year/operation keys of the
// flat config.json layout into defaults for the query section, so the
// nested keys, env vars and flags still win over them.
func applyLegacyKeys(v *viper.Viper) {
	for _, key := range []string{"region", "year", "operation"} {
		if v.InConfig(key) {
			v.SetDefault("query."+key, v.Get(key))
		}
	}
}

package config

import (
	"github.com/spf13/viper"

	"gdpboard/internal/engine"
)

const (
	DefaultDataPath = "assets/World_Bank_Dataset.csv"
	DefaultPort     = 8080
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Query defaults
	v.SetDefault("query.region", "Asia")
	v.SetDefault("query.year", 2020)
	v.SetDefault("query.operation", string(engine.OpAverage))

	// Data source defaults
	v.SetDefault("data.path", DefaultDataPath)
	v.SetDefault("data.name_column", engine.DefaultNameColumn)
	v.SetDefault("data.group_column", engine.DefaultGroupColumn)

	// Server defaults
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.rate_limit", 20.0)

	v.SetDefault("log.json", false)
	v.SetDefault("log.verbose", false)
}

package config

import (
	"github.com/cockroachdb/errors"

	"gdpboard/internal/engine"
)

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	if c.Query.Region == "" {
		return errors.New("query.region cannot be empty")
	}
	if c.Query.Year < 0 {
		return errors.Newf("query.year must be >= 0, got %d", c.Query.Year)
	}
	// Unsupported operations are fatal and never fall back to a default
	if _, err := engine.ParseOperation(c.Query.Operation); err != nil {
		return errors.Wrap(err, "query.operation")
	}

	if c.Data.Path == "" {
		return errors.New("data.path cannot be empty")
	}
	if c.Data.NameColumn == "" || c.Data.GroupColumn == "" {
		return errors.New("data.name_column and data.group_column cannot be empty")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.Newf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return errors.Newf("server.rate_limit must be >= 0, got %f", c.Server.RateLimit)
	}
	return nil
}

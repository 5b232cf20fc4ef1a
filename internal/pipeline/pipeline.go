// Package pipeline wires the loader, reshaper, query engine and aggregator
// into one run that produces a dashboard.
package pipeline

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"gdpboard/internal/config"
	"gdpboard/internal/engine"
	"gdpboard/internal/logger"
	"gdpboard/internal/models"
)

// Controller owns the dataset for one run. It holds no package level state;
// everything it needs comes from the config it was built with.
type Controller struct {
	cfg config.Config
	log *zap.SugaredLogger
}

func New(cfg config.Config, log *zap.SugaredLogger) *Controller {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Controller{cfg: cfg, log: log.Named("pipeline")}
}

// Load reads and reshapes the configured data source.
func (c *Controller) Load(ctx context.Context) (*engine.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := engine.LoadSourceRows(c.cfg.Data.Path, c.log)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	ds, err := engine.Reshape(src.Rows,
		engine.WithNameColumn(c.cfg.Data.NameColumn),
		engine.WithGroupColumn(c.cfg.Data.GroupColumn))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to reshape %s", c.cfg.Data.Path)
	}

	c.log.Debugw("Reshaped dataset",
		logger.FieldRows, len(src.Rows),
		logger.FieldRecords, ds.Len(),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return ds, nil
}

// Run loads the data and answers the configured query.
func (c *Controller) Run(ctx context.Context) (*models.Dashboard, *engine.Dataset, error) {
	q := models.Query{
		Region:    c.cfg.Query.Region,
		Year:      c.cfg.Query.Year,
		Operation: c.cfg.Query.Operation,
	}
	// Fail on a bad operation before touching the data source
	if _, err := engine.ParseOperation(q.Operation); err != nil {
		return nil, nil, err
	}

	ds, err := c.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	dash, err := Query(ds, q)
	if err != nil {
		return nil, nil, err
	}

	c.log.Infow("Query answered",
		logger.FieldRegion, q.Region,
		logger.FieldYear, q.Year,
		logger.FieldOperation, q.Operation,
		logger.FieldScope, dash.Scope,
		logger.FieldMatches, len(dash.Matches))
	return dash, ds, nil
}

// Query answers q against an already built dataset. The dataset is only read,
// so concurrent calls on the same dataset are safe.
func Query(ds *engine.Dataset, q models.Query) (*models.Dashboard, error) {
	op, err := engine.ParseOperation(q.Operation)
	if err != nil {
		return nil, err
	}

	matches := engine.Select(ds, q.Region, q.Year, engine.KindFilterFor(q.Region))
	result, err := engine.Aggregate(matches, op)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{
		Query:   q,
		Scope:   engine.ScopeOf(q.Region),
		Result:  result,
		Matches: matches,
		Trend:   engine.Trend(ds, q.Region),
		Slice:   engine.Slice(ds, q.Year),
		Slope:   engine.Slope(ds, q.Year),
	}, nil
}

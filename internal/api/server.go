package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"gdpboard/internal/config"
	"gdpboard/internal/logger"
	"gdpboard/internal/pipeline"
)

// NewServer builds the echo instance with middleware and routes registered.
func NewServer(h *Handler, cfg config.ServerConfig, log *zap.SugaredLogger) *echo.Echo {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Infow("Request",
				logger.FieldMethod, v.Method,
				logger.FieldPath, v.URI,
				logger.FieldStatus, v.Status,
				logger.FieldRequestID, v.RequestID,
				logger.FieldDurationMS, v.Latency.Milliseconds())
			return nil
		},
	}))
	if cfg.RateLimit > 0 {
		e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimit))))
	}

	h.RegisterRoutes(e)
	return e
}

// LoadSnapshot runs the pipeline once and packages the result for SetData.
func LoadSnapshot(ctx context.Context, c *pipeline.Controller) (*Snapshot, error) {
	dash, ds, err := c.Run(ctx)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Dataset: ds, Dashboard: dash}, nil
}

// Refresh loads cfg into h, then reloads on every config received from
// reload until ctx is done or reload is closed. A failed load keeps the
// previous snapshot. Refresh blocks; Serve runs it in the background.
func Refresh(ctx context.Context, h *Handler, cfg config.Config, reload <-chan config.Config, log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	load := func(cfg config.Config) {
		log.Infow("Starting ETL pipeline", logger.FieldFile, cfg.Data.Path)
		t0 := time.Now()

		snap, err := LoadSnapshot(ctx, pipeline.New(cfg, log))
		if err != nil {
			log.Errorw("ETL failed, keeping previous data", logger.FieldError, err)
			return
		}
		h.SetData(snap)
		log.Infow("ETL complete, API is fully ready",
			logger.FieldRecords, snap.Dataset.Len(),
			logger.FieldDurationMS, time.Since(t0).Milliseconds())
	}

	load(cfg)
	for {
		select {
		case <-ctx.Done():
			return
		case next, ok := <-reload:
			if !ok {
				return
			}
			load(next)
		}
	}
}

// Serve starts the HTTP server immediately and loads the dataset in the
// background; until the load finishes the data routes answer 503. Reload
// rebuilds the snapshot whenever a value arrives on it. Serve returns when
// ctx is cancelled or the listener fails.
func Serve(ctx context.Context, cfg config.Config, reload <-chan config.Config, log *zap.SugaredLogger) error {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	h := NewHandler(nil)
	e := NewServer(h, cfg.Server, log)

	go Refresh(ctx, h, cfg, reload, log)

	errCh := make(chan error, 1)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	go func() {
		log.Infow("Server ready (data loading in background)", logger.FieldAddress, addr)
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "server failed")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	}
}

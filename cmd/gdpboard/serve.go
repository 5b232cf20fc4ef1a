package main

import (
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"gdpboard/internal/api"
	"gdpboard/internal/config"
	"gdpboard/internal/logger"
)

const serveCommand = "serve"

var serveCmd = &cobra.Command{
	Use:   serveCommand,
	Short: "Serve the dashboard and ad hoc queries over HTTP",
	Long: `Start the JSON API. The server answers immediately; the dataset is
loaded in the background and data routes return 503 until it is ready.
Editing the config file reloads the dataset and the default query.

Routes:
  GET /api/health
  GET /api/dashboard
  GET /api/query?region=&year=&operation=&kind=entity|aggregate|any
  GET /api/trend?region=
  GET /api/slice?year=&limit=&offset=`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", config.DefaultPort, "Port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	v, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log := logger.ComponentLogger("server")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reload := make(chan config.Config, 1)
	if v.ConfigFileUsed() != "" {
		v.OnConfigChange(func(e fsnotify.Event) {
			next, err := config.LoadWithViper(v)
			if err != nil {
				log.Warnw("Ignoring invalid config change", logger.FieldFile, e.Name, logger.FieldError, err)
				return
			}
			log.Infow("Config changed, reloading", logger.FieldFile, e.Name)
			// Drop a pending reload in favour of the newest config
			select {
			case <-reload:
			default:
			}
			reload <- *next
		})
		v.WatchConfig()
	}

	return api.Serve(ctx, *cfg, reload, log)
}

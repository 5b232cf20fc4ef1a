package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gdpboard/internal/config"
	"gdpboard/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "gdpboard",
	Short: "gdpboard - GDP analysis dashboard",
	Long: `gdpboard - aggregate GDP by country or region from a World Bank style CSV.

The dataset has one row per country or region and one column per year.
A query names a country or a region, a year and an operation (sum or average).
Querying a region aggregates its member countries together with the region's
own row; querying a country returns that country only.

Examples:
  gdpboard --region Europe --year 2020 --operation sum
  gdpboard --region France --year 2019 --chart slope
  gdpboard --config config.json --interactive
  gdpboard serve --port 8080`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runShow,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (json, toml or yaml); defaults to ./config.*")
	pf.String("data", "", "Path to the dataset CSV")
	pf.CountP("verbose", "v", "Increase log verbosity")
	pf.Bool("log-json", false, "Write logs as JSON")

	f := rootCmd.Flags()
	f.String("region", "", "Country or region to query")
	f.Int("year", 0, "Year to query")
	f.String("operation", "", "Aggregation: sum or average")
	f.String("chart", "", "Chart to print after the summary: "+strings.Join(chartNames(), ", "))
	f.BoolP("interactive", "i", false, "Pick charts from an interactive menu")
	f.Bool("json", false, "Print the dashboard as JSON instead of rendering it")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the viper instance for cmd, binds its flags and loads
// the config. Flags only override when set.
func loadConfig(cmd *cobra.Command) (*viper.Viper, *config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	v, err := config.NewViper(path)
	if err != nil {
		return nil, nil, err
	}

	bindings := map[string]string{
		"data.path":       "data",
		"query.region":    "region",
		"query.year":      "year",
		"query.operation": "operation",
		"server.port":     "port",
		"log.json":        "log-json",
	}
	for key, name := range bindings {
		if fl := cmd.Flags().Lookup(name); fl != nil {
			if err := v.BindPFlag(key, fl); err != nil {
				return nil, nil, errors.Wrapf(err, "failed to bind --%s", name)
			}
		}
	}

	// -v is a count flag; any level turns on debug logging
	if n, _ := cmd.Flags().GetCount("verbose"); n > 0 {
		v.Set("log.verbose", true)
	}

	cfg, err := config.LoadWithViper(v)
	if err != nil {
		return nil, nil, errors.WithHint(err, "check the config file, GDPBOARD_* env vars and flags")
	}
	if err := initLogger(cmd, cfg.Log); err != nil {
		return nil, nil, errors.Wrap(err, "failed to initialize logger")
	}
	return v, cfg, nil
}

// initLogger applies the log section of the loaded config. The server logs
// at info level, the one-shot dashboard only warns unless verbose.
func initLogger(cmd *cobra.Command, lc config.LogConfig) error {
	if cmd.Name() == serveCommand {
		return logger.InitializeServer(lc.JSON, lc.Verbose)
	}
	return logger.Initialize(lc.JSON, lc.Verbose)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err.Error())
		for _, hint := range errors.GetAllHints(err) {
			pterm.Info.Println(hint)
		}
		logger.Logger.Debugw("Run failed", logger.FieldError, fmt.Sprintf("%+v", err))
		logger.Cleanup()
		os.Exit(1)
	}
}

package main

import (
	"encoding/json"
	"io"
	"os"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"gdpboard/internal/logger"
	"gdpboard/internal/models"
	"gdpboard/internal/pipeline"
	"gdpboard/internal/render"
)

func chartNames() []string {
	return render.Charts
}

// runShow answers the configured query once and renders it in the terminal.
func runShow(cmd *cobra.Command, args []string) error {
	_, cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dash, _, err := pipeline.New(*cfg, logger.ComponentLogger("show")).Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(dash), "failed to encode dashboard")
	}

	if err := render.Summary(out, dash); err != nil {
		return err
	}
	if chart, _ := cmd.Flags().GetString("chart"); chart != "" {
		if err := showChart(out, dash, chart); err != nil {
			return err
		}
	}

	if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
		if !isTerminal(os.Stdin) {
			return errors.New("--interactive needs a terminal on stdin")
		}
		return render.Menu(out, dash)
	}
	return nil
}

// showChart draws one chart. Charts of the query matches are skipped when the
// query found nothing; the summary already says so.
func showChart(w io.Writer, dash *models.Dashboard, chart string) error {
	if !slices.Contains(render.Charts, chart) {
		return errors.WithHintf(errors.Wrapf(render.ErrUnknownChart, "%q", chart),
			"available charts: %v", render.Charts)
	}
	if !slices.Contains(render.AvailableCharts(dash), chart) {
		return nil
	}
	return render.Chart(w, dash, chart)
}

func isTerminal(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

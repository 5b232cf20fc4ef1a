package render

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"

	"gdpboard/internal/models"
)

const menuExit = "exit"

// Menu shows an interactive chart picker until the user chooses exit.
// Only the charts available for d are offered.
func Menu(w io.Writer, d *models.Dashboard) error {
	options := append(append([]string{}, AvailableCharts(d)...), menuExit)
	for {
		choice, err := pterm.DefaultInteractiveSelect.
			WithOptions(options).
			WithDefaultText("Select an action").
			Show()
		if err != nil {
			return errors.Wrap(err, "menu")
		}
		if choice == menuExit {
			return nil
		}
		if err := Chart(w, d, choice); err != nil {
			return err
		}
	}
}

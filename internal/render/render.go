// Package render draws a dashboard in the terminal with pterm.
package render

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"gdpboard/internal/models"
)

// NoDataMessage is shown instead of a result when the query matched nothing.
const NoDataMessage = "No data available for this configuration."

// Chart names accepted by Chart.
const (
	ChartBar   = "bar"
	ChartShare = "share"
	ChartTrend = "trend"
	ChartTop   = "top"
	ChartSlope = "slope"
)

// Charts lists the chart names in menu order.
var Charts = []string{ChartBar, ChartShare, ChartTrend, ChartTop, ChartSlope}

var ErrUnknownChart = errors.New("unknown chart")

// AvailableCharts lists the charts worth drawing for d. Bar and share plot the
// query matches and are dropped when the query found nothing; the trend and
// cross-section charts do not depend on the matches.
func AvailableCharts(d *models.Dashboard) []string {
	if d.Result.Valid {
		return Charts
	}
	out := make([]string, 0, len(Charts))
	for _, name := range Charts {
		if name != ChartBar && name != ChartShare {
			out = append(out, name)
		}
	}
	return out
}

// topLimit caps how many countries the cross-section charts show.
const topLimit = 15

var printer = message.NewPrinter(language.English)

// FormatValue renders v with thousands separators and two decimals.
func FormatValue(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// FormatResult renders an aggregate, or NoDataMessage when it is absent.
// An absent result is never shown as 0.00.
func FormatResult(r models.AggregateResult) string {
	if !r.Valid {
		return NoDataMessage
	}
	return FormatValue(r.Value)
}

// Summary writes the dashboard header block.
func Summary(w io.Writer, d *models.Dashboard) error {
	fmt.Fprintln(w, pterm.DefaultHeader.WithFullWidth().Sprint("GDP ANALYSIS DASHBOARD"))

	table, err := pterm.DefaultTable.WithData(pterm.TableData{
		{"Scope", string(d.Scope)},
		{"Region", d.Query.Region},
		{"Year", fmt.Sprint(d.Query.Year)},
		{"Operation", d.Query.Operation},
		{"Result", FormatResult(d.Result)},
	}).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render summary")
	}
	fmt.Fprintln(w, table)
	return nil
}

// Chart writes the named chart for d.
func Chart(w io.Writer, d *models.Dashboard, name string) error {
	switch name {
	case ChartBar:
		return barChart(w, fmt.Sprintf("%s GDP comparison", d.Scope), d.Matches.Names(), d.Matches.Values())
	case ChartShare:
		return shareTable(w, d.Matches)
	case ChartTrend:
		labels := make([]string, len(d.Trend))
		values := make([]float64, len(d.Trend))
		for i, p := range d.Trend {
			labels[i] = fmt.Sprint(p.Year)
			values[i] = p.Value
		}
		return barChart(w, fmt.Sprintf("Year-wise GDP trend for %s", d.Query.Region), labels, values)
	case ChartTop:
		top := topN(d.Slice, topLimit)
		return barChart(w, fmt.Sprintf("Top country GDPs in %d", d.Query.Year), top.Names(), top.Values())
	case ChartSlope:
		return slopeTable(w, d)
	default:
		return errors.Wrapf(ErrUnknownChart, "%q", name)
	}
}

func barChart(w io.Writer, title string, labels []string, values []float64) error {
	fmt.Fprintln(w, pterm.DefaultSection.Sprint(title))
	if len(values) == 0 {
		fmt.Fprintln(w, NoDataMessage)
		return nil
	}

	unit, scale := unitFor(values)
	bars := make(pterm.Bars, len(values))
	for i, v := range values {
		bars[i] = pterm.Bar{Label: labels[i], Value: int(math.Round(v / scale))}
	}

	out, err := pterm.DefaultBarChart.WithBars(bars).WithHorizontal().WithShowValue().Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render bar chart")
	}
	fmt.Fprintln(w, out)
	if unit != "" {
		fmt.Fprintf(w, "values in %s\n", unit)
	}
	return nil
}

// unitFor picks a display unit so the largest bar stays readable.
func unitFor(values []float64) (string, float64) {
	var peak float64
	for _, v := range values {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	switch {
	case peak >= 1e9:
		return "billions", 1e9
	case peak >= 1e6:
		return "millions", 1e6
	default:
		return "", 1
	}
}

func shareTable(w io.Writer, recs models.QueryResult) error {
	fmt.Fprintln(w, pterm.DefaultSection.Sprint("GDP distribution"))
	if len(recs) == 0 {
		fmt.Fprintln(w, NoDataMessage)
		return nil
	}

	var total float64
	for _, r := range recs {
		total += r.Value
	}
	data := pterm.TableData{{"Name", "GDP", "Share"}}
	for _, r := range recs {
		share := "n/a"
		if total != 0 {
			share = fmt.Sprintf("%.1f%%", r.Value/total*100)
		}
		data = append(data, []string{r.Name, FormatValue(r.Value), share})
	}
	return renderTable(w, data)
}

func slopeTable(w io.Writer, d *models.Dashboard) error {
	fmt.Fprintln(w, pterm.DefaultSection.Sprintf("GDP change %d → %d", d.Query.Year-1, d.Query.Year))
	if len(d.Slope) == 0 {
		fmt.Fprintln(w, NoDataMessage)
		return nil
	}

	data := pterm.TableData{{"Country", fmt.Sprint(d.Query.Year - 1), fmt.Sprint(d.Query.Year), "Change"}}
	for _, p := range d.Slope {
		change := "n/a"
		if p.From != 0 {
			change = fmt.Sprintf("%+.1f%%", (p.To-p.From)/p.From*100)
		}
		data = append(data, []string{p.Name, FormatValue(p.From), FormatValue(p.To), change})
	}
	return renderTable(w, data)
}

func renderTable(w io.Writer, data pterm.TableData) error {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return errors.Wrap(err, "failed to render table")
	}
	fmt.Fprintln(w, out)
	return nil
}

// topN returns the n largest records by value, largest first.
func topN(recs models.QueryResult, n int) models.QueryResult {
	sorted := make(models.QueryResult, len(recs))
	copy(sorted, recs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

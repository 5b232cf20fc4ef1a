package render

import (
	"bytes"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdpboard/internal/models"
)

func init() {
	pterm.DisableStyling()
}

func testDashboard() *models.Dashboard {
	france := models.Record{Name: "France", Group: "Europe", Year: 2020, Value: 2.6e12, Kind: models.KindEntity}
	germany := models.Record{Name: "Germany", Group: "Europe", Year: 2020, Value: 3.9e12, Kind: models.KindEntity}
	japan := models.Record{Name: "Japan", Group: "Asia", Year: 2020, Value: 5.0e12, Kind: models.KindEntity}
	return &models.Dashboard{
		Query:   models.Query{Region: "Europe", Year: 2020, Operation: "sum"},
		Scope:   models.ScopeRegion,
		Result:  models.AggregateResult{Value: 6.5e12, Valid: true},
		Matches: models.QueryResult{france, germany},
		Trend: []models.TrendPoint{
			{Year: 2019, Value: 6.5e12},
			{Year: 2020, Value: 6.5e12},
		},
		Slice: models.QueryResult{france, germany, japan},
		Slope: []models.SlopePoint{
			{Name: "France", From: 2.7e12, To: 2.6e12},
			{Name: "Germany", From: 3.8e12, To: 3.9e12},
		},
	}
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "2,700,000,000,000.00", FormatValue(2.7e12))
	assert.Equal(t, "0.00", FormatValue(0))
	assert.Equal(t, "1,234.57", FormatValue(1234.567))
}

func TestFormatResult(t *testing.T) {
	assert.Equal(t, NoDataMessage, FormatResult(models.AggregateResult{}))
	assert.Equal(t, "0.00", FormatResult(models.AggregateResult{Valid: true}))
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, testDashboard()))

	out := buf.String()
	assert.Contains(t, out, "Region-wise")
	assert.Contains(t, out, "Europe")
	assert.Contains(t, out, "6,500,000,000,000.00")
}

func TestSummary_NoData(t *testing.T) {
	d := testDashboard()
	d.Result = models.AggregateResult{}

	var buf bytes.Buffer
	require.NoError(t, Summary(&buf, d))
	assert.Contains(t, buf.String(), NoDataMessage)
	assert.NotContains(t, buf.String(), "0.00")
}

func TestChart_All(t *testing.T) {
	d := testDashboard()
	for _, name := range Charts {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Chart(&buf, d, name))
			assert.NotEmpty(t, buf.String())
			assert.NotContains(t, buf.String(), NoDataMessage)
		})
	}
}

func TestChart_Contents(t *testing.T) {
	d := testDashboard()

	var buf bytes.Buffer
	require.NoError(t, Chart(&buf, d, ChartBar))
	assert.Contains(t, buf.String(), "Germany")
	assert.Contains(t, buf.String(), "values in billions")

	buf.Reset()
	require.NoError(t, Chart(&buf, d, ChartShare))
	assert.Contains(t, buf.String(), "40.0%")
	assert.Contains(t, buf.String(), "60.0%")

	buf.Reset()
	require.NoError(t, Chart(&buf, d, ChartSlope))
	assert.Contains(t, buf.String(), "2019")
	assert.Contains(t, buf.String(), "-3.7%")
}

func TestChart_EmptyShowsNoData(t *testing.T) {
	d := &models.Dashboard{Query: models.Query{Region: "Atlantis", Year: 2020, Operation: "sum"}}
	for _, name := range Charts {
		var buf bytes.Buffer
		require.NoError(t, Chart(&buf, d, name))
		assert.Contains(t, buf.String(), NoDataMessage, name)
	}
}

func TestChart_Unknown(t *testing.T) {
	err := Chart(&bytes.Buffer{}, testDashboard(), "pie3d")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownChart))
}

func TestTopN(t *testing.T) {
	recs := testDashboard().Slice

	top := topN(recs, 2)
	assert.Equal(t, []string{"Japan", "Germany"}, top.Names())
	// Input order untouched
	assert.Equal(t, []string{"France", "Germany", "Japan"}, recs.Names())

	assert.Len(t, topN(recs, 10), 3)
}

func TestUnitFor(t *testing.T) {
	unit, scale := unitFor([]float64{5e12, 1})
	assert.Equal(t, "billions", unit)
	assert.Equal(t, 1e9, scale)

	unit, _ = unitFor([]float64{2.5e6})
	assert.Equal(t, "millions", unit)

	unit, scale = unitFor([]float64{42})
	assert.Equal(t, "", unit)
	assert.Equal(t, 1.0, scale)
}

func TestAvailableCharts(t *testing.T) {
	d := testDashboard()
	assert.Equal(t, Charts, AvailableCharts(d))

	d.Result = models.AggregateResult{}
	d.Matches = models.QueryResult{}
	assert.Equal(t, []string{ChartTrend, ChartTop, ChartSlope}, AvailableCharts(d))
}

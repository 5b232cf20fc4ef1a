package engine

import (
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"gdpboard/internal/models"
)

const (
	DefaultNameColumn  = "Country Name"
	DefaultGroupColumn = "Continent"
)

type reshapeOptions struct {
	nameColumn  string
	groupColumn string
}

type ReshapeOption func(*reshapeOptions)

func WithNameColumn(col string) ReshapeOption {
	return func(o *reshapeOptions) { o.nameColumn = col }
}

func WithGroupColumn(col string) ReshapeOption {
	return func(o *reshapeOptions) { o.groupColumn = col }
}

// Reshape turns wide rows (one column per year) into long-format records,
// one per non-empty year cell. Rows keep their order; within a row, years
// ascend. A cell that is present but not a number aborts the whole reshape
// with ErrMalformedValue.
func Reshape(rows []models.SourceRow, opts ...ReshapeOption) (*Dataset, error) {
	o := reshapeOptions{nameColumn: DefaultNameColumn, groupColumn: DefaultGroupColumn}
	for _, opt := range opts {
		opt(&o)
	}

	cols := yearColumnCache{}
	records := make([]models.Record, 0, len(rows))
	for i, row := range rows {
		out, err := expandRow(row, i, o, cols)
		if err != nil {
			return nil, err
		}
		records = append(records, out...)
	}
	return newDataset(records), nil
}

func expandRow(row models.SourceRow, index int, o reshapeOptions, cols yearColumnCache) ([]models.Record, error) {
	name := row[o.nameColumn]
	group := row[o.groupColumn]
	kind := Classify(name)

	var out []models.Record
	for _, yc := range cols.columns(row) {
		cell := row[yc.key]
		if cell == "" {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
		if err != nil {
			return nil, errors.WithHint(
				errors.Wrapf(ErrMalformedValue, "row %d (%s), column %s: %q", index+1, name, yc.key, cell),
				"year cells must be empty or numeric")
		}
		out = append(out, models.Record{
			Name:  name,
			Group: group,
			Year:  yc.year,
			Value: value,
			Kind:  kind,
		})
	}
	return out, nil
}

type yearColumn struct {
	key  string
	year int
}

// yearColumnCache remembers which header keys are years so each key is
// parsed once per reshape.
type yearColumnCache map[string]*yearColumn

// columns returns the year columns of row sorted by year.
func (c yearColumnCache) columns(row models.SourceRow) []yearColumn {
	var out []yearColumn
	for key := range row {
		yc, seen := c[key]
		if !seen {
			if year, ok := parseYear(key); ok {
				yc = &yearColumn{key: key, year: year}
			}
			c[key] = yc
		}
		if yc != nil {
			out = append(out, *yc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].year != out[j].year {
			return out[i].year < out[j].year
		}
		return out[i].key < out[j].key
	})
	return out
}

// parseYear accepts keys made only of ASCII digits, e.g. "1960" but not "-1" or "2020 ".
func parseYear(key string) (int, bool) {
	if key == "" {
		return 0, false
	}
	for i := 0; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return 0, false
		}
	}
	year, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return year, true
}

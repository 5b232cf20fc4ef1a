package models

import "encoding/json"

// SourceRow is one raw row of the wide dataset, keyed by header name.
type SourceRow map[string]string

// Kind tells whether a record describes a single country or a grouping of countries.
type Kind int

const (
	KindEntity Kind = iota
	KindAggregate
)

func (k Kind) String() string {
	if k == KindEntity {
		return "entity"
	}
	return "aggregate"
}

func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Record is one (name, year) observation of the long-format dataset.
type Record struct {
	Name  string  `json:"name"`
	Group string  `json:"group"`
	Year  int     `json:"year"`
	Value float64 `json:"value"`
	Kind  Kind    `json:"kind"`
}

// QueryResult is the ordered subset of a dataset matched by a query.
type QueryResult []Record

// Names returns the record names, parallel to Values.
func (q QueryResult) Names() []string {
	names := make([]string, len(q))
	for i, r := range q {
		names[i] = r.Name
	}
	return names
}

func (q QueryResult) Values() []float64 {
	values := make([]float64, len(q))
	for i, r := range q {
		values[i] = r.Value
	}
	return values
}

// AggregateResult is an optional scalar. Valid is false when there was no data.
type AggregateResult struct {
	Value float64
	Valid bool
}

// MarshalJSON encodes an absent result as null.
func (a AggregateResult) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

type Scope string

const (
	ScopeCountry Scope = "Country-wise"
	ScopeRegion  Scope = "Region-wise"
)

type Query struct {
	Region    string `json:"region"`
	Year      int    `json:"year"`
	Operation string `json:"operation"`
}

type TrendPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// SlopePoint is one country's value in the year before the query year and in
// the query year.
type SlopePoint struct {
	Name string  `json:"name"`
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// Dashboard is everything the presentation layer needs for one query.
type Dashboard struct {
	Query   Query           `json:"query"`
	Scope   Scope           `json:"scope"`
	Result  AggregateResult `json:"result"`
	Matches QueryResult     `json:"records"`
	Trend   []TrendPoint    `json:"trend"`
	Slice   QueryResult     `json:"-"`
	Slope   []SlopePoint    `json:"-"`
}

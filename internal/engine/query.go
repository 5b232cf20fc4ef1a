package engine

import (
	"sort"

	"gdpboard/internal/models"
)

// scope is the name scope of a query target: the target itself when it is a
// country, or the aggregate row plus every member country when it is not.
type scope struct {
	target   string
	isEntity bool
}

func newScope(target string) scope {
	return scope{target: target, isEntity: IsCountry(target)}
}

func (s scope) contains(r models.Record) bool {
	if s.isEntity {
		return r.Kind == models.KindEntity && r.Name == s.target
	}
	return (r.Kind == models.KindAggregate && r.Name == s.target) ||
		(r.Kind == models.KindEntity && r.Group == s.target)
}

// Select returns the records of ds in the name scope of target for year.
// A nil kind accepts both kinds. Results keep dataset order.
func Select(ds *Dataset, target string, year int, kind *models.Kind) models.QueryResult {
	sc := newScope(target)
	out := make(models.QueryResult, 0)
	for _, r := range ds.Records() {
		if r.Year != year || !sc.contains(r) {
			continue
		}
		if kind != nil && r.Kind != *kind {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ScopeOf reports whether a query for target is country-wise or region-wise.
func ScopeOf(target string) models.Scope {
	if IsCountry(target) {
		return models.ScopeCountry
	}
	return models.ScopeRegion
}

// KindFilterFor is the kind filter the dashboard applies: countries only for a
// country target, no filter for a region.
func KindFilterFor(target string) *models.Kind {
	if IsCountry(target) {
		k := models.KindEntity
		return &k
	}
	return nil
}

// Years returns the distinct years, ascending, that have at least one record
// in the name scope of target.
func Years(ds *Dataset, target string) []int {
	sc := newScope(target)
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range ds.Records() {
		if !sc.contains(r) {
			continue
		}
		if _, ok := seen[r.Year]; !ok {
			seen[r.Year] = struct{}{}
			years = append(years, r.Year)
		}
	}
	sort.Ints(years)
	return years
}

// Trend sums the country records in the scope of target for every year
// the scope has country data.
func Trend(ds *Dataset, target string) []models.TrendPoint {
	entity := models.KindEntity
	points := make([]models.TrendPoint, 0)
	for _, year := range Years(ds, target) {
		res, err := Aggregate(Select(ds, target, year, &entity), OpSum)
		if err != nil || !res.Valid {
			continue
		}
		points = append(points, models.TrendPoint{Year: year, Value: res.Value})
	}
	return points
}

// Slice returns every country record of ds for year, in dataset order.
func Slice(ds *Dataset, year int) models.QueryResult {
	out := make(models.QueryResult, 0)
	for _, r := range ds.Records() {
		if r.Year == year && r.Kind == models.KindEntity {
			out = append(out, r)
		}
	}
	return out
}

// Slope pairs every country of the year cross-section with its value in the
// previous year. Countries without a previous-year record are left out.
func Slope(ds *Dataset, year int) []models.SlopePoint {
	prev := make(map[string]float64)
	for _, r := range Slice(ds, year-1) {
		prev[r.Name] = r.Value
	}
	points := make([]models.SlopePoint, 0)
	for _, r := range Slice(ds, year) {
		if from, ok := prev[r.Name]; ok {
			points = append(points, models.SlopePoint{Name: r.Name, From: from, To: r.Value})
		}
	}
	return points
}

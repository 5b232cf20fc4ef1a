package engine

import (
	"sort"

	"gdpboard/internal/models"
)

// Dataset holds the long-format records in insertion order.
// It is never mutated after Reshape returns, so it can be shared freely.
type Dataset struct {
	records []models.Record

	// Distinct years, ascending
	years []int
}

func newDataset(records []models.Record) *Dataset {
	seen := make(map[int]struct{})
	years := make([]int, 0)
	for _, r := range records {
		if _, ok := seen[r.Year]; !ok {
			seen[r.Year] = struct{}{}
			years = append(years, r.Year)
		}
	}
	sort.Ints(years)
	return &Dataset{records: records, years: years}
}

// NewDataset builds a dataset from already normalized records.
func NewDataset(records []models.Record) *Dataset {
	cp := make([]models.Record, len(records))
	copy(cp, records)
	return newDataset(cp)
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

// Records returns the backing records. Callers must treat them as read-only.
func (d *Dataset) Records() []models.Record {
	if d == nil {
		return nil
	}
	return d.records
}

// Years returns the distinct years present in the dataset, ascending.
func (d *Dataset) Years() []int {
	if d == nil {
		return nil
	}
	out := make([]int, len(d.years))
	copy(out, d.years)
	return out
}

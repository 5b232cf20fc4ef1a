package engine

import (
	"github.com/pariz/gountries"

	"gdpboard/internal/models"
)

// countryNames indexes every accepted form of every reference country.
var countryNames = buildCountryIndex(gountries.New().FindAllCountries())

// buildCountryIndex collects the alpha-2 and alpha-3 codes plus the common and
// official English names. Keys keep their original case.
func buildCountryIndex(all map[string]gountries.Country) map[string]struct{} {
	idx := make(map[string]struct{}, len(all)*4)
	for _, c := range all {
		for _, s := range []string{c.Alpha2, c.Alpha3, c.Name.Common, c.Name.Official} {
			if s != "" {
				idx[s] = struct{}{}
			}
		}
	}
	return idx
}

// Classify reports whether name is a country (KindEntity) or anything else,
// e.g. a continent or a custom regional label (KindAggregate).
// The lookup is exact: case and spelling must match a reference form.
func Classify(name string) models.Kind {
	if _, ok := countryNames[name]; ok {
		return models.KindEntity
	}
	return models.KindAggregate
}

// IsCountry is shorthand for Classify(name) == models.KindEntity.
func IsCountry(name string) bool {
	return Classify(name) == models.KindEntity
}

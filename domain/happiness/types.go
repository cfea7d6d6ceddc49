package happiness

import "math"

// Record is a single country-year row of the report
type Record struct {
	CountryName string
	CountryCode string // ISO 3166-1 alpha-3, empty when unresolved
	Region      string
	Year        int
	Values      [FeatureCount]float64 // NaN marks a missing value
}

// NewRecord returns a record with all feature values missing
func NewRecord(country string, year int) Record {
	r := Record{CountryName: country, Year: year}
	for i := range r.Values {
		r.Values[i] = math.NaN()
	}
	return r
}

// Value returns the feature value, NaN when missing or f is unknown
func (r Record) Value(f Feature) float64 {
	if !f.Valid() {
		return math.NaN()
	}
	return r.Values[f]
}

// Has reports whether the feature has a value
func (r Record) Has(f Feature) bool {
	return !math.IsNaN(r.Value(f))
}

// Rank is the position of a country among all countries of the same year.
// Position 0 means the country had no value for the feature.
type Rank struct {
	Position int `json:"position"`
	Total    int `json:"total"`
}

// Ranked reports whether the rank has a position
func (r Rank) Ranked() bool {
	return r.Position > 0
}

type countryYear struct {
	country string
	year    int
}

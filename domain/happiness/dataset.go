package happiness

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gohappy/domain/core"
)

// Dataset is an immutable, year-ordered collection of records with precomputed ranks.
// It is safe for concurrent readers.
type Dataset struct {
	records   []Record
	byCountry map[string][]int
	byKey     map[countryYear]int
	ranks     map[countryYear][FeatureCount]Rank
	countries []string
	years     []int
}

// NewDataset copies, sorts and indexes the records. A country may appear at most once per year.
func NewDataset(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, core.ErrEmptyDataset
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Year != sorted[j].Year {
			return sorted[i].Year < sorted[j].Year
		}
		return sorted[i].CountryName < sorted[j].CountryName
	})

	ds := &Dataset{
		records:   sorted,
		byCountry: make(map[string][]int),
		byKey:     make(map[countryYear]int, len(sorted)),
	}

	yearSet := make(map[int]bool)
	for i, rec := range sorted {
		name := strings.TrimSpace(rec.CountryName)
		if name == "" {
			return nil, core.NewRowError(i+1, "missing country name")
		}
		key := countryYear{country: name, year: rec.Year}
		if _, dup := ds.byKey[key]; dup {
			return nil, fmt.Errorf("%w: duplicate record for %s in %d", core.ErrInvalidDataset, name, rec.Year)
		}
		ds.byKey[key] = i
		ds.byCountry[name] = append(ds.byCountry[name], i)
		yearSet[rec.Year] = true
	}

	ds.countries = make([]string, 0, len(ds.byCountry))
	for name := range ds.byCountry {
		ds.countries = append(ds.countries, name)
	}
	sort.Strings(ds.countries)

	ds.years = make([]int, 0, len(yearSet))
	for y := range yearSet {
		ds.years = append(ds.years, y)
	}
	sort.Ints(ds.years)

	ds.ranks = computeRanks(sorted)
	return ds, nil
}

// computeRanks ranks every country within its year, per feature, highest value first.
func computeRanks(records []Record) map[countryYear][FeatureCount]Rank {
	byYear := make(map[int][]int)
	for i, rec := range records {
		byYear[rec.Year] = append(byYear[rec.Year], i)
	}

	out := make(map[countryYear][FeatureCount]Rank, len(records))
	for year, idx := range byYear {
		var perCountry = make([][FeatureCount]Rank, len(idx))
		for f := 0; f < FeatureCount; f++ {
			values := make([]float64, len(idx))
			for k, i := range idx {
				values[k] = records[i].Values[f]
			}
			positions := RankDescending(values)
			for k := range idx {
				perCountry[k][f] = Rank{Position: positions[k], Total: len(idx)}
			}
		}
		for k, i := range idx {
			out[countryYear{country: strings.TrimSpace(records[i].CountryName), year: year}] = perCountry[k]
		}
	}
	return out
}

// RankDescending assigns competition ranks (1, 2, 2, 4) with the highest value first.
// NaN values get position 0.
func RankDescending(values []float64) []int {
	order := make([]int, 0, len(values))
	for i, v := range values {
		if !math.IsNaN(v) {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	positions := make([]int, len(values))
	for pos, i := range order {
		if pos > 0 && values[order[pos-1]] == values[i] {
			positions[i] = positions[order[pos-1]]
			continue
		}
		positions[i] = pos + 1
	}
	return positions
}

// Len returns the number of records
func (d *Dataset) Len() int {
	return len(d.records)
}

// Records returns the year-ordered records. The slice must not be modified.
func (d *Dataset) Records() []Record {
	return d.records
}

// CountryNames returns the unique country names in alphabetical order
func (d *Dataset) CountryNames() []string {
	out := make([]string, len(d.countries))
	copy(out, d.countries)
	return out
}

// Years returns the unique years in ascending order
func (d *Dataset) Years() []int {
	out := make([]int, len(d.years))
	copy(out, d.years)
	return out
}

// HasCountry reports whether any record exists for the country
func (d *Dataset) HasCountry(name string) bool {
	_, ok := d.byCountry[name]
	return ok
}

// ForCountry returns the country's records ordered by year
func (d *Dataset) ForCountry(name string) []Record {
	idx := d.byCountry[name]
	out := make([]Record, len(idx))
	for k, i := range idx {
		out[k] = d.records[i]
	}
	return out
}

// ForCountryYear returns the record of a country in a given year
func (d *Dataset) ForCountryYear(name string, year int) (Record, bool) {
	i, ok := d.byKey[countryYear{country: name, year: year}]
	if !ok {
		return Record{}, false
	}
	return d.records[i], true
}

// Rank returns the rank of a country for a feature in a given year
func (d *Dataset) Rank(name string, year int, f Feature) (Rank, bool) {
	ranks, ok := d.ranks[countryYear{country: name, year: year}]
	if !ok || !f.Valid() {
		return Rank{}, false
	}
	return ranks[f], true
}

// Series returns the feature values of a country ordered by year, NaN for missing
func (d *Dataset) Series(name string, f Feature) []float64 {
	idx := d.byCountry[name]
	out := make([]float64, len(idx))
	for k, i := range idx {
		out[k] = d.records[i].Value(f)
	}
	return out
}

// YearsOf returns the years a country reported, ascending
func (d *Dataset) YearsOf(name string) []int {
	idx := d.byCountry[name]
	out := make([]int, len(idx))
	for k, i := range idx {
		out[k] = d.records[i].Year
	}
	return out
}

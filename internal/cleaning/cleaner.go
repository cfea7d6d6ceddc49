// Package cleaning prepares the raw World Happiness report for the dashboard:
// it drops names without an ISO code, corrects names to their ISO short form
// and attaches the alpha-3 code used by the world map.
package cleaning

import (
	"sort"

	"gohappy/domain/happiness"
	"gohappy/internal"
	"gohappy/ports"
)

var logger = internal.DefaultLogger.With("Cleaner")

// RemovedNames have no ISO 3166-1 alpha-3 code
var RemovedNames = []string{"Kosovo", "Ivory Coast"}

// CorrectedNames maps report names to the ISO 3166-1 short names
var CorrectedNames = map[string]string{
	"Hong Kong S.A.R. of China": "Hong Kong",
	"Taiwan Province of China":  "Taiwan, Province of China",
	"State of Palestine":        "Palestine, State of",
	"Turkiye":                   "Turkey",
	"South Korea":               "Korea, Republic of",
	"Laos":                      "Lao People's Democratic Republic",
	"Moldova":                   "Moldova, Republic of",
	"Syria":                     "Syrian Arab Republic",
	"Tanzania":                  "Tanzania, United Republic of",
	"Vietnam":                   "Viet Nam",
	"Congo (Brazzaville)":       "Congo",
	"Congo (Kinshasa)":          "Congo, The Democratic Republic of the",
	"Venezuela":                 "Venezuela, Bolivarian Republic of",
	"Bolivia":                   "Bolivia, Plurinational State of",
	"Russia":                    "Russian Federation",
	"Iran":                      "Iran, Islamic Republic of",
	"Somaliland region":         "Somalia",
}

// Report summarises one cleaning run. Name lists are unique and sorted.
type Report struct {
	Input      int      `json:"input"`
	Output     int      `json:"output"`
	Removed    []string `json:"removed"`
	Renamed    []string `json:"renamed"`
	Unresolved []string `json:"unresolved"`
}

// Cleaner applies the cleaning rules
type Cleaner struct {
	resolver ports.CountryResolver
}

// NewCleaner creates a cleaner that looks codes up with the given resolver
func NewCleaner(resolver ports.CountryResolver) *Cleaner {
	return &Cleaner{resolver: resolver}
}

// Clean returns the kept records with corrected names and codes. Input is not modified.
// A record that already carries a code keeps it.
func (c *Cleaner) Clean(records []happiness.Record) ([]happiness.Record, Report) {
	removed := make(map[string]bool, len(RemovedNames))
	for _, name := range RemovedNames {
		removed[name] = true
	}

	seenRemoved := make(map[string]bool)
	seenRenamed := make(map[string]bool)
	seenUnresolved := make(map[string]bool)

	out := make([]happiness.Record, 0, len(records))
	for _, rec := range records {
		if removed[rec.CountryName] {
			seenRemoved[rec.CountryName] = true
			continue
		}
		if corrected, ok := CorrectedNames[rec.CountryName]; ok {
			seenRenamed[rec.CountryName] = true
			rec.CountryName = corrected
		}
		if rec.CountryCode == "" {
			if code, ok := c.resolver.Alpha3(rec.CountryName); ok {
				rec.CountryCode = code
			} else {
				seenUnresolved[rec.CountryName] = true
			}
		}
		out = append(out, rec)
	}

	report := Report{
		Input:      len(records),
		Output:     len(out),
		Removed:    sortedKeys(seenRemoved),
		Renamed:    sortedKeys(seenRenamed),
		Unresolved: sortedKeys(seenUnresolved),
	}
	logger.Info("cleaned %d records: kept %d, removed %d names, renamed %d, unresolved %d",
		report.Input, report.Output, len(report.Removed), len(report.Renamed), len(report.Unresolved))
	return out, report
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

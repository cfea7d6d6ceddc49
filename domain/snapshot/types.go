// Package snapshot describes an imported, immutable copy of the happiness dataset.
package snapshot

import (
	"strconv"
	"time"

	"gohappy/domain/core"
	"gohappy/domain/happiness"
)

// Snapshot is the metadata of one dataset import
type Snapshot struct {
	ID           core.ID       `db:"id" json:"id"`
	Name         string        `db:"name" json:"name"`
	Source       string        `db:"source" json:"source"`
	Checksum     core.Checksum `db:"checksum" json:"checksum"`
	RecordCount  int           `db:"record_count" json:"record_count"`
	CountryCount int           `db:"country_count" json:"country_count"`
	FirstYear    int           `db:"first_year" json:"first_year"`
	LastYear     int           `db:"last_year" json:"last_year"`
	CreatedAt    time.Time     `db:"created_at" json:"created_at"`
}

// New describes a dataset about to be stored. The checksum identifies the source bytes.
func New(name, source string, checksum core.Checksum, ds *happiness.Dataset) *Snapshot {
	s := &Snapshot{
		ID:           core.NewID(),
		Name:         name,
		Source:       source,
		Checksum:     checksum,
		RecordCount:  ds.Len(),
		CountryCount: len(ds.CountryNames()),
		CreatedAt:    time.Now().UTC(),
	}
	if years := ds.Years(); len(years) > 0 {
		s.FirstYear = years[0]
		s.LastYear = years[len(years)-1]
	}
	return s
}

// Span renders the covered years, e.g. "2005-2022"
func (s *Snapshot) Span() string {
	if s.FirstYear == s.LastYear {
		return strconv.Itoa(s.FirstYear)
	}
	return strconv.Itoa(s.FirstYear) + "-" + strconv.Itoa(s.LastYear)
}

// Package countries resolves report country names to ISO 3166-1 alpha-3 codes.
package countries

import (
	"strings"
	"sync"

	"gohappy/internal"

	"github.com/biter777/countries"
)

var logger = internal.DefaultLogger.With("CountryResolver")

// fallbackCodes covers ISO short names the library does not match by name
var fallbackCodes = map[string]string{
	"hong kong":                             "HKG",
	"taiwan, province of china":             "TWN",
	"palestine, state of":                   "PSE",
	"korea, republic of":                    "KOR",
	"lao people's democratic republic":      "LAO",
	"moldova, republic of":                  "MDA",
	"syrian arab republic":                  "SYR",
	"tanzania, united republic of":          "TZA",
	"viet nam":                              "VNM",
	"congo":                                 "COG",
	"congo, the democratic republic of the": "COD",
	"venezuela, bolivarian republic of":     "VEN",
	"bolivia, plurinational state of":       "BOL",
	"russian federation":                    "RUS",
	"iran, islamic republic of":             "IRN",
}

// Resolver implements ports.CountryResolver. Lookups are cached and safe for concurrent use.
type Resolver struct {
	mu    sync.RWMutex
	cache map[string]string
}

// NewResolver creates an empty resolver
func NewResolver() *Resolver {
	return &Resolver{cache: make(map[string]string)}
}

// Alpha3 returns the alpha-3 code for a country name
func (r *Resolver) Alpha3(name string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return "", false
	}

	r.mu.RLock()
	code, hit := r.cache[key]
	r.mu.RUnlock()
	if hit {
		return code, code != ""
	}

	code = lookup(name)
	if code == "" {
		logger.Debug("no alpha-3 code for %q", name)
	}

	r.mu.Lock()
	r.cache[key] = code
	r.mu.Unlock()
	return code, code != ""
}

func lookup(name string) string {
	name = strings.TrimSpace(name)
	if c := countries.ByName(name); c != countries.Unknown {
		return c.Alpha3()
	}
	if code, ok := fallbackCodes[strings.ToLower(name)]; ok {
		return code
	}
	// "Korea, Republic of" style names: retry with the parts swapped
	if head, tail, ok := strings.Cut(name, ", "); ok {
		if c := countries.ByName(tail + " " + head); c != countries.Unknown {
			return c.Alpha3()
		}
	}
	return ""
}

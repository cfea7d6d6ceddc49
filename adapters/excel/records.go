package excel

import (
	"math"
	"strconv"
	"strings"

	"gohappy/domain/core"
	"gohappy/domain/happiness"
)

// column roles recognised in raw and cleaned report files
const (
	colCountry = "country"
	colCode    = "code"
	colRegion  = "region"
	colYear    = "year"
)

// headerAliases maps a normalised header to a column role or a feature key
var headerAliases = map[string]string{
	"country_name":       colCountry,
	"country":            colCountry,
	"country_code_iso":   colCode,
	"country_code":       colCode,
	"iso3":               colCode,
	"regional_indicator": colRegion,
	"region":             colRegion,
	"year":               colYear,

	"life_ladder":                      happiness.LifeLadder.Key(),
	"log_gdp":                          happiness.LogGDP.Key(),
	"log_gdp_per_capita":               happiness.LogGDP.Key(),
	"social_support":                   happiness.SocialSupport.Key(),
	"life_expectancy":                  happiness.LifeExpectancy.Key(),
	"healthy_life_expectancy_at_birth": happiness.LifeExpectancy.Key(),
	"freedom":                          happiness.Freedom.Key(),
	"freedom_to_make_life_choices":     happiness.Freedom.Key(),
	"generosity":                       happiness.Generosity.Key(),
	"corruption":                       happiness.Corruption.Key(),
	"perceptions_of_corruption":        happiness.Corruption.Key(),
	"positive_affect":                  happiness.PositiveAffect.Key(),
	"negative_affect":                  happiness.NegativeAffect.Key(),
}

// normalizeHeader lowercases and snake-cases a header ("Log GDP Per Capita" -> "log_gdp_per_capita")
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer(" ", "_", "-", "_", ".", "_").Replace(h)
	return h
}

// DecodeRecords maps a raw or cleaned report table to records.
// Unknown columns are ignored; blank numeric cells become NaN.
func DecodeRecords(table *TableData) ([]happiness.Record, error) {
	roles := make(map[string]string, len(table.Headers))
	for _, h := range table.Headers {
		if role, ok := headerAliases[normalizeHeader(h)]; ok {
			if _, taken := roles[role]; !taken {
				roles[role] = h
			}
		}
	}
	if _, ok := roles[colCountry]; !ok {
		return nil, core.NewRowError(1, "no country column")
	}
	if _, ok := roles[colYear]; !ok {
		return nil, core.NewRowError(1, "no year column")
	}

	records := make([]happiness.Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		line := i + 2 // header is line 1
		country := strings.TrimSpace(row[roles[colCountry]])
		if country == "" {
			return nil, core.NewRowError(line, "missing country name")
		}

		year, err := parseYear(row[roles[colYear]])
		if err != nil {
			return nil, core.NewRowError(line, "year: "+err.Error())
		}

		rec := happiness.NewRecord(country, year)
		if h, ok := roles[colCode]; ok {
			rec.CountryCode = strings.ToUpper(strings.TrimSpace(row[h]))
		}
		if h, ok := roles[colRegion]; ok {
			rec.Region = strings.TrimSpace(row[h])
		}

		for _, f := range happiness.AllFeatures() {
			h, ok := roles[f.Key()]
			if !ok {
				continue
			}
			v, err := parseValue(row[h])
			if err != nil {
				return nil, core.NewRowError(line, f.Key()+": "+err.Error())
			}
			rec.Values[f] = v
		}
		records = append(records, rec)
	}
	return records, nil
}

// parseYear accepts "2020" and spreadsheet floats like "2020.0"
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, &strconv.NumError{Func: "parseYear", Num: s, Err: strconv.ErrSyntax}
	}
	return int(f), nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "", "nan", "na", "n/a", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

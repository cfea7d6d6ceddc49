package happiness

import (
	"fmt"
	"strings"

	"gohappy/domain/core"
)

// Feature is one of the nine indicators published in the World Happiness Report
type Feature int

const (
	LifeLadder Feature = iota
	LogGDP
	SocialSupport
	LifeExpectancy
	Freedom
	Generosity
	Corruption
	PositiveAffect
	NegativeAffect
)

// FeatureCount is the number of report indicators
const FeatureCount = 9

// Labels and keys share the Feature order.
var (
	featureLabels = [FeatureCount]string{
		"Life Ladder",
		"Log GDP",
		"Social Support",
		"Life Expectancy",
		"Freedom to Make Life Choices",
		"Generosity",
		"Perception of Corruption",
		"Positive Affect",
		"Negative Affect",
	}
	featureKeys = [FeatureCount]string{
		"life_ladder",
		"log_gdp",
		"social_support",
		"life_expectancy",
		"freedom",
		"generosity",
		"corruption",
		"positive_affect",
		"negative_affect",
	}
)

// AllFeatures returns every feature in display order
func AllFeatures() []Feature {
	out := make([]Feature, FeatureCount)
	for i := range out {
		out[i] = Feature(i)
	}
	return out
}

// Valid reports whether f is one of the known features
func (f Feature) Valid() bool {
	return f >= 0 && int(f) < FeatureCount
}

// Label is the human readable name shown in dropdowns and cards
func (f Feature) Label() string {
	if !f.Valid() {
		return fmt.Sprintf("Feature(%d)", int(f))
	}
	return featureLabels[f]
}

// Key is the column name used in the cleaned dataset
func (f Feature) Key() string {
	if !f.Valid() {
		return ""
	}
	return featureKeys[f]
}

func (f Feature) String() string {
	return f.Label()
}

// ParseFeature resolves a label or a data key to a Feature
func ParseFeature(s string) (Feature, error) {
	s = strings.TrimSpace(s)
	for i := 0; i < FeatureCount; i++ {
		if featureLabels[i] == s || featureKeys[i] == s {
			return Feature(i), nil
		}
	}
	return -1, fmt.Errorf("%w: %q", core.ErrUnknownFeature, s)
}

// Labels returns all feature labels in display order
func Labels() []string {
	out := make([]string, FeatureCount)
	copy(out, featureLabels[:])
	return out
}

// Initial selection used when the page is opened without parameters
const (
	InitialCountry       = "Switzerland"
	InitialYear          = "2020"
	InitialFirstFeature  = "Life Ladder"
	InitialSecondFeature = "Generosity"
)

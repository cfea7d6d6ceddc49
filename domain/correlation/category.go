// Package correlation turns a correlation coefficient into the wording shown on the dashboard.
package correlation

import (
	"fmt"
	"math"
)

// Category buckets the strength of a correlation coefficient
type Category string

const (
	Negligible Category = "negligible"
	Weak       Category = "weak"
	Moderate   Category = "moderate"
	Strong     Category = "strong"
	VeryStrong Category = "very strong"
)

// Classify returns whether r is positive and which strength bucket |r| falls into.
// Bucket upper bounds are inclusive: 0.3, 0.5, 0.7, 0.9.
func Classify(r float64) (bool, Category) {
	positive := r >= 0
	abs := math.Abs(r)

	switch {
	case abs <= 0.3:
		return positive, Negligible
	case abs <= 0.5:
		return positive, Weak
	case abs <= 0.7:
		return positive, Moderate
	case abs <= 0.9:
		return positive, Strong
	default:
		return positive, VeryStrong
	}
}

// Conclusive reports whether the category allows a directional statement
func (c Category) Conclusive() bool {
	return c != Negligible && c != Weak
}

// SimplifiedExplanation is the "in a nutshell" sentence for a pair of features
func SimplifiedExplanation(r float64, first, second, country string) string {
	positive, category := Classify(r)
	if !category.Conclusive() {
		return fmt.Sprintf("The Correlation is %s. Therefore no real assumption can be made between %s and %s", category, first, second)
	}

	direction := "lower"
	if positive {
		direction = "higher"
	}
	return fmt.Sprintf("The Correlation is %s: The higher %s the %s is %s in %s", category, first, direction, second, country)
}

// ScientificLabel is the badge text for a category
func ScientificLabel(c Category) string {
	switch c {
	case Negligible:
		return "Negligible Significance"
	case Weak:
		return "Weak Significance"
	case Moderate:
		return "Moderate Significance"
	case Strong:
		return "Strong Significance"
	default:
		return "Very Strong Significance"
	}
}

// ScientificExplanation describes what the sign of the coefficient means
func ScientificExplanation(positive bool) string {
	if positive {
		return "A positive correlation means that if one value increases so does the other one."
	}
	return "A negative correlation means that if one value increases the other decreases."
}

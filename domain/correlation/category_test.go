package correlation

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		r            float64
		wantPositive bool
		wantCategory Category
	}{
		{0, true, Negligible},
		{0.3, true, Negligible},
		{-0.3, false, Negligible},
		{0.31, true, Weak},
		{0.5, true, Weak},
		{-0.6, false, Moderate},
		{0.7, true, Moderate},
		{0.71, true, Strong},
		{-0.9, false, Strong},
		{0.95, true, VeryStrong},
		{-1, false, VeryStrong},
	}

	for _, tt := range tests {
		positive, category := Classify(tt.r)
		if positive != tt.wantPositive || category != tt.wantCategory {
			t.Errorf("Classify(%v) = (%v, %q), want (%v, %q)", tt.r, positive, category, tt.wantPositive, tt.wantCategory)
		}
	}
}

func TestSimplifiedExplanation(t *testing.T) {
	tests := []struct {
		name string
		r    float64
		want string
	}{
		{
			name: "negligible",
			r:    0.1,
			want: "The Correlation is negligible. Therefore no real assumption can be made between Life Ladder and Generosity",
		},
		{
			name: "weak",
			r:    -0.4,
			want: "The Correlation is weak. Therefore no real assumption can be made between Life Ladder and Generosity",
		},
		{
			name: "moderate positive",
			r:    0.6,
			want: "The Correlation is moderate: The higher Life Ladder the higher is Generosity in Italy",
		},
		{
			name: "strong negative",
			r:    -0.8,
			want: "The Correlation is strong: The higher Life Ladder the lower is Generosity in Italy",
		},
		{
			name: "very strong positive",
			r:    0.99,
			want: "The Correlation is very strong: The higher Life Ladder the higher is Generosity in Italy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SimplifiedExplanation(tt.r, "Life Ladder", "Generosity", "Italy")
			if got != tt.want {
				t.Errorf("got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestScientificWording(t *testing.T) {
	if ScientificLabel(Moderate) != "Moderate Significance" {
		t.Errorf("unexpected label %q", ScientificLabel(Moderate))
	}
	if ScientificLabel(VeryStrong) != "Very Strong Significance" {
		t.Errorf("unexpected label %q", ScientificLabel(VeryStrong))
	}
	if ScientificExplanation(true) == ScientificExplanation(false) {
		t.Error("positive and negative explanations should differ")
	}
}

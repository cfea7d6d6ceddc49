package app

import (
	"fmt"
	"strings"

	"gohappy/domain/correlation"
	"gohappy/domain/figure"
	"gohappy/domain/happiness"
	"gohappy/internal/analysis"
)

// Overlay covers a panel with a message while its selection is incomplete or has no data
type Overlay struct {
	Shown   bool   `json:"shown"`
	Message string `json:"message,omitempty"`
}

func showOverlay(message string) Overlay {
	return Overlay{Shown: true, Message: message}
}

// Selection is the filter state of the page
type Selection struct {
	Country string `json:"country" form:"country"`
	Year    string `json:"year" form:"year"`
	First   string `json:"first" form:"first"`
	Second  string `json:"second" form:"second"`
}

// InitialSelection is the selection of a freshly opened page
func InitialSelection() Selection {
	return Selection{
		Country: happiness.InitialCountry,
		Year:    happiness.InitialYear,
		First:   happiness.InitialFirstFeature,
		Second:  happiness.InitialSecondFeature,
	}
}

// Normalize trims every field
func (s Selection) Normalize() Selection {
	return Selection{
		Country: strings.TrimSpace(s.Country),
		Year:    strings.TrimSpace(s.Year),
		First:   strings.TrimSpace(s.First),
		Second:  strings.TrimSpace(s.Second),
	}
}

// OptionsPanel lists the values offered by the filter and feature dropdowns
type OptionsPanel struct {
	Countries []string  `json:"countries"`
	Years     []int     `json:"years"`
	Features  []string  `json:"features"`
	Initial   Selection `json:"initial"`
}

// DetailCard shows one feature of the selected country-year
type DetailCard struct {
	Feature string            `json:"feature"`
	Title   string            `json:"title"`
	Value   string            `json:"value"`
	Rank    int               `json:"rank"`
	Total   int               `json:"total"`
	History *analysis.Summary `json:"history,omitempty"`
}

// Ranked reports whether the card has a rank to show
func (c DetailCard) Ranked() bool {
	return c.Rank > 0
}

// DetailPanel is the "General Information" section
type DetailPanel struct {
	Overlay Overlay      `json:"overlay"`
	Title   string       `json:"title,omitempty"`
	Cards   []DetailCard `json:"cards"`
}

// ExplanationPanel holds the simplified and scientific correlation explanations
type ExplanationPanel struct {
	Overlay         Overlay              `json:"overlay"`
	Simplified      string               `json:"simplified,omitempty"`
	Category        correlation.Category `json:"category,omitempty"`
	ScientificLabel string               `json:"scientific_label,omitempty"`
	Significance    string               `json:"significance,omitempty"`
	ScientificText  string               `json:"scientific_text,omitempty"`
	Coefficient     float64              `json:"coefficient"`
	PValue          *float64             `json:"p_value,omitempty"`
	N               int                  `json:"n"`
}

// FormattedPValue returns the p-value with four decimals, empty when unknown
func (p ExplanationPanel) FormattedPValue() string {
	if p.PValue == nil {
		return ""
	}
	if *p.PValue < 0.0001 {
		return "< 0.0001"
	}
	return fmt.Sprintf("%.4f", *p.PValue)
}

// HeatmapPanel is the "Correlation Overview" section
type HeatmapPanel struct {
	Overlay Overlay       `json:"overlay"`
	Title   string        `json:"title,omitempty"`
	Labels  []string      `json:"labels,omitempty"`
	Matrix  [][]float64   `json:"-"` // rounded to 2 places, NaN where undefined
	Figure  figure.Figure `json:"figure"`
}

// ScatterPanel compares two features of a country across years
type ScatterPanel struct {
	Overlay Overlay        `json:"overlay"`
	Title   string         `json:"title,omitempty"`
	First   string         `json:"first,omitempty"`
	Second  string         `json:"second,omitempty"`
	Years   []int          `json:"years,omitempty"`
	X       []float64      `json:"x,omitempty"`
	Y       []float64      `json:"y,omitempty"`
	Line    *analysis.Line `json:"trendline,omitempty"`
	Figure  figure.Figure  `json:"figure"`
}

// WorldMapPanel is the animated life ladder choropleth
type WorldMapPanel struct {
	Years  []int         `json:"years"`
	Figure figure.Figure `json:"figure"`
}

// DashboardView is everything the page renders for one selection
type DashboardView struct {
	Selection   Selection         `json:"selection"`
	Options     *OptionsPanel     `json:"options"`
	Detail      *DetailPanel      `json:"detail"`
	Explanation *ExplanationPanel `json:"explanation"`
	Heatmap     *HeatmapPanel     `json:"heatmap"`
	Scatter     *ScatterPanel     `json:"scatter"`
	WorldMap    *WorldMapPanel    `json:"worldmap"`
}

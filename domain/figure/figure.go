// Package figure describes charts in the JSON shape consumed by plotly.js.
package figure

import "math"

// Figure is a complete plotly figure
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames,omitempty"`
}

// Trace is one plotly trace. Only the fields used by the dashboard are modelled.
type Trace struct {
	Type         string      `json:"type"`
	Mode         string      `json:"mode,omitempty"`
	Name         string      `json:"name,omitempty"`
	X            interface{} `json:"x,omitempty"`
	Y            interface{} `json:"y,omitempty"`
	Z            interface{} `json:"z,omitempty"`
	Text         interface{} `json:"text,omitempty"`
	TextPosition string      `json:"textposition,omitempty"`
	TextTemplate string      `json:"texttemplate,omitempty"`
	Locations    []string    `json:"locations,omitempty"`
	ColorScale   string      `json:"colorscale,omitempty"`
	ZMin         *float64    `json:"zmin,omitempty"`
	ZMax         *float64    `json:"zmax,omitempty"`
	HoverText    []string    `json:"hovertext,omitempty"`
	Line         *Line       `json:"line,omitempty"`
}

// Line styles a line trace
type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
	Dash  string  `json:"dash,omitempty"`
}

// Layout is the plotly layout object
type Layout struct {
	Title    Title    `json:"title"`
	Margin   *Margin  `json:"margin,omitempty"`
	XAxis    *Axis    `json:"xaxis,omitempty"`
	YAxis    *Axis    `json:"yaxis,omitempty"`
	Geo      *Geo     `json:"geo,omitempty"`
	Sliders  []Slider `json:"sliders,omitempty"`
	AutoSize bool     `json:"autosize,omitempty"`
}

// Title wraps the plotly title text
type Title struct {
	Text string `json:"text"`
}

// Margin sets plot margins in pixels
type Margin struct {
	R int `json:"r"`
	T int `json:"t"`
	L int `json:"l"`
	B int `json:"b"`
}

// Axis configures a cartesian axis
type Axis struct {
	Title string `json:"title,omitempty"`
	Side  string `json:"side,omitempty"`
}

// Geo configures a map
type Geo struct {
	ShowFrame      bool       `json:"showframe"`
	Visible        bool       `json:"visible"`
	FitBounds      string     `json:"fitbounds,omitempty"`
	Projection     Projection `json:"projection"`
	ShowCoastlines bool       `json:"showcoastlines,omitempty"`
}

// Projection names the map projection
type Projection struct {
	Type string `json:"type"`
}

// Slider is an animation slider, one step per frame
type Slider struct {
	Active int          `json:"active"`
	Steps  []SliderStep `json:"steps"`
}

// SliderStep selects one frame
type SliderStep struct {
	Label  string        `json:"label"`
	Method string        `json:"method"`
	Args   []interface{} `json:"args"`
}

// Frame is an animation frame
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}

// SampleScatter returns the static placeholder chart: one lines+markers trace of four points.
func SampleScatter() Figure {
	return Figure{
		Data: []Trace{{
			Type: "scatter",
			Mode: "lines+markers",
			X:    []float64{1, 2, 3, 9},
			Y:    []float64{2, 6, 3, 9},
		}},
		Layout: Layout{Title: Title{Text: ""}},
	}
}

// Float returns a pointer to v, for optional numeric fields
func Float(v float64) *float64 {
	return &v
}

// Nullable converts NaN cells to nil so the matrix encodes as JSON nulls
func Nullable(m [][]float64) [][]*float64 {
	out := make([][]*float64, len(m))
	for i, row := range m {
		out[i] = make([]*float64, len(row))
		for j, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				out[i][j] = Float(v)
			}
		}
	}
	return out
}

// Package charts renders dashboard panels as PNG images on the server.
package charts

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"gohappy/domain/core"
	"gohappy/internal/analysis"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Default image sizes in pixels
const (
	DefaultWidth  = 900
	DefaultHeight = 500
)

// Scatter is the data of a feature comparison chart
type Scatter struct {
	Title  string
	XLabel string
	YLabel string
	Years  []int
	X      []float64
	Y      []float64
	Line   *analysis.Line
}

// pointStyle returns a style that renders points only (no connecting line)
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// ScatterPNG renders the points labelled by year plus the trendline
func ScatterPNG(w io.Writer, s Scatter, width, height int) error {
	if len(s.X) == 0 || len(s.X) != len(s.Y) {
		return core.NewInsufficientDataError("scatter chart", len(s.X))
	}

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Years",
			XValues: s.X,
			YValues: s.Y,
			Style:   pointStyle(chart.ColorBlue),
		},
	}

	if len(s.Years) == len(s.X) {
		labels := make([]chart.Value2, len(s.X))
		for i := range s.X {
			labels[i] = chart.Value2{XValue: s.X[i], YValue: s.Y[i], Label: strconv.Itoa(s.Years[i])}
		}
		series = append(series, chart.AnnotationSeries{Annotations: labels})
	}

	if s.Line != nil {
		series = append(series, chart.ContinuousSeries{
			Name:    fmt.Sprintf("OLS trendline (R²=%.3f)", s.Line.RSquared),
			XValues: []float64{s.Line.MinX, s.Line.MaxX},
			YValues: []float64{s.Line.At(s.Line.MinX), s.Line.At(s.Line.MaxX)},
			Style: chart.Style{
				StrokeWidth: 2,
				StrokeColor: chart.ColorRed,
			},
		})
	}

	ch := chart.Chart{
		Title:      s.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: s.XLabel, Range: paddedRange(s.X)},
		YAxis:      chart.YAxis{Name: s.YLabel, Range: paddedRange(s.Y)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("failed to render scatter chart: %w", err)
	}
	return nil
}

// paddedRange widens the data range by 5% on each side, and a zero-width
// range (a single point) by one unit, which go-chart cannot render otherwise.
func paddedRange(values []float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 1
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

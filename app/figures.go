package app

import (
	"fmt"
	"math"
	"strconv"

	"gohappy/domain/figure"
	"gohappy/domain/happiness"
	"gohappy/internal/analysis"
)

const colorScale = "Blues"

// heatmapFigure renders the rounded correlation matrix with values printed in the cells
func heatmapFigure(labels []string, matrix [][]float64) figure.Figure {
	return figure.Figure{
		Data: []figure.Trace{{
			Type:         "heatmap",
			X:            labels,
			Y:            labels,
			Z:            figure.Nullable(matrix),
			ColorScale:   colorScale,
			TextTemplate: "%{z}",
		}},
		Layout: figure.Layout{
			XAxis:    &figure.Axis{Side: "top"},
			AutoSize: true,
		},
	}
}

// scatterFigure plots one point per year, labelled with the year, plus the OLS trendline
func scatterFigure(country string, first, second happiness.Feature, years []int, x, y []float64, line *analysis.Line) figure.Figure {
	text := make([]string, len(years))
	for i, year := range years {
		text[i] = strconv.Itoa(year)
	}

	traces := []figure.Trace{{
		Type:         "scatter",
		Mode:         "markers+text",
		Name:         country,
		X:            x,
		Y:            y,
		Text:         text,
		TextPosition: "top center",
	}}

	if line != nil {
		traces = append(traces, figure.Trace{
			Type: "scatter",
			Mode: "lines",
			Name: fmt.Sprintf("OLS trendline (R²=%.3f)", line.RSquared),
			X:    []float64{line.MinX, line.MaxX},
			Y:    []float64{line.At(line.MinX), line.At(line.MaxX)},
			Line: &figure.Line{Width: 2},
		})
	}

	return figure.Figure{
		Data: traces,
		Layout: figure.Layout{
			XAxis: &figure.Axis{Title: first.Label()},
			YAxis: &figure.Axis{Title: second.Label()},
		},
	}
}

// worldMapFigure builds an animated choropleth of the life ladder, one frame per year.
// The colour range is fixed over all years so frames are comparable.
func worldMapFigure(ds *happiness.Dataset) figure.Figure {
	years := ds.Years()
	byYear := make(map[int]*figure.Trace, len(years))
	zmin, zmax := math.Inf(1), math.Inf(-1)

	for _, year := range years {
		byYear[year] = &figure.Trace{Type: "choropleth", ColorScale: colorScale}
	}

	values := make(map[int][]float64, len(years))
	for _, rec := range ds.Records() {
		v := rec.Value(happiness.LifeLadder)
		if rec.CountryCode == "" || math.IsNaN(v) {
			continue
		}
		t := byYear[rec.Year]
		t.Locations = append(t.Locations, rec.CountryCode)
		values[rec.Year] = append(values[rec.Year], v)
		t.HoverText = append(t.HoverText, fmt.Sprintf("%s<br>%s: %.2f<br>Year: %d",
			rec.CountryName, happiness.LifeLadder.Label(), v, rec.Year))
		zmin = math.Min(zmin, v)
		zmax = math.Max(zmax, v)
	}

	frames := make([]figure.Frame, 0, len(years))
	steps := make([]figure.SliderStep, 0, len(years))
	for _, year := range years {
		t := byYear[year]
		t.Z = values[year]
		if !math.IsInf(zmin, 0) {
			t.ZMin = figure.Float(zmin)
			t.ZMax = figure.Float(zmax)
		}

		name := strconv.Itoa(year)
		frames = append(frames, figure.Frame{Name: name, Data: []figure.Trace{*t}})
		steps = append(steps, figure.SliderStep{
			Label:  name,
			Method: "animate",
			Args: []interface{}{
				[]string{name},
				map[string]interface{}{
					"mode":       "immediate",
					"frame":      map[string]interface{}{"duration": 0, "redraw": true},
					"transition": map[string]interface{}{"duration": 0},
				},
			},
		})
	}

	fig := figure.Figure{
		Frames: frames,
		Layout: figure.Layout{
			Margin: &figure.Margin{},
			Geo: &figure.Geo{
				ShowFrame:  false,
				Visible:    false,
				FitBounds:  "locations",
				Projection: figure.Projection{Type: "equirectangular"},
			},
			Sliders: []figure.Slider{{Active: 0, Steps: steps}},
		},
	}
	if len(frames) > 0 {
		fig.Data = frames[0].Data
	}
	return fig
}

package charts

import (
	"bytes"
	"math"
	"testing"

	"gohappy/domain/core"
	"gohappy/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestScatterPNG(t *testing.T) {
	x := []float64{11.0, 11.2, 11.1}
	y := []float64{7.5, 7.6, 7.7}
	line, err := analysis.FitLine(x, y)
	require.NoError(t, err)

	tests := []struct {
		name    string
		scatter Scatter
	}{
		{
			name: "points with trendline",
			scatter: Scatter{
				Title: "Comparing Log GDP per capita and Life Ladder for Switzerland",
				Years: []int{2019, 2020, 2021}, X: x, Y: y, Line: &line,
			},
		},
		{
			name:    "single point",
			scatter: Scatter{Years: []int{2020}, X: []float64{7.8}, Y: []float64{0.2}},
		},
		{
			name:    "no year labels",
			scatter: Scatter{X: x, Y: y},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, ScatterPNG(&buf, tt.scatter, DefaultWidth, DefaultHeight))
			assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
		})
	}
}

func TestScatterPNG_NoPoints(t *testing.T) {
	var buf bytes.Buffer
	err := ScatterPNG(&buf, Scatter{}, DefaultWidth, DefaultHeight)
	require.Error(t, err)
	assert.True(t, core.IsInsufficientData(err))
	assert.Zero(t, buf.Len())
}

func TestHeatmapPNG(t *testing.T) {
	nan := math.NaN()
	h := Heatmap{
		Title:  "Correlation Information about Switzerland",
		Labels: []string{"Life Ladder", "Generosity", "Freedom"},
		Matrix: [][]float64{
			{1, 0.5, nan},
			{0.5, 1, nan},
			{nan, nan, nan},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, HeatmapPNG(&buf, h, 4*vg.Inch, 4*vg.Inch))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))
}

func TestHeatmapPNG_Invalid(t *testing.T) {
	tests := []struct {
		name string
		h    Heatmap
	}{
		{name: "empty", h: Heatmap{}},
		{name: "label mismatch", h: Heatmap{Labels: []string{"a"}, Matrix: [][]float64{{1, 0}, {0, 1}}}},
		{name: "ragged", h: Heatmap{Labels: []string{"a", "b"}, Matrix: [][]float64{{1, 0}, {0}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Error(t, HeatmapPNG(&buf, tt.h, DefaultHeatmapSize, DefaultHeatmapSize))
		})
	}
}

func TestMatrixGrid_TopRowFirst(t *testing.T) {
	g := matrixGrid{m: [][]float64{{1, 2}, {3, 4}}}
	c, r := g.Dims()
	assert.Equal(t, 2, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 3.0, g.Z(0, 0))
	assert.Equal(t, 2.0, g.Z(1, 1))
}

package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"gohappy/domain/core"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Heatmap is a labelled square correlation matrix
type Heatmap struct {
	Title  string
	Labels []string
	Matrix [][]float64
}

// matrixGrid adapts a square matrix to plotter.GridXYZ with row 0 drawn at the top
type matrixGrid struct {
	m [][]float64
}

func (g matrixGrid) Dims() (c, r int) { return len(g.m), len(g.m) }
func (g matrixGrid) Z(c, r int) float64 { return g.m[len(g.m)-1-r][c] }
func (g matrixGrid) X(c int) float64 { return float64(c) }
func (g matrixGrid) Y(r int) float64 { return float64(r) }

// HeatmapPNG renders the matrix with the coefficient printed in every cell.
// Width and height are in inches.
func HeatmapPNG(w io.Writer, h Heatmap, width, height vg.Length) error {
	n := len(h.Matrix)
	if n == 0 || len(h.Labels) != n {
		return core.NewInsufficientDataError("heatmap chart", n)
	}
	for _, row := range h.Matrix {
		if len(row) != n {
			return fmt.Errorf("heatmap matrix is not square: %d columns in a %d row matrix", len(row), n)
		}
	}

	grid := matrixGrid{m: h.Matrix}
	hm := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 200}

	p := plot.New()
	p.Title.Text = h.Title
	p.Add(hm)

	xTicks := make([]plot.Tick, n)
	yTicks := make([]plot.Tick, n)
	var cells plotter.XYLabels
	for i, label := range h.Labels {
		xTicks[i] = plot.Tick{Value: float64(i), Label: label}
		yTicks[i] = plot.Tick{Value: float64(n - 1 - i), Label: label}
	}
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			z := grid.Z(c, r)
			text := "n/a"
			if !math.IsNaN(z) {
				text = fmt.Sprintf("%.2f", z)
			}
			cells.XYs = append(cells.XYs, plotter.XY{X: float64(c), Y: float64(r)})
			cells.Labels = append(cells.Labels, text)
		}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)
	p.X.Tick.Label.Rotation = math.Pi / 4

	labels, err := plotter.NewLabels(cells)
	if err != nil {
		return fmt.Errorf("failed to label heatmap cells: %w", err)
	}
	p.Add(labels)

	writer, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("failed to create heatmap writer: %w", err)
	}

	var buf bytes.Buffer
	if _, err := writer.WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to render heatmap: %w", err)
	}
	_, err = buf.WriteTo(w)
	return err
}

// DefaultHeatmapSize is the square edge used by the dashboard
const DefaultHeatmapSize = 8 * vg.Inch

package analysis

import (
	"math"

	"gohappy/domain/core"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
)

// Line is an ordinary least squares fit y = Alpha + Beta*x
type Line struct {
	Alpha    float64 `json:"alpha"`
	Beta     float64 `json:"beta"`
	RSquared float64 `json:"r_squared"`
	N        int     `json:"n"`
	MinX     float64 `json:"min_x"`
	MaxX     float64 `json:"max_x"`
}

// At evaluates the line
func (l Line) At(x float64) float64 {
	return l.Alpha + l.Beta*x
}

// FitLine fits an OLS trendline over the complete pairs of x and y
func FitLine(x, y []float64) (Line, error) {
	xs, ys := CompletePairs(x, y)
	n := len(xs)
	if n < 2 {
		return Line{}, core.NewInsufficientDataError("trendline", n)
	}

	minX, _ := stats.Min(xs)
	maxX, _ := stats.Max(xs)
	if minX == maxX {
		return Line{}, core.NewInsufficientDataError("trendline with constant x", n)
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, alpha, beta)
	if math.IsNaN(r2) {
		// constant y: the fitted line is exact
		r2 = 1
	}

	return Line{Alpha: alpha, Beta: beta, RSquared: r2, N: n, MinX: minX, MaxX: maxX}, nil
}

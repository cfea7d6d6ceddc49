package analysis

import (
	"math"

	"gohappy/domain/core"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// CompletePairs drops every position where either side is NaN
func CompletePairs(x, y []float64) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}
	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, y[i])
	}
	return xs, ys
}

// Pearson computes the correlation coefficient over pairwise-complete observations.
// It returns the coefficient and the number of pairs used.
func Pearson(x, y []float64) (float64, int, error) {
	xs, ys := CompletePairs(x, y)
	n := len(xs)
	if n < 2 {
		return math.NaN(), n, core.NewInsufficientDataError("correlation", n)
	}

	varX, _ := stats.Variance(xs)
	varY, _ := stats.Variance(ys)
	if varX == 0 || varY == 0 {
		return math.NaN(), n, core.NewInsufficientDataError("constant series", n)
	}

	r, err := stats.Correlation(xs, ys)
	if err != nil {
		return math.NaN(), n, err
	}
	// guard against rounding just outside [-1, 1]
	return math.Max(-1, math.Min(1, r)), n, nil
}

// PValue is the two-sided p-value of H0: rho = 0 for a coefficient over n pairs
func PValue(r float64, n int) float64 {
	if n < 3 || math.IsNaN(r) {
		return math.NaN()
	}
	if math.Abs(r) >= 1 {
		return 0
	}
	df := float64(n - 2)
	t := r * math.Sqrt(df/(1-r*r))
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	return 2 * (1 - dist.CDF(math.Abs(t)))
}

// CorrelationMatrix computes pairwise correlations between columns.
// Cells with too few pairs, or a constant column, are NaN.
func CorrelationMatrix(columns [][]float64) [][]float64 {
	k := len(columns)
	m := make([][]float64, k)
	for i := range m {
		m[i] = make([]float64, k)
	}

	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			r, _, err := Pearson(columns[i], columns[j])
			if err != nil {
				r = math.NaN()
			} else if i == j {
				r = 1
			}
			m[i][j] = r
			m[j][i] = r
		}
	}
	return m
}

// RoundMatrix rounds every finite cell to the given number of decimal places
func RoundMatrix(m [][]float64, places int) [][]float64 {
	out := make([][]float64, len(m))
	for i, row := range m {
		out[i] = make([]float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				out[i][j] = v
				continue
			}
			rounded, err := stats.Round(v, places)
			if err != nil {
				rounded = v
			}
			out[i][j] = rounded
		}
	}
	return out
}

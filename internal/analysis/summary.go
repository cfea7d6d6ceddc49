package analysis

import (
	"math"

	"gohappy/domain/core"

	"github.com/montanaflynn/stats"
)

// Summary describes one feature of one country across the reported years
type Summary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// Summarize computes descriptive statistics, ignoring missing values
func Summarize(values []float64) (Summary, error) {
	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			data = append(data, v)
		}
	}
	if len(data) == 0 {
		return Summary{}, core.NewInsufficientDataError("summary", 0)
	}

	mean, _ := data.Mean()
	median, _ := data.Median()
	min, _ := data.Min()
	max, _ := data.Max()
	stdDev := 0.0
	if len(data) > 1 {
		stdDev, _ = data.StandardDeviationSample()
	}

	return Summary{
		Count:  len(data),
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
	}, nil
}

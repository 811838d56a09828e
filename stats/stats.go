package stats

import (
	"math"
	"slices"
)

// Statistics describes a batch of round counts. Mode, Min and Max
// are values from the batch itself.
type Statistics struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Mode   int     `json:"mode"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	StdDev float64 `json:"stdDev"`
}

// Compute returns descriptive statistics for values. An empty batch
// yields the zero Statistics. StdDev is the population standard
// deviation.
func Compute(values []int) Statistics {
	if len(values) == 0 {
		return Statistics{}
	}

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	n := float64(len(values))
	sum := 0
	for _, v := range values {
		sum += v
	}
	mean := float64(sum) / n

	var sq float64
	for _, v := range values {
		d := float64(v) - mean
		sq += d * d
	}

	return Statistics{
		Mean:   mean,
		Median: median(sorted),
		Mode:   mode(values),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		StdDev: math.Sqrt(sq / n),
	}
}

func median(sorted []int) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}

// mode breaks ties by whichever value appears first in values.
func mode(values []int) int {
	counts := make(map[int]int, len(values))
	best, bestCount := values[0], 0
	for _, v := range values {
		counts[v]++
	}
	for _, v := range values {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

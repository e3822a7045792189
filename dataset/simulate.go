package dataset

import (
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/floats"
)

// GenerateIndex returns the 1-based positions 1..n
func GenerateIndex(n int) Series {
	x := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x = append(x, float64(i+1))
	}
	return Series(x)
}

// GenerateDays returns n consecutive days starting at the date of start
func GenerateDays(start time.Time, n int) []time.Time {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	t := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		t = append(t, day.AddDate(0, 0, i))
	}
	return t
}

type Series []float64

func (s Series) Add(src Series) Series {
	floats.Add(s, src)
	return s
}

func GenerateConstY(n int, val float64) Series {
	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, val)
	}
	return Series(y)
}

// GenerateLinearY evaluates slope*x + intercept at every x
func GenerateLinearY(x []float64, slope, intercept float64) Series {
	y := make([]float64, 0, len(x))
	for _, xPnt := range x {
		y = append(y, slope*xPnt+intercept)
	}
	return Series(y)
}

// GenerateWaveY generates a sine wave over x with the given amplitude, period and phase offset
func GenerateWaveY(x []float64, amp, period, offset float64) Series {
	y := make([]float64, 0, len(x))
	for _, xPnt := range x {
		y = append(y, amp*math.Sin(2.0*math.Pi/period*(xPnt+offset)))
	}
	return Series(y)
}

// GenerateNoise draws n normally distributed values scaled by noiseScale. A nil rng uses the global
// source.
func GenerateNoise(n int, noiseScale float64, rng *rand.Rand) Series {
	norm := rand.NormFloat64
	if rng != nil {
		norm = rng.NormFloat64
	}

	y := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		y = append(y, norm()*noiseScale)
	}
	return Series(y)
}

package linearmodel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// singularTolerance bounds the summation denominator relative to n·Σx² below which the x values are
// considered to have no spread.
const singularTolerance = 1e-12

// fitFormula computes the least squares line using the summation identities
//
//	slope     = (n·Σxy - Σx·Σy) / (n·Σx² - (Σx)²)
//	intercept = (Σy - slope·Σx) / n
func fitFormula(x, y []float64) (float64, float64, error) {
	n := float64(len(x))
	sumX := floats.Sum(x)
	sumY := floats.Sum(y)
	sumXY := floats.Dot(x, y)
	sumX2 := floats.Dot(x, x)

	denom := n*sumX2 - sumX*sumX
	if math.Abs(denom) <= singularTolerance*n*sumX2 {
		return 0, 0, fmt.Errorf("summation denominator is %g, %w", denom, ErrSingularFit)
	}

	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n
	return slope, intercept, nil
}

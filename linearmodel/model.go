// Package linearmodel fits a simple ordinary least squares line y = slope·x + intercept over paired
// samples. Two independent solvers are available, a closed form summation formula and a matrix
// projection over the normal equations, both sharing the same goodness of fit computation.
package linearmodel

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinSamples is the fewest number of samples that define a line
const MinSamples = 2

// EquationPrecision is the number of decimals rendered by Model.Equation
const EquationPrecision = 4

type solver func(x, y []float64) (slope, intercept float64, err error)

var solvers = map[Method]solver{
	Matrix:  fitNormal,
	Formula: fitFormula,
}

// Model is an immutable least squares fit. It keeps its own copy of the samples it was fit on so that
// derived statistics always describe the same data.
type Model struct {
	method    Method
	slope     float64
	intercept float64
	rSquared  float64

	x []float64
	y []float64
}

// Fit validates the input samples and fits a line using the requested method. On error no model is
// returned.
func Fit(x, y []float64, method Method) (*Model, error) {
	solve, exists := solvers[method]
	if !exists {
		return nil, fmt.Errorf("%s, %w", method, ErrUnknownMethod)
	}
	if err := validateSamples(x, y); err != nil {
		return nil, err
	}

	xCopy := make([]float64, len(x))
	yCopy := make([]float64, len(y))
	copy(xCopy, x)
	copy(yCopy, y)

	slope, intercept, err := solve(xCopy, yCopy)
	if err != nil {
		return nil, fmt.Errorf("unable to fit with %s method, %w", method, err)
	}
	if !isFinite(slope) || !isFinite(intercept) {
		return nil, fmt.Errorf("%s method produced slope=%v intercept=%v, %w", method, slope, intercept, ErrSingularFit)
	}

	m := &Model{
		method:    method,
		slope:     slope,
		intercept: intercept,
		x:         xCopy,
		y:         yCopy,
	}
	m.rSquared = rSquared(m.PredictAll(xCopy), yCopy)
	return m, nil
}

func validateSamples(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("x has length of %d, but y has a length of %d, %w", len(x), len(y), ErrSampleLenMismatch)
	}
	if len(x) < MinSamples {
		return fmt.Errorf("got %d samples, need at least %d, %w", len(x), MinSamples, ErrInsufficientData)
	}
	for i := 0; i < len(x); i++ {
		if !isFinite(x[i]) || !isFinite(y[i]) {
			return fmt.Errorf("at index %d (x=%v, y=%v), %w", i, x[i], y[i], ErrNonFiniteSample)
		}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Predict evaluates the fitted line at x
func (m *Model) Predict(x float64) float64 {
	// explicit conversion keeps the product from being fused into an FMA
	return float64(m.slope*x) + m.intercept
}

// PredictAll evaluates the fitted line at every input point
func (m *Model) PredictAll(x []float64) []float64 {
	res := make([]float64, 0, len(x))
	for _, xPnt := range x {
		res = append(res, m.Predict(xPnt))
	}
	return res
}

// Slope returns the full precision fitted slope
func (m *Model) Slope() float64 {
	return m.slope
}

// Intercept returns the full precision fitted intercept
func (m *Model) Intercept() float64 {
	return m.intercept
}

// RSquared returns the coefficient of determination on the training samples. It is NaN when the y
// samples have no variance, see HasRSquared.
func (m *Model) RSquared() float64 {
	return m.rSquared
}

// HasRSquared reports whether the coefficient of determination is defined for this fit
func (m *Model) HasRSquared() bool {
	return !math.IsNaN(m.rSquared)
}

// Method returns the solver used to fit the model
func (m *Model) Method() Method {
	return m.method
}

// Len returns the number of samples the model was fit on
func (m *Model) Len() int {
	return len(m.x)
}

// Samples returns a copy of the x and y samples the model was fit on
func (m *Model) Samples() ([]float64, []float64) {
	x := make([]float64, len(m.x))
	y := make([]float64, len(m.y))
	copy(x, m.x)
	copy(y, m.y)
	return x, y
}

// Scores returns the fit scores of the model against its training samples
func (m *Model) Scores() (*Scores, error) {
	return NewScores(m.PredictAll(m.x), m.y)
}

// Equation renders the model as "y = {slope}x {sign} {|intercept|}" rounded to EquationPrecision
// decimals. The stored coefficients are not affected.
func (m *Model) Equation() string {
	slope := Round(m.slope, EquationPrecision)
	intercept := Round(m.intercept, EquationPrecision)

	sign := "+"
	if intercept < 0 {
		sign = "-"
	}
	return fmt.Sprintf("y = %sx %s %s", formatFloat(slope), sign, formatFloat(math.Abs(intercept)))
}

// Round rounds v half away from zero to the given number of decimal places. Negative zero is
// normalized to zero. Values too large to carry the requested decimals are returned unchanged.
func Round(v float64, places int) float64 {
	if !isFinite(v) {
		return v
	}
	p := math.Pow10(places)
	if math.Abs(v) >= (1<<52)/p || math.IsInf(v*p, 0) {
		return v
	}
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}

// formatFloat renders the shortest representation of v that always carries a decimal point, e.g. 2.0
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !isFinite(v) || strings.Contains(s, ".") {
		return s
	}
	return s + ".0"
}

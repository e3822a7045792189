package linearmodel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Scores summarizes how closely a fitted line follows its samples
type Scores struct {
	MSE  float64 `json:"mean_squared_error"`
	MAPE float64 `json:"mean_average_percent_error"`
	R2   float64 `json:"r_squared"`
}

// NewScores scores predicted against actual. Both slices must be the same length.
func NewScores(predicted, actual []float64) (*Scores, error) {
	if len(predicted) != len(actual) {
		return nil, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}
	mse, _ := MSE(predicted, actual)
	mape, _ := MAPE(predicted, actual)
	return &Scores{
		MSE:  mse,
		MAPE: mape,
		R2:   rSquared(predicted, actual),
	}, nil
}

// MSE is the average squared residual, zero when every prediction is exact. An empty input scores 0.
func MSE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}
	if len(actual) == 0 {
		return 0, nil
	}
	dist := floats.Distance(predicted, actual, 2)
	return dist * dist / float64(len(actual)), nil
}

// MAPE is the average of |residual / actual|. Samples with an actual of 0 contribute nothing but still
// count towards the average.
func MAPE(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}
	if len(actual) == 0 {
		return 0, nil
	}

	var total float64
	for i, a := range actual {
		if a != 0 {
			total += math.Abs((a - predicted[i]) / a)
		}
	}
	return total / float64(len(actual)), nil
}

// RSquared is the coefficient of determination of predicted against actual. It is NaN when actual
// is empty or constant.
func RSquared(predicted, actual []float64) (float64, error) {
	if len(predicted) != len(actual) {
		return 0, fmt.Errorf("expected %d, but got %d, %w", len(actual), len(predicted), ErrResLenMismatch)
	}
	return rSquared(predicted, actual), nil
}

// rSquared returns the NaN sentinel for constant samples, compared exactly before any arithmetic so a
// mean that is not representable cannot leak a tiny total sum of squares into the ratio.
func rSquared(predicted, actual []float64) float64 {
	if len(actual) == 0 || floats.Min(actual) == floats.Max(actual) {
		return math.NaN()
	}
	r2 := stat.RSquaredFrom(predicted, actual, nil)
	if math.IsNaN(r2) || math.IsInf(r2, 0) {
		// sums of squares overflowed
		return math.NaN()
	}
	return r2
}

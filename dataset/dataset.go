// Package dataset holds paired x/y samples. Samples are only ever appended so an observation's position
// is its match order.
package dataset

import (
	"errors"
	"fmt"
)

var ErrDatasetLenMismatch = errors.New("x samples have a different length than y samples")

// Dataset stores paired samples where X[i] and Y[i] belong to the same observation.
// Both must be of the same length.
type Dataset struct {
	X []float64
	Y []float64
}

// New returns an empty dataset ready to be appended to
func New() *Dataset {
	return &Dataset{
		X: []float64{},
		Y: []float64{},
	}
}

// NewDataset returns a copy of the x and y samples as a Dataset
func NewDataset(x, y []float64) (*Dataset, error) {
	if len(x) != len(y) {
		return nil, fmt.Errorf(
			"x has length of %d, but y has a length of %d, %w",
			len(x), len(y), ErrDatasetLenMismatch,
		)
	}

	ds := New()
	for i := 0; i < len(x); i++ {
		ds.Append(x[i], y[i])
	}
	return ds, nil
}

// Append adds an observation to the end of the dataset
func (ds *Dataset) Append(x, y float64) {
	ds.X = append(ds.X, x)
	ds.Y = append(ds.Y, y)
}

// AppendNext adds an observation whose x is the next 1-based position in the dataset
func (ds *Dataset) AppendNext(y float64) {
	ds.Append(float64(len(ds.X)+1), y)
}

// Len returns the number of observations
func (ds *Dataset) Len() int {
	return len(ds.X)
}

// Values returns copies of the x and y samples
func (ds *Dataset) Values() ([]float64, []float64) {
	c := ds.Copy()
	return c.X, c.Y
}

func (ds *Dataset) Copy() *Dataset {
	x := make([]float64, len(ds.X))
	y := make([]float64, len(ds.Y))
	copy(x, ds.X)
	copy(y, ds.Y)
	return &Dataset{
		X: x,
		Y: y,
	}
}

// Package mat holds helpers for building gonum matrices from plain slices
package mat

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrColMismatch = errors.New("column size mismatch")
	ErrEmptyArray  = errors.New("array has no rows or columns")
)

// NewDenseFromArray converts a row ordered 2d slice into a dense matrix. Every row must have the same
// number of columns.
func NewDenseFromArray(x [][]float64) (*mat.Dense, error) {
	m := len(x)

	n := -1
	for i, row := range x {
		if n >= 0 && len(row) != n {
			return nil, fmt.Errorf("at row %d, %w", i, ErrColMismatch)
		}
		if n < 0 {
			n = len(row)
		}
	}
	if m == 0 || n <= 0 {
		return nil, fmt.Errorf("got %d rows, %w", m, ErrEmptyArray)
	}

	// flatten to row order
	data := make([]float64, 0, m*n)
	for _, row := range x {
		data = append(data, row...)
	}
	return mat.NewDense(m, n, data), nil
}

// NewDesignMatrix returns the n x 2 design matrix for a simple linear model where the first column is
// the constant intercept feature and the second column is x.
func NewDesignMatrix(x []float64) (*mat.Dense, error) {
	rows := make([][]float64, 0, len(x))
	for _, xPnt := range x {
		rows = append(rows, []float64{1.0, xPnt})
	}
	return NewDenseFromArray(rows)
}

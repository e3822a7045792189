package linearmodel

import (
	"errors"
)

var (
	ErrSampleLenMismatch = errors.New("x and y samples have different lengths")
	ErrInsufficientData  = errors.New("insufficient samples to fit a line")
	ErrSingularFit       = errors.New("singular fit, x values have no spread")
	ErrNonFiniteSample   = errors.New("sample is NaN or infinite")
	ErrUnknownMethod     = errors.New("unknown fit method")
	ErrResLenMismatch    = errors.New("predicted and actual have different lengths")
)

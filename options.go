package linreg

import (
	"fmt"
	"time"

	"github.com/aouyang1/go-linreg/datasource"
	"github.com/aouyang1/go-linreg/linearmodel"
)

// Options configures the analysis pipeline
type Options struct {
	// Method is the default fit method when a caller does not pick one
	Method linearmodel.Method `json:"method" yaml:"method"`

	// Timeout bounds a single data source fetch
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Selector is the dataset analyzed when a caller does not pick one
	Selector datasource.Selector `json:"selector" yaml:"selector"`

	// SourceName labels fetch metrics and logs, e.g. json, mysql or influx
	SourceName string `json:"source_name" yaml:"source_name"`
}

// NewDefaultOptions returns the options for the noon readings of Tel Aviv in June 2024 fit with the
// matrix method
func NewDefaultOptions() *Options {
	return &Options{
		Method:  linearmodel.Matrix,
		Timeout: 10 * time.Second,
		Selector: datasource.Selector{
			City:  "Tel Aviv",
			Month: time.June,
			Year:  2024,
		},
		SourceName: "json",
	}
}

// Validate checks the options can drive an analysis
func (o *Options) Validate() error {
	if err := o.Method.Valid(); err != nil {
		return fmt.Errorf("%v, %w", err, ErrInvalidOptions)
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s, %w", o.Timeout, ErrInvalidOptions)
	}
	if err := o.Selector.Validate(); err != nil {
		return fmt.Errorf("default selector, %v, %w", err, ErrInvalidOptions)
	}
	return nil
}

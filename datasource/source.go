// Package datasource loads temperature readings for a city and month and converts them into regression
// samples. Every adapter returns x as the 1-based position of the matched reading in stable order and
// y as the reading's temperature.
package datasource

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrDataUnavailable = errors.New("data source unavailable")
	ErrMalformedRecord = errors.New("malformed temperature record")
	ErrInvalidSelector = errors.New("invalid selector")
)

// NoonHour is the hour of day of the readings used for regression
const NoonHour = 12

// Source fetches the regression samples matching a selector. A selector with no matching readings
// returns two empty slices and no error.
type Source interface {
	Fetch(ctx context.Context, sel Selector) (x []float64, y []float64, err error)
}

// Selector picks the readings of a city within a calendar month
type Selector struct {
	City  string     `json:"city" yaml:"city" validate:"required,max=128"`
	Month time.Month `json:"month" yaml:"month" validate:"min=1,max=12"`
	Year  int        `json:"year" yaml:"year" validate:"min=1,max=9999"`
}

var validate = validator.New()

// Validate checks the selector fields are in range
func (s Selector) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("%v, %w", err, ErrInvalidSelector)
	}
	return nil
}

// Window returns the half open time range [start, end) covered by the selector in UTC
func (s Selector) Window() (time.Time, time.Time) {
	start := time.Date(s.Year, s.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

func (s Selector) String() string {
	return fmt.Sprintf("%s %04d-%02d", s.City, s.Year, int(s.Month))
}

// Reading is a single temperature observation
type Reading struct {
	Date        string  `json:"date"`
	City        string  `json:"city"`
	Hour        int     `json:"hour"`
	Temperature float64 `json:"temperature"`
}

// ReadingFile is the document layout of a JSON readings file
type ReadingFile struct {
	Readings []Reading `json:"temperature_readings"`
}

// dateLayouts are the accepted reading date formats, tried in order
var dateLayouts = []string{time.DateOnly, time.RFC3339, time.DateTime}

func parseDate(date string) (time.Time, error) {
	var err error
	for _, layout := range dateLayouts {
		var t time.Time
		t, err = time.Parse(layout, date)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

// Matches reports whether the reading belongs to the selector and is a noon reading
func (r Reading) Matches(sel Selector) (bool, error) {
	if r.City != sel.City || r.Hour != NoonHour {
		return false, nil
	}
	t, err := parseDate(r.Date)
	if err != nil {
		return false, fmt.Errorf("date %q, %v, %w", r.Date, err, ErrMalformedRecord)
	}
	return t.Month() == sel.Month && t.Year() == sel.Year, nil
}

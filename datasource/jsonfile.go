package datasource

import (
	"context"
	"fmt"

	"github.com/aouyang1/go-linreg/dataset"

	"github.com/goccy/go-json"
)

// JSONFile reads a readings document on every fetch and filters it in document order
type JSONFile struct {
	opener Opener
}

// NewJSONFile returns a source over the document opened by opener
func NewJSONFile(opener Opener) *JSONFile {
	return &JSONFile{opener: opener}
}

// Fetch returns the noon readings of the selected city and month in the order they appear in the
// document
func (s *JSONFile) Fetch(ctx context.Context, sel Selector) ([]float64, []float64, error) {
	if err := sel.Validate(); err != nil {
		return nil, nil, err
	}

	readings, err := s.load(ctx)
	if err != nil {
		return nil, nil, err
	}

	ds := dataset.New()
	for i, r := range readings {
		match, err := r.Matches(sel)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d of %s, %w", i, s.opener, err)
		}
		if match {
			ds.AppendNext(r.Temperature)
		}
	}
	return ds.X, ds.Y, nil
}

func (s *JSONFile) load(ctx context.Context) ([]Reading, error) {
	rc, err := s.opener.Open(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s, %v, %w", s.opener, err, ErrDataUnavailable)
	}
	defer rc.Close()

	var doc ReadingFile
	if err := json.NewDecoder(rc).DecodeContext(ctx, &doc); err != nil {
		return nil, fmt.Errorf("unable to decode %s, %v, %w", s.opener, err, ErrMalformedRecord)
	}
	return doc.Readings, nil
}

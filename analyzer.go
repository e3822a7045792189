// Package linreg fits least squares lines over temperature readings pulled from a data source or
// supplied by a caller, and renders the fit as a transport report or an echarts page.
package linreg

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aouyang1/go-linreg/datasource"
	"github.com/aouyang1/go-linreg/linearmodel"
	"github.com/aouyang1/go-linreg/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrNoSource       = errors.New("no data source configured")
	ErrInvalidOptions = errors.New("invalid options")
)

const tracerName = "github.com/aouyang1/go-linreg"

// Point is a single sample pair
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// SplitPoints separates points into x and y slices preserving order
func SplitPoints(points []Point) ([]float64, []float64) {
	x := make([]float64, 0, len(points))
	y := make([]float64, 0, len(points))
	for _, p := range points {
		x = append(x, p.X)
		y = append(y, p.Y)
	}
	return x, y
}

// Analyzer fetches samples from a data source and fits them. It holds no per request state and is
// safe for concurrent use.
type Analyzer struct {
	opt     *Options
	src     datasource.Source
	metrics *observability.Metrics
	logger  *slog.Logger
	tracer  trace.Tracer
}

// New creates an Analyzer over src. If no options are provided a default is used. metrics and logger
// are optional.
func New(src datasource.Source, opt *Options, metrics *observability.Metrics, logger *slog.Logger) (*Analyzer, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	a := &Analyzer{
		opt:     opt,
		src:     src,
		metrics: metrics,
		logger:  logger.With("source", opt.SourceName),
		tracer:  otel.Tracer(tracerName),
	}
	return a, nil
}

// Options returns the options of the analyzer
func (a *Analyzer) Options() Options {
	return *a.opt
}

// Analyze fetches the samples picked by sel and fits them with method. The fetch is bounded by the
// configured timeout. Data source failures keep their datasource error kind and fit failures keep
// their linearmodel error kind.
func (a *Analyzer) Analyze(ctx context.Context, sel datasource.Selector, method linearmodel.Method) (*linearmodel.Model, error) {
	ctx, span := a.tracer.Start(ctx, "Analyze", trace.WithAttributes(
		attribute.String("city", sel.City),
		attribute.Int("month", int(sel.Month)),
		attribute.Int("year", sel.Year),
		attribute.String("method", method.String()),
	))
	defer span.End()

	x, y, err := a.fetch(ctx, sel)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		return nil, err
	}

	m, err := a.fit(x, y, method)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fit failed")
		return nil, err
	}
	span.SetAttributes(attribute.Int("samples", m.Len()))
	return m, nil
}

// AnalyzeDefault analyzes the configured default selector with the configured default method
func (a *Analyzer) AnalyzeDefault(ctx context.Context) (*linearmodel.Model, error) {
	return a.Analyze(ctx, a.opt.Selector, a.opt.Method)
}

// Calculate fits caller supplied points with method
func (a *Analyzer) Calculate(points []Point, method linearmodel.Method) (*linearmodel.Model, error) {
	x, y := SplitPoints(points)
	return a.fit(x, y, method)
}

func (a *Analyzer) fetch(ctx context.Context, sel datasource.Selector) ([]float64, []float64, error) {
	ctx, cancel := context.WithTimeout(ctx, a.opt.Timeout)
	defer cancel()

	start := time.Now()
	x, y, err := a.src.Fetch(ctx, sel)
	elapsed := time.Since(start)
	if err != nil {
		a.metrics.ObserveFetch(a.opt.SourceName, observability.OutcomeError, elapsed)
		a.logger.Error("unable to fetch readings", "selector", sel.String(), "error", err)
		return nil, nil, fmt.Errorf("unable to fetch readings for %s, %w", sel, err)
	}
	a.metrics.ObserveFetch(a.opt.SourceName, observability.OutcomeSuccess, elapsed)
	a.logger.Debug("fetched readings", "selector", sel.String(), "samples", len(x), "elapsed", elapsed)
	return x, y, nil
}

func (a *Analyzer) fit(x, y []float64, method linearmodel.Method) (*linearmodel.Model, error) {
	start := time.Now()
	m, err := linearmodel.Fit(x, y, method)
	elapsed := time.Since(start)

	a.metrics.ObserveFit(method.String(), FitOutcome(err), elapsed)
	if err != nil {
		a.logger.Warn("unable to fit", "method", method.String(), "samples", len(x), "error", err)
		return nil, err
	}
	a.logger.Debug("fit model",
		"method", method.String(),
		"samples", m.Len(),
		"equation", m.Equation(),
		"elapsed", elapsed,
	)
	return m, nil
}

// FitOutcome maps a fit error to its metric outcome label
func FitOutcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeSuccess
	case errors.Is(err, linearmodel.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, linearmodel.ErrSingularFit):
		return "singular_fit"
	case errors.Is(err, linearmodel.ErrSampleLenMismatch), errors.Is(err, linearmodel.ErrNonFiniteSample):
		return "invalid_samples"
	case errors.Is(err, linearmodel.ErrUnknownMethod):
		return "unknown_method"
	default:
		return observability.OutcomeError
	}
}

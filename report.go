package linreg

import (
	"github.com/aouyang1/go-linreg/linearmodel"
)

const (
	// PointPrecision is the number of decimals of the y values of a report
	PointPrecision = 2
	// StatPrecision is the number of decimals of the statistics of a report
	StatPrecision = 4
)

// Report is the transport shape of a fit. Values are rounded for display and a nil RSquared means the
// samples had no variance.
type Report struct {
	Actual     []Point            `json:"actual"`
	Regression []Point            `json:"regression"`
	Equation   string             `json:"equation"`
	RSquared   *float64           `json:"r_squared"`
	Slope      float64            `json:"slope"`
	Intercept  float64            `json:"intercept"`
	Method     linearmodel.Method `json:"method"`
}

// NewReport renders a fitted model as a Report
func NewReport(m *linearmodel.Model) *Report {
	x, y := m.Samples()
	predicted := m.PredictAll(x)

	r := &Report{
		Actual:     make([]Point, 0, len(x)),
		Regression: make([]Point, 0, len(x)),
		Equation:   m.Equation(),
		Slope:      linearmodel.Round(m.Slope(), StatPrecision),
		Intercept:  linearmodel.Round(m.Intercept(), StatPrecision),
		Method:     m.Method(),
	}
	for i := 0; i < len(x); i++ {
		r.Actual = append(r.Actual, Point{X: x[i], Y: linearmodel.Round(y[i], PointPrecision)})
		r.Regression = append(r.Regression, Point{X: x[i], Y: linearmodel.Round(predicted[i], PointPrecision)})
	}
	if m.HasRSquared() {
		rs := linearmodel.Round(m.RSquared(), StatPrecision)
		r.RSquared = &rs
	}
	return r
}

package linreg

import (
	"io"
	"strconv"

	"github.com/aouyang1/go-linreg/linearmodel"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// LineFit generates an echart of the training samples as a scatter overlapped with the fitted line
func LineFit(m *linearmodel.Model, title string) *charts.Line {
	x, y := m.Samples()
	predicted := m.PredictAll(x)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title:    title,
				Subtitle: m.Equation(),
			},
		),
		charts.WithXAxisOpts(opts.XAxis{Name: "x"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "y"}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
	)

	labels := axisLabels(x)
	lineData := make([]opts.LineData, 0, len(predicted))
	for _, v := range predicted {
		lineData = append(lineData, opts.LineData{Value: linearmodel.Round(v, PointPrecision)})
	}
	scatterData := make([]opts.ScatterData, 0, len(y))
	for _, v := range y {
		scatterData = append(scatterData, opts.ScatterData{Value: v})
	}

	scatter := charts.NewScatter()
	scatter.SetXAxis(labels).AddSeries("Actual", scatterData)

	line.SetXAxis(labels).AddSeries("Regression", lineData)
	line.Overlap(scatter)
	return line
}

// LineResiduals generates an echart line chart of the fit residuals at every training sample
func LineResiduals(m *linearmodel.Model) *charts.Line {
	x, y := m.Samples()
	predicted := m.PredictAll(x)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: "Fit Residual",
			},
		),
	)

	lineData := make([]opts.LineData, 0, len(y))
	for i := 0; i < len(y); i++ {
		lineData = append(lineData, opts.LineData{Value: y[i] - predicted[i]})
	}
	line.SetXAxis(axisLabels(x)).AddSeries("Residual", lineData)
	return line
}

// PlotFit renders an html page with the fit and its residuals to w
func PlotFit(w io.Writer, m *linearmodel.Model, title string) error {
	page := components.NewPage()
	page.PageTitle = title
	page.AddCharts(
		LineFit(m, title),
		LineResiduals(m),
	)
	return page.Render(w)
}

func axisLabels(x []float64) []string {
	labels := make([]string, 0, len(x))
	for _, v := range x {
		labels = append(labels, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return labels
}

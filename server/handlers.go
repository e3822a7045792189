package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aouyang1/go-linreg"
	"github.com/aouyang1/go-linreg/datasource"
	"github.com/aouyang1/go-linreg/linearmodel"

	"github.com/flosch/pongo2/v5"
	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const pageTitle = "Temperature Linear Regression"

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// selectorQuery picks a dataset and method. Empty fields fall back to the analyzer defaults.
type selectorQuery struct {
	City   string `form:"city" binding:"omitempty,max=128"`
	Month  int    `form:"month" binding:"omitempty,min=1,max=12"`
	Year   int    `form:"year" binding:"omitempty,min=1,max=9999"`
	Method string `form:"method"`
}

type predictQuery struct {
	selectorQuery
	X *float64 `form:"x" binding:"required"`
}

type pointRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

type calculateRequest struct {
	Data   []pointRequest `json:"data" binding:"required,dive"`
	Method string         `json:"method"`
}

type predictResponse struct {
	X        float64            `json:"x"`
	Y        float64            `json:"y"`
	Equation string             `json:"equation"`
	Method   linearmodel.Method `json:"method"`
}

func (s *Server) resolveMethod(name string) (linearmodel.Method, error) {
	if name == "" {
		return s.analyzer.Options().Method, nil
	}
	return linearmodel.ParseMethod(name)
}

func (s *Server) resolve(q selectorQuery) (datasource.Selector, linearmodel.Method, error) {
	sel := s.analyzer.Options().Selector
	if q.City != "" {
		sel.City = q.City
	}
	if q.Month != 0 {
		sel.Month = time.Month(q.Month)
	}
	if q.Year != 0 {
		sel.Year = q.Year
	}
	method, err := s.resolveMethod(q.Method)
	return sel, method, err
}

// analyzeQuery binds the selector query of the request and analyzes the picked dataset. On failure the
// error response is already written.
func (s *Server) analyzeQuery(c *gin.Context, q *selectorQuery) (*linearmodel.Model, bool) {
	sel, method, err := s.resolve(*q)
	if err != nil {
		s.badRequest(c, "Invalid method", err)
		return nil, false
	}
	m, err := s.analyzer.Analyze(c.Request.Context(), sel, method)
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return m, true
}

func (s *Server) handleData(c *gin.Context) {
	var q selectorQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badRequest(c, "Invalid query parameters", err)
		return
	}
	m, ok := s.analyzeQuery(c, &q)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, linreg.NewReport(m))
}

func (s *Server) handlePredict(c *gin.Context) {
	var q predictQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badRequest(c, "Invalid query parameters", err)
		return
	}
	m, ok := s.analyzeQuery(c, &q.selectorQuery)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, predictResponse{
		X:        *q.X,
		Y:        m.Predict(*q.X),
		Equation: m.Equation(),
		Method:   m.Method(),
	})
}

func (s *Server) handleCalculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "Invalid request body", err)
		return
	}
	method, err := s.resolveMethod(req.Method)
	if err != nil {
		s.badRequest(c, "Invalid method", err)
		return
	}

	points := make([]linreg.Point, 0, len(req.Data))
	for _, p := range req.Data {
		points = append(points, linreg.Point{X: *p.X, Y: *p.Y})
	}
	m, err := s.analyzer.Calculate(points, method)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.render(c, http.StatusOK, linreg.NewReport(m))
}

func (s *Server) handleChart(c *gin.Context) {
	var q selectorQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.badRequest(c, "Invalid query parameters", err)
		return
	}
	m, ok := s.analyzeQuery(c, &q)
	if !ok {
		return
	}

	sel, _, _ := s.resolve(q)
	var buf bytes.Buffer
	if err := linreg.PlotFit(&buf, m, fmt.Sprintf("Noon temperatures, %s", sel)); err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (s *Server) handleIndex(c *gin.Context) {
	opt := s.analyzer.Options()
	html, err := s.index.Execute(pongo2.Context{
		"title":   pageTitle,
		"city":    opt.Selector.City,
		"month":   int(opt.Selector.Month),
		"year":    opt.Selector.Year,
		"method":  opt.Method.String(),
		"methods": []string{linearmodel.Matrix.String(), linearmodel.Formula.String()},
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// render writes v as JSON. A value that cannot be encoded is reported as a server error rather than an
// empty response.
func (s *Server) render(c *gin.Context, status int, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.fail(c, fmt.Errorf("unable to encode response, %w", err))
		return
	}
	c.Data(status, "application/json; charset=utf-8", b)
}

func (s *Server) badRequest(c *gin.Context, msg string, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, errorResponse{Error: msg, Details: err.Error()})
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status, msg := statusFor(err)
	c.JSON(status, errorResponse{Error: msg, Details: err.Error()})
}

// statusFor maps an analysis error to its http status. Fit and selector errors are the caller's fault,
// everything else is a server side failure.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, datasource.ErrInvalidSelector):
		return http.StatusBadRequest, "Invalid selector"
	case errors.Is(err, linearmodel.ErrInsufficientData),
		errors.Is(err, linearmodel.ErrSingularFit),
		errors.Is(err, linearmodel.ErrSampleLenMismatch),
		errors.Is(err, linearmodel.ErrNonFiniteSample),
		errors.Is(err, linearmodel.ErrUnknownMethod):
		return http.StatusBadRequest, "Unable to fit regression"
	case errors.Is(err, datasource.ErrDataUnavailable), errors.Is(err, datasource.ErrMalformedRecord):
		return http.StatusInternalServerError, "Unable to load data"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// Package server exposes the regression analysis over HTTP.
package server

import (
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aouyang1/go-linreg"
	"github.com/aouyang1/go-linreg/observability"

	"github.com/flosch/pongo2/v5"
	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"golang.org/x/time/rate"
)

var ErrNoAnalyzer = errors.New("no analyzer configured")

//go:embed templates/index.html
var indexTemplate string

// Options configures the HTTP server
type Options struct {
	// RateLimit is the steady state number of /api requests per second, 0 disables limiting
	RateLimit float64
	Burst     int

	// Gzip compresses responses for clients accepting gzip
	Gzip bool

	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Server routes HTTP requests to an Analyzer
type Server struct {
	opt      *Options
	analyzer *linreg.Analyzer
	logger   *slog.Logger
	limiter  *rate.Limiter
	index    *pongo2.Template
	router   *gin.Engine
}

// New creates a Server over analyzer. If no options are provided a default without rate limiting is
// used.
func New(analyzer *linreg.Analyzer, opt *Options) (*Server, error) {
	if analyzer == nil {
		return nil, ErrNoAnalyzer
	}
	if opt == nil {
		opt = &Options{}
	}

	index, err := pongo2.FromString(indexTemplate)
	if err != nil {
		return nil, fmt.Errorf("unable to parse index template, %w", err)
	}

	logger := opt.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		opt:      opt,
		analyzer: analyzer,
		logger:   logger,
		index:    index,
	}
	if opt.RateLimit > 0 {
		burst := opt.Burst
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(opt.RateLimit), burst)
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	router := gin.New()
	router.Use(
		recovery(s.logger),
		requestID(),
		otelgin.Middleware(observability.ServiceName),
		requestLogger(s.logger, s.opt.Metrics),
	)

	router.GET("/", s.handleIndex)
	router.GET("/health", s.handleHealth)
	router.GET("/chart", s.handleChart)
	if s.opt.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.opt.Gatherer, promhttp.HandlerOpts{})))
	}

	api := router.Group("/api", rateLimit(s.limiter))
	api.GET("/data", s.handleData)
	api.GET("/predict", s.handlePredict)
	api.POST("/calculate", s.handleCalculate)
	api.POST("/recalculate", s.handleCalculate)
	return router
}

// Handler returns the root http handler
func (s *Server) Handler() http.Handler {
	if s.opt.Gzip {
		return gzhttp.GzipHandler(s.router)
	}
	return s.router
}

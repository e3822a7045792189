package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aouyang1/go-linreg/observability"
	"github.com/aouyang1/go-linreg/server"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the regression API and web page",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	gin.SetMode(gin.ReleaseMode)

	if a.cfg.Tracing.Enabled {
		shutdown, err := observability.InitTracing(os.Stdout, version)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				a.logger.Warn("unable to flush spans", "error", err)
			}
		}()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	analyzer, closeSrc, err := a.newAnalyzer(ctx, metrics)
	if err != nil {
		return err
	}
	defer closeSrc()

	srv, err := server.New(analyzer, &server.Options{
		RateLimit: a.cfg.Server.RateLimit,
		Burst:     a.cfg.Server.Burst,
		Gzip:      a.cfg.Server.Gzip,
		Metrics:   metrics,
		Gatherer:  reg,
		Logger:    a.logger,
	})
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              a.cfg.Server.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting server", "addr", httpServer.Addr, "source", a.cfg.Data.Source)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server stopped, %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down server", "timeout", a.cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

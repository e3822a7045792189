package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aouyang1/go-linreg"
	"github.com/aouyang1/go-linreg/config"
	"github.com/aouyang1/go-linreg/datasource"
	"github.com/aouyang1/go-linreg/observability"

	"cloud.google.com/go/storage"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
)

// newSource builds the configured data source. The returned function releases its connections.
func newSource(ctx context.Context, cfg config.DataConfig) (datasource.Source, func() error, error) {
	switch cfg.Source {
	case config.SourceJSON:
		return datasource.NewJSONFile(datasource.FileOpener(cfg.File)), func() error { return nil }, nil
	case config.SourceGCS:
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create storage client, %w", err)
		}
		opener := datasource.GCSOpener{Client: client, Bucket: cfg.GCS.Bucket, Object: cfg.GCS.Object}
		return datasource.NewJSONFile(opener), client.Close, nil
	case config.SourceMySQL:
		db, err := datasource.OpenMySQL(cfg.MySQL.DSN)
		if err != nil {
			return nil, nil, err
		}
		return datasource.NewSQL(db), db.Close, nil
	case config.SourceInflux:
		client := influxdb2.NewClient(cfg.Influx.URL, cfg.Influx.Token)
		src := datasource.NewInflux(client.QueryAPI(cfg.Influx.Org), cfg.Influx.Bucket)
		return src, func() error { client.Close(); return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q, %w", cfg.Source, config.ErrInvalidConfig)
	}
}

// newAnalyzer builds the configured source and an analyzer over it
func (a *app) newAnalyzer(ctx context.Context, metrics *observability.Metrics) (*linreg.Analyzer, func(), error) {
	src, closeSrc, err := newSource(ctx, a.cfg.Data)
	if err != nil {
		return nil, nil, err
	}
	closer := func() {
		if err := closeSrc(); err != nil {
			a.logger.Warn("unable to close data source", "source", a.cfg.Data.Source, "error", err)
		}
	}

	analyzer, err := linreg.New(src, a.cfg.Options(), metrics, a.logger)
	if err != nil {
		closer()
		return nil, nil, err
	}
	a.logger.Debug("configured data source", slog.String("source", a.cfg.Data.Source))
	return analyzer, closer, nil
}

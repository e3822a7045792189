package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aouyang1/go-linreg/config"
	"github.com/aouyang1/go-linreg/datasource"
	"github.com/aouyang1/go-linreg/linearmodel"

	"github.com/spf13/cobra"
)

// app carries the state shared by every command after the persistent pre-run
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:     "linreg",
		Short:   "Least squares regression over noon temperature readings",
		Version: version,
		Long: `linreg fits a line through the noon temperature readings of a city and month
and serves the fit over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(
		newServeCmd(a),
		newFitCmd(a),
		newPlotCmd(a),
		newSimulateCmd(a),
	)
	return rootCmd
}

func (a *app) init() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(a.logLevel))); err != nil {
		return fmt.Errorf("invalid log level %q, %w", a.logLevel, err)
	}
	a.logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// selectorFlags overrides the configured default selector and method from command line flags
type selectorFlags struct {
	city   string
	month  int
	year   int
	method string
}

func (f *selectorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.city, "city", "", "city of the readings, defaults to the configured city")
	cmd.Flags().IntVar(&f.month, "month", 0, "month of the readings (1-12), defaults to the configured month")
	cmd.Flags().IntVar(&f.year, "year", 0, "year of the readings, defaults to the configured year")
	cmd.Flags().StringVar(&f.method, "method", "", "fit method: matrix or formula, defaults to the configured method")
}

func (f *selectorFlags) resolve(cfg config.Config) (datasource.Selector, linearmodel.Method, error) {
	sel := cfg.Data.Selector
	if f.city != "" {
		sel.City = f.city
	}
	if f.month != 0 {
		sel.Month = time.Month(f.month)
	}
	if f.year != 0 {
		sel.Year = f.year
	}
	if err := sel.Validate(); err != nil {
		return sel, 0, err
	}

	method := cfg.Fit.Method
	if f.method != "" {
		var err error
		if method, err = linearmodel.ParseMethod(f.method); err != nil {
			return sel, 0, err
		}
	}
	return sel, method, nil
}

package main

import (
	"fmt"
	"os"

	"github.com/aouyang1/go-linreg"

	"github.com/spf13/cobra"
)

func newPlotCmd(a *app) *cobra.Command {
	var (
		flags selectorFlags
		out   string
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render the fit of the selected readings as an html chart",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, method, err := flags.resolve(a.cfg)
			if err != nil {
				return err
			}

			analyzer, closeSrc, err := a.newAnalyzer(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeSrc()

			m, err := analyzer.Analyze(cmd.Context(), sel, method)
			if err != nil {
				return err
			}

			file, err := os.Create(out)
			if err != nil {
				return err
			}
			defer file.Close()

			if err := linreg.PlotFit(file, m, fmt.Sprintf("Noon temperatures, %s", sel)); err != nil {
				return err
			}
			a.logger.Info("wrote chart", "path", out, "equation", m.Equation())
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "linreg.html", "output html path")
	return cmd
}

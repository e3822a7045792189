package main

import (
	"math/rand/v2"
	"os"

	"github.com/aouyang1/go-linreg/datasource"

	"github.com/spf13/cobra"
)

func newSimulateCmd(a *app) *cobra.Command {
	var (
		flags     selectorFlags
		out       string
		slope     float64
		intercept float64
		noise     float64
		seed      uint64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Write a synthetic readings file for the selected city and month",
		RunE: func(cmd *cobra.Command, args []string) error {
			sel, _, err := flags.resolve(a.cfg)
			if err != nil {
				return err
			}

			rng := rand.New(rand.NewPCG(seed, seed))
			readings := datasource.SimulateReadings(sel, slope, intercept, noise, rng)

			w := cmd.OutOrStdout()
			if out != "-" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			if err := datasource.WriteReadings(w, readings); err != nil {
				return err
			}
			a.logger.Info("simulated readings", "selector", sel.String(), "readings", len(readings), "path", out)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "temperature_data.json", "output path, - for stdout")
	cmd.Flags().Float64Var(&slope, "slope", 0.2, "daily temperature trend")
	cmd.Flags().Float64Var(&intercept, "intercept", 27.0, "temperature before the first day")
	cmd.Flags().Float64Var(&noise, "noise", 0.8, "standard deviation of the noise")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "random seed")
	return cmd
}

package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/aouyang1/go-linreg"
	"github.com/aouyang1/go-linreg/linearmodel"

	"github.com/goccy/go-json"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

var errMissingValue = errors.New("point is missing x or y")

// pointsFile is the document layout read by fit --input. Both coordinates of every point are required.
type pointsFile struct {
	Data []struct {
		X *float64 `json:"x"`
		Y *float64 `json:"y"`
	} `json:"data"`
}

// scoresOutput prints an undefined r-squared as null
type scoresOutput struct {
	MSE  float64  `json:"mean_squared_error"`
	MAPE float64  `json:"mean_average_percent_error"`
	R2   *float64 `json:"r_squared"`
}

func newScoresOutput(s *linearmodel.Scores) scoresOutput {
	out := scoresOutput{MSE: s.MSE, MAPE: s.MAPE}
	if !math.IsNaN(s.R2) {
		out.R2 = &s.R2
	}
	return out
}

func newFitCmd(a *app) *cobra.Command {
	var (
		flags      selectorFlags
		input      string
		cpuProfile string
		scores     bool
	)
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit the selected readings and print the report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cpuProfile != "" {
				defer profile.Start(profile.CPUProfile, profile.ProfilePath(cpuProfile), profile.Quiet).Stop()
			}

			sel, method, err := flags.resolve(a.cfg)
			if err != nil {
				return err
			}

			analyzer, closeSrc, err := a.newAnalyzer(cmd.Context(), nil)
			if err != nil {
				return err
			}
			defer closeSrc()

			var m *linearmodel.Model
			if input != "" {
				points, err := readPoints(input)
				if err != nil {
					return err
				}
				m, err = analyzer.Calculate(points, method)
				if err != nil {
					return err
				}
			} else {
				m, err = analyzer.Analyze(cmd.Context(), sel, method)
				if err != nil {
					return err
				}
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(linreg.NewReport(m)); err != nil {
				return err
			}
			if scores {
				s, err := m.Scores()
				if err != nil {
					return err
				}
				return enc.Encode(newScoresOutput(s))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&input, "input", "", `fit the points of a {"data":[{"x":..,"y":..}]} file instead of the data source`)
	cmd.Flags().StringVar(&cpuProfile, "cpuprofile", "", "directory to write a cpu profile to")
	cmd.Flags().BoolVar(&scores, "scores", false, "also print the mean squared error, mean absolute percent error and r-squared")
	return cmd
}

func readPoints(path string) ([]linreg.Point, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read points, %w", err)
	}
	var doc pointsFile
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("unable to decode points in %s, %w", path, err)
	}
	points := make([]linreg.Point, 0, len(doc.Data))
	for i, p := range doc.Data {
		if p.X == nil || p.Y == nil {
			return nil, fmt.Errorf("index %d of %s, %w", i, path, errMissingValue)
		}
		points = append(points, linreg.Point{X: *p.X, Y: *p.Y})
	}
	return points, nil
}

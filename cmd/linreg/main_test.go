package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type fitOutput struct {
	Equation  string  `json:"equation"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	Method    string  `json:"method"`
	Actual    []struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"actual"`
}

func TestSimulateFitPlot(t *testing.T) {
	dir := t.TempDir()
	readings := filepath.Join(dir, "readings.json")
	t.Setenv("DATA_FILE", readings)

	_, err := run(t, "simulate", "--city", "Haifa", "--month", "3", "--year", "2024",
		"--slope", "0.5", "--intercept", "10", "--noise", "0", "--out", readings)
	require.Nil(t, err)

	out, err := run(t, "fit", "--city", "Haifa", "--month", "3", "--year", "2024", "--method", "formula")
	require.Nil(t, err)

	var res fitOutput
	require.Nil(t, json.Unmarshal([]byte(out), &res), out)
	assert.Len(t, res.Actual, 31)
	assert.InDelta(t, 0.5, res.Slope, 1e-9)
	assert.InDelta(t, 10.0, res.Intercept, 1e-9)
	assert.Equal(t, "y = 0.5x + 10.0", res.Equation)
	assert.Equal(t, "formula", res.Method)

	chart := filepath.Join(dir, "chart.html")
	_, err = run(t, "plot", "--city", "Haifa", "--month", "3", "--year", "2024", "--out", chart)
	require.Nil(t, err)
	html, err := os.ReadFile(chart)
	require.Nil(t, err)
	assert.Contains(t, string(html), "Regression")
}

func TestFitInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "points.json")
	require.Nil(t, os.WriteFile(input, []byte(`{"data":[{"x":1,"y":10},{"x":2,"y":20}]}`), 0o644))

	out, err := run(t, "fit", "--input", input)
	require.Nil(t, err)

	var res fitOutput
	require.Nil(t, json.Unmarshal([]byte(out), &res), out)
	assert.InDelta(t, 10.0, res.Slope, 1e-9)
	assert.Equal(t, "matrix", res.Method)
}

func TestReadPoints(t *testing.T) {
	testData := map[string]struct {
		doc      string
		expected int
		err      error
	}{
		"complete":  {doc: `{"data":[{"x":1,"y":10},{"x":2,"y":0}]}`, expected: 2},
		"empty":     {doc: `{"data":[]}`, expected: 0},
		"missing x": {doc: `{"data":[{"x":1,"y":10},{"y":20}]}`, err: errMissingValue},
		"missing y": {doc: `{"data":[{"x":1},{"x":2,"y":20}]}`, err: errMissingValue},
		"null y":    {doc: `{"data":[{"x":1,"y":null},{"x":2,"y":20}]}`, err: errMissingValue},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			input := filepath.Join(t.TempDir(), "points.json")
			require.Nil(t, os.WriteFile(input, []byte(td.doc), 0o644))

			points, err := readPoints(input)
			if td.err != nil {
				require.ErrorIs(t, err, td.err)
				return
			}
			require.Nil(t, err)
			assert.Len(t, points, td.expected)
		})
	}
}

func TestFitScoresConstantY(t *testing.T) {
	input := filepath.Join(t.TempDir(), "points.json")
	require.Nil(t, os.WriteFile(input, []byte(`{"data":[{"x":1,"y":0.1},{"x":2,"y":0.1},{"x":3,"y":0.1}]}`), 0o644))

	out, err := run(t, "fit", "--input", input, "--scores")
	require.Nil(t, err)

	dec := json.NewDecoder(strings.NewReader(out))
	var report map[string]any
	require.Nil(t, dec.Decode(&report), out)
	assert.Nil(t, report["r_squared"])

	var scores map[string]any
	require.Nil(t, dec.Decode(&scores), out)
	assert.Contains(t, scores, "r_squared")
	assert.Nil(t, scores["r_squared"])
	assert.InDelta(t, 0.0, scores["mean_squared_error"], 1e-12)
}

func TestFitErrors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATA_FILE", filepath.Join(dir, "missing.json"))
	incomplete := filepath.Join(dir, "incomplete.json")
	require.Nil(t, os.WriteFile(incomplete, []byte(`{"data":[{"x":1,"y":10},{"x":2}]}`), 0o644))

	testData := map[string][]string{
		"unknown method":   {"fit", "--method", "lasso"},
		"bad month":        {"fit", "--month", "13"},
		"missing file":     {"fit"},
		"bad log level":    {"fit", "--log-level", "loud"},
		"missing config":   {"fit", "--config", filepath.Join(dir, "missing.yaml")},
		"missing input":    {"fit", "--input", filepath.Join(dir, "points.json")},
		"incomplete input": {"fit", "--input", incomplete},
		"unknown command":  {"predict"},
		"simulate bad day": {"simulate", "--month", "0", "--year", "-1", "--out", "-"},
	}
	for name, args := range testData {
		t.Run(name, func(t *testing.T) {
			_, err := run(t, args...)
			assert.NotNil(t, err)
		})
	}
}

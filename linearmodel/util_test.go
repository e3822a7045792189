package linearmodel

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/aouyang1/go-linreg/dataset"

	"github.com/stretchr/testify/assert"
)

// equivalenceTol is the relative tolerance both solvers must agree within
const equivalenceTol = 1e-6

func assertRelClose(t *testing.T, expected, actual, tol float64, msg string) {
	t.Helper()
	scale := math.Max(1.0, math.Abs(expected))
	assert.LessOrEqual(t, math.Abs(expected-actual), tol*scale, "%s: expected %v, got %v", msg, expected, actual)
}

func generateNoisyLine(n int, slope, intercept, noise float64, seed uint64) ([]float64, []float64) {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	x := dataset.GenerateIndex(n)
	y := dataset.GenerateLinearY(x, slope, intercept).
		Add(dataset.GenerateNoise(n, noise, rng))
	return x, y
}

package datasource

import (
	"bytes"
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/aouyang1/go-linreg/linearmodel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateReadings(t *testing.T) {
	sel := Selector{City: "Eilat", Month: time.February, Year: 2024}
	readings := SimulateReadings(sel, 0.3, 21.0, 0.0, rand.New(rand.NewPCG(1, 2)))

	require.Len(t, readings, 2*29)
	assert.Equal(t, Reading{Date: "2024-02-01", City: "Eilat", Hour: NoonHour, Temperature: 21.3}, readings[0])
	assert.Equal(t, EveningHour, readings[1].Hour)
	assert.Equal(t, "2024-02-29", readings[len(readings)-1].Date)
}

func TestSimulatedReadingsRoundTrip(t *testing.T) {
	sel := Selector{City: "Tel Aviv", Month: time.June, Year: 2024}
	readings := SimulateReadings(sel, 0.25, 27.5, 0.4, rand.New(rand.NewPCG(3, 4)))

	var buf bytes.Buffer
	require.Nil(t, WriteReadings(&buf, readings))

	x, y, err := NewJSONFile(stringOpener(buf.String())).Fetch(context.Background(), sel)
	require.Nil(t, err)
	require.Len(t, x, 30)
	assert.Equal(t, 1.0, x[0])
	assert.Equal(t, 30.0, x[29])

	m, err := linearmodel.Fit(x, y, linearmodel.Matrix)
	require.Nil(t, err)
	assert.InDelta(t, 0.25, m.Slope(), 0.05)
	assert.InDelta(t, 27.5, m.Intercept(), 1.0)
}

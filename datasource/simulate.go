package datasource

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/aouyang1/go-linreg/dataset"

	"github.com/goccy/go-json"
)

// EveningHour is the hour of the extra reading generated for every simulated day. It is never matched
// by a selector.
const EveningHour = 18

// SimulateReadings generates a noon reading for every day of the selected month following
// slope*day + intercept with normal noise, plus a cooler evening reading per day. A nil rng uses the
// global source.
func SimulateReadings(sel Selector, slope, intercept, noise float64, rng *rand.Rand) []Reading {
	start, stop := sel.Window()
	days := int(stop.Sub(start).Hours() / 24)

	t := dataset.GenerateDays(start, days)
	x := dataset.GenerateIndex(days)
	noon := dataset.GenerateLinearY(x, slope, intercept).
		Add(dataset.GenerateNoise(days, noise, rng))
	evening := dataset.GenerateLinearY(x, slope, intercept).
		Add(dataset.GenerateConstY(days, -4.0)).
		Add(dataset.GenerateWaveY(x, 1.5, 7, 0)).
		Add(dataset.GenerateNoise(days, noise, rng))

	readings := make([]Reading, 0, 2*days)
	for i := 0; i < days; i++ {
		date := t[i].Format(time.DateOnly)
		readings = append(readings,
			Reading{Date: date, City: sel.City, Hour: NoonHour, Temperature: noon[i]},
			Reading{Date: date, City: sel.City, Hour: EveningHour, Temperature: evening[i]},
		)
	}
	return readings
}

// WriteReadings encodes readings as a readings document
func WriteReadings(w io.Writer, readings []Reading) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ReadingFile{Readings: readings})
}

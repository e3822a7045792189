package datasource

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/aouyang1/go-linreg/dataset"

	"github.com/influxdata/influxdb-client-go/v2/api"
)

// Measurement is the InfluxDB measurement holding readings tagged by city and hour with a temperature
// field
const Measurement = "temperature_readings"

// fluxQuery only references caller values through params so no selector value is spliced into the
// query text
const fluxQuery = `from(bucket: params.bucket)
  |> range(start: time(v: params.start), stop: time(v: params.stop))
  |> filter(fn: (r) => r._measurement == params.measurement and r._field == "temperature")
  |> filter(fn: (r) => r.city == params.city and r.hour == params.hour)
  |> group()
  |> sort(columns: ["_time"])`

type fluxParams struct {
	Bucket      string `json:"bucket"`
	Measurement string `json:"measurement"`
	City        string `json:"city"`
	Hour        string `json:"hour"`
	Start       string `json:"start"`
	Stop        string `json:"stop"`
}

// Influx reads temperature readings from an InfluxDB v2 bucket
type Influx struct {
	query  api.QueryAPI
	bucket string
}

// NewInflux returns a source querying bucket through query
func NewInflux(query api.QueryAPI, bucket string) *Influx {
	return &Influx{
		query:  query,
		bucket: bucket,
	}
}

// Fetch returns the noon readings of the selected city and month ordered by time
func (s *Influx) Fetch(ctx context.Context, sel Selector) ([]float64, []float64, error) {
	if err := sel.Validate(); err != nil {
		return nil, nil, err
	}

	start, stop := sel.Window()
	params := fluxParams{
		Bucket:      s.bucket,
		Measurement: Measurement,
		City:        sel.City,
		Hour:        strconv.Itoa(NoonHour),
		Start:       start.Format(time.RFC3339),
		Stop:        stop.Format(time.RFC3339),
	}

	result, err := s.query.QueryWithParams(ctx, fluxQuery, params)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to query readings for %s, %v, %w", sel, err, ErrDataUnavailable)
	}
	defer result.Close()

	ds := dataset.New()
	for result.Next() {
		record := result.Record()
		temperature, ok := record.Value().(float64)
		if !ok {
			return nil, nil, fmt.Errorf("value %v at %s is not a float, %w", record.Value(), record.Time(), ErrMalformedRecord)
		}
		ds.AppendNext(temperature)
	}
	if err := result.Err(); err != nil {
		return nil, nil, fmt.Errorf("unable to read readings for %s, %v, %w", sel, err, ErrDataUnavailable)
	}
	return ds.X, ds.Y, nil
}

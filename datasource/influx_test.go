package datasource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csvHeader = `#datatype,string,long,dateTime:RFC3339,dateTime:RFC3339,dateTime:RFC3339,%s,string,string,string,string
#group,false,false,true,true,false,false,true,true,true,true
#default,_result,,,,,,,,,
,result,table,_start,_stop,_time,_value,_field,_measurement,city,hour
`

func annotatedCSV(valueType string, values ...string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, csvHeader, valueType)
	for i, v := range values {
		fmt.Fprintf(&sb, ",,0,2024-06-01T00:00:00Z,2024-07-01T00:00:00Z,2024-06-%02dT12:00:00Z,%s,temperature,temperature_readings,Tel Aviv,12\n", i+1, v)
	}
	return sb.String()
}

type mockQueryAPI struct {
	body   string
	err    error
	query  string
	params interface{}
}

func (m *mockQueryAPI) QueryRaw(ctx context.Context, query string, dialect *domain.Dialect) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockQueryAPI) QueryRawWithParams(ctx context.Context, query string, dialect *domain.Dialect, params interface{}) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockQueryAPI) Query(ctx context.Context, query string) (*api.QueryTableResult, error) {
	return nil, errors.New("not implemented")
}

func (m *mockQueryAPI) QueryWithParams(ctx context.Context, query string, params interface{}) (*api.QueryTableResult, error) {
	m.query = query
	m.params = params
	if m.err != nil {
		return nil, m.err
	}
	return api.NewQueryTableResult(io.NopCloser(strings.NewReader(m.body))), nil
}

func TestInfluxFetch(t *testing.T) {
	q := &mockQueryAPI{body: annotatedCSV("double", "28.1", "29.4", "27.9")}
	src := NewInflux(q, "weather")

	x, y, err := src.Fetch(context.Background(), Selector{City: "Tel Aviv", Month: time.June, Year: 2024})
	require.Nil(t, err)
	assert.Equal(t, []float64{1, 2, 3}, x)
	assert.Equal(t, []float64{28.1, 29.4, 27.9}, y)

	assert.Equal(t, fluxQuery, q.query)
	assert.Equal(t, fluxParams{
		Bucket:      "weather",
		Measurement: Measurement,
		City:        "Tel Aviv",
		Hour:        "12",
		Start:       "2024-06-01T00:00:00Z",
		Stop:        "2024-07-01T00:00:00Z",
	}, q.params)
	assert.NotContains(t, q.query, "Tel Aviv")
}

func TestInfluxFetchEmpty(t *testing.T) {
	src := NewInflux(&mockQueryAPI{body: ""}, "weather")

	x, y, err := src.Fetch(context.Background(), Selector{City: "Tel Aviv", Month: time.June, Year: 2024})
	require.Nil(t, err)
	assert.Equal(t, []float64{}, x)
	assert.Equal(t, []float64{}, y)
}

func TestInfluxFetchErrors(t *testing.T) {
	sel := Selector{City: "Tel Aviv", Month: time.June, Year: 2024}

	testData := map[string]struct {
		q   *mockQueryAPI
		sel Selector
		err error
	}{
		"query failure": {
			q:   &mockQueryAPI{err: errors.New("401 unauthorized")},
			sel: sel,
			err: ErrDataUnavailable,
		},
		"string values": {
			q:   &mockQueryAPI{body: annotatedCSV("string", "warm")},
			sel: sel,
			err: ErrMalformedRecord,
		},
		"unparsable value": {
			q:   &mockQueryAPI{body: annotatedCSV("double", "warm")},
			sel: sel,
			err: ErrDataUnavailable,
		},
		"invalid selector": {
			q:   &mockQueryAPI{},
			sel: Selector{Month: time.June, Year: 2024},
			err: ErrInvalidSelector,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			x, y, err := NewInflux(td.q, "weather").Fetch(context.Background(), td.sel)
			require.ErrorIs(t, err, td.err)
			assert.Nil(t, x)
			assert.Nil(t, y)
		})
	}
}

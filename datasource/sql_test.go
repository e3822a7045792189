package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSQL(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.Nil(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQL(db), mock
}

func day(d int) time.Time {
	return time.Date(2024, time.June, d, 0, 0, 0, 0, time.UTC)
}

func TestSQLFetch(t *testing.T) {
	src, mock := newMockSQL(t)
	rows := sqlmock.NewRows([]string{"date", "hour", "temperature"}).
		AddRow(day(1), 12, 28.1).
		AddRow(day(2), 12, 29.4).
		AddRow(day(3), 12, 27.9)
	mock.ExpectQuery(temperatureQuery).
		WithArgs("Tel Aviv", 6, 2024).
		WillReturnRows(rows)

	x, y, err := src.Fetch(context.Background(), Selector{City: "Tel Aviv", Month: time.June, Year: 2024})
	require.Nil(t, err)
	assert.Equal(t, []float64{1, 2, 3}, x)
	assert.Equal(t, []float64{28.1, 29.4, 27.9}, y)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestSQLFetchNoRows(t *testing.T) {
	src, mock := newMockSQL(t)
	mock.ExpectQuery(temperatureQuery).
		WithArgs("Atlantis", 6, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"date", "hour", "temperature"}))

	x, y, err := src.Fetch(context.Background(), Selector{City: "Atlantis", Month: time.June, Year: 2024})
	require.Nil(t, err)
	assert.Equal(t, []float64{}, x)
	assert.Equal(t, []float64{}, y)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestSQLFetchBindsCityAsParameter(t *testing.T) {
	src, mock := newMockSQL(t)
	city := "x' OR '1'='1"
	mock.ExpectQuery(temperatureQuery).
		WithArgs(city, 6, 2024).
		WillReturnRows(sqlmock.NewRows([]string{"date", "hour", "temperature"}))

	_, _, err := src.Fetch(context.Background(), Selector{City: city, Month: time.June, Year: 2024})
	require.Nil(t, err)
	assert.Nil(t, mock.ExpectationsWereMet())
}

func TestSQLFetchErrors(t *testing.T) {
	sel := Selector{City: "Tel Aviv", Month: time.June, Year: 2024}

	testData := map[string]struct {
		setup func(mock sqlmock.Sqlmock)
		sel   Selector
		err   error
	}{
		"query failure": {
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(temperatureQuery).
					WithArgs("Tel Aviv", 6, 2024).
					WillReturnError(errors.New("connection refused"))
			},
			sel: sel,
			err: ErrDataUnavailable,
		},
		"bad temperature": {
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"date", "hour", "temperature"}).
					AddRow(day(1), 12, "warm")
				mock.ExpectQuery(temperatureQuery).
					WithArgs("Tel Aviv", 6, 2024).
					WillReturnRows(rows)
			},
			sel: sel,
			err: ErrMalformedRecord,
		},
		"row iteration failure": {
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"date", "hour", "temperature"}).
					AddRow(day(1), 12, 28.1).
					AddRow(day(2), 12, 29.4).
					RowError(1, errors.New("connection reset"))
				mock.ExpectQuery(temperatureQuery).
					WithArgs("Tel Aviv", 6, 2024).
					WillReturnRows(rows)
			},
			sel: sel,
			err: ErrDataUnavailable,
		},
		"invalid selector": {
			setup: func(mock sqlmock.Sqlmock) {},
			sel:   Selector{City: "Tel Aviv", Year: 2024},
			err:   ErrInvalidSelector,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			src, mock := newMockSQL(t)
			td.setup(mock)

			x, y, err := src.Fetch(context.Background(), td.sel)
			require.ErrorIs(t, err, td.err)
			assert.Nil(t, x)
			assert.Nil(t, y)
			assert.Nil(t, mock.ExpectationsWereMet())
		})
	}
}

func TestOpenMySQLBadDSN(t *testing.T) {
	_, err := OpenMySQL("not a dsn")
	assert.NotNil(t, err)
}

func TestOpenMySQLIsLazy(t *testing.T) {
	db, err := OpenMySQL("reader:secret@tcp(127.0.0.1:1)/weather")
	require.Nil(t, err)
	defer db.Close()

	stats := db.Stats()
	assert.Equal(t, 0, stats.OpenConnections)
	assert.Equal(t, 10, stats.MaxOpenConnections)
}

package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aouyang1/go-linreg/dataset"

	"github.com/go-sql-driver/mysql"
)

// temperatureQuery selects the noon readings of a city within a month. All selector values are bound
// as parameters.
const temperatureQuery = `SELECT date, hour, temperature
FROM temperature_readings
WHERE city = ?
  AND MONTH(date) = ?
  AND YEAR(date) = ?
  AND hour = 12
ORDER BY date ASC`

// SQL reads temperature readings from a relational store with a temperature_readings table
type SQL struct {
	db *sql.DB
}

// NewSQL returns a source querying db. The caller owns db and closes it.
func NewSQL(db *sql.DB) *SQL {
	return &SQL{db: db}
}

// OpenMySQL opens a MySQL connection pool from a go-sql-driver DSN, e.g.
// user:pass@tcp(localhost:3306)/weather
func OpenMySQL(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse mysql dsn, %w", err)
	}
	cfg.ParseTime = true

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create mysql connector, %w", err)
	}
	db := sql.OpenDB(connector)
	db.SetConnMaxLifetime(3 * time.Minute)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	return db, nil
}

// Fetch returns the noon readings of the selected city and month ordered by date
func (s *SQL) Fetch(ctx context.Context, sel Selector) ([]float64, []float64, error) {
	if err := sel.Validate(); err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, temperatureQuery, sel.City, int(sel.Month), sel.Year)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to query readings for %s, %v, %w", sel, err, ErrDataUnavailable)
	}
	defer rows.Close()

	ds := dataset.New()
	for rows.Next() {
		var (
			date        time.Time
			hour        int
			temperature float64
		)
		if err := rows.Scan(&date, &hour, &temperature); err != nil {
			return nil, nil, fmt.Errorf("row %d for %s, %v, %w", ds.Len()+1, sel, err, ErrMalformedRecord)
		}
		ds.AppendNext(temperature)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("unable to read readings for %s, %v, %w", sel, err, ErrDataUnavailable)
	}
	return ds.X, ds.Y, nil
}

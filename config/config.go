// Package config loads the service configuration from a YAML file with environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/aouyang1/go-linreg"
	"github.com/aouyang1/go-linreg/datasource"
	"github.com/aouyang1/go-linreg/linearmodel"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

// Data source kinds
const (
	SourceJSON   = "json"
	SourceGCS    = "gcs"
	SourceMySQL  = "mysql"
	SourceInflux = "influx"
)

// DefaultPort is the listening port when neither addr nor PORT is set
const DefaultPort = "4567"

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Fit     FitConfig     `yaml:"fit"`
	Tracing TracingConfig `yaml:"tracing"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" validate:"required"`

	// RateLimit is the steady state number of /api requests per second, 0 disables limiting
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
	Burst     int     `yaml:"burst" validate:"gte=0"`

	Gzip            bool          `yaml:"gzip"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

type DataConfig struct {
	Source   string              `yaml:"source" validate:"oneof=json gcs mysql influx"`
	Timeout  time.Duration       `yaml:"timeout" validate:"gt=0"`
	Selector datasource.Selector `yaml:"selector"`
	File     string              `yaml:"file" validate:"required_if=Source json"`
	GCS      GCSConfig           `yaml:"gcs"`
	MySQL    MySQLConfig         `yaml:"mysql"`
	Influx   InfluxConfig        `yaml:"influx"`
}

type GCSConfig struct {
	Bucket string `yaml:"bucket"`
	Object string `yaml:"object"`
}

type MySQLConfig struct {
	DSN string `yaml:"dsn"`
}

type InfluxConfig struct {
	URL    string `yaml:"url"`
	Token  string `yaml:"token"`
	Org    string `yaml:"org"`
	Bucket string `yaml:"bucket"`
}

type FitConfig struct {
	Method linearmodel.Method `yaml:"method"`
}

type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

var validate = validator.New()

// Default returns the configuration used when no file or environment overrides are provided
func Default() Config {
	opt := linreg.NewDefaultOptions()
	return Config{
		Server: ServerConfig{
			Addr:            ":" + DefaultPort,
			RateLimit:       20,
			Burst:           40,
			Gzip:            true,
			ShutdownTimeout: 10 * time.Second,
		},
		Data: DataConfig{
			Source:   SourceJSON,
			Timeout:  opt.Timeout,
			Selector: opt.Selector,
			File:     "temperature_data.json",
		},
		Fit: FitConfig{
			Method: opt.Method,
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment overrides and validates the
// result. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read the config file, %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s, %v, %w", path, err, ErrInvalidConfig)
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found through lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if port, ok := lookup("PORT"); ok && port != "" {
		c.Server.Addr = ":" + port
	}
	overrides := []struct {
		key string
		dst *string
	}{
		{"LINREG_ADDR", &c.Server.Addr},
		{"DATA_SOURCE", &c.Data.Source},
		{"DATA_FILE", &c.Data.File},
		{"MYSQL_DSN", &c.Data.MySQL.DSN},
		{"INFLUXDB_URL", &c.Data.Influx.URL},
		{"INFLUXDB_TOKEN", &c.Data.Influx.Token},
		{"INFLUXDB_ORG", &c.Data.Influx.Org},
		{"INFLUXDB_BUCKET", &c.Data.Influx.Bucket},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.key); ok && v != "" {
			*o.dst = v
		}
	}
	if v, ok := lookup("FIT_METHOD"); ok && v != "" {
		method, err := linearmodel.ParseMethod(v)
		if err != nil {
			return fmt.Errorf("FIT_METHOD, %v, %w", err, ErrInvalidConfig)
		}
		c.Fit.Method = method
	}
	return nil
}

// Validate checks field ranges and that the selected data source has its connection settings
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%v, %w", err, ErrInvalidConfig)
	}
	if err := c.Fit.Method.Valid(); err != nil {
		return fmt.Errorf("fit method, %v, %w", err, ErrInvalidConfig)
	}

	var missing string
	switch c.Data.Source {
	case SourceGCS:
		if c.Data.GCS.Bucket == "" || c.Data.GCS.Object == "" {
			missing = "gcs bucket and object"
		}
	case SourceMySQL:
		if c.Data.MySQL.DSN == "" {
			missing = "mysql dsn"
		}
	case SourceInflux:
		if c.Data.Influx.URL == "" || c.Data.Influx.Org == "" || c.Data.Influx.Bucket == "" {
			missing = "influx url, org and bucket"
		}
	}
	if missing != "" {
		return fmt.Errorf("%s source requires %s, %w", c.Data.Source, missing, ErrInvalidConfig)
	}
	return nil
}

// Options converts the data and fit sections into analysis options
func (c *Config) Options() *linreg.Options {
	opt := linreg.NewDefaultOptions()
	opt.Method = c.Fit.Method
	opt.Timeout = c.Data.Timeout
	opt.Selector = c.Data.Selector
	opt.SourceName = c.Data.Source
	return opt
}

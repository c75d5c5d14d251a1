// Package config handles loading and validating application configuration.
//
// The config file path comes from (in priority order):
//  1. the --config command-line flag (passed in by the caller),
//  2. the CONFIG_PATH environment variable.
//
// A .env file in the working directory, when present, is loaded into the
// environment first, so every env:"..." override below can live there.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Profiles select optional startup behaviour. Only ProfileProduction seeds
// the database.
const (
	ProfileProduction = "production"
	ProfileTest       = "test"
	ProfileDev        = "dev"
)

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden by the
// corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity: "dev", "staging" or "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	// Profile selects startup behaviour, see ProfileProduction.
	Profile string `yaml:"profile" env:"PROFILE" env-default:"dev" validate:"required"`

	Storage Storage `yaml:"storage"`

	HTTPServer `yaml:"http_server"`
}

// Storage selects and locates the database.
type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"sqlite" validate:"oneof=sqlite postgres"`

	// Path is the filesystem path to the SQLite .db file.
	Path string `yaml:"path" env:"STORAGE_PATH" validate:"required_if=Driver sqlite"`

	// DSN is the PostgreSQL connection URL.
	DSN string `yaml:"dsn" env:"DATABASE_URL" validate:"required_if=Driver postgres"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-default:"localhost:8082" validate:"required"`
}

// Seeds reports whether the bootstrap seeding routine runs at startup.
func (c *Config) Seeds() bool {
	return c.Profile == ProfileProduction
}

// Load reads, validates and returns the configuration at path, falling
// back to CONFIG_PATH when path is empty.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		return nil, errors.New("config.Load: config path is not set: use --config flag or CONFIG_PATH env var")
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config.Load: config file %s: %w", path, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: read %s: %w", path, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: invalid config %s: %w", path, err)
	}

	return &cfg, nil
}

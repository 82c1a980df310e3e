package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultHost and DefaultPort are the usual local development server address.
	DefaultHost            = "127.0.0.1"
	DefaultPort            = "5000"
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds process settings resolved from the environment.
type Config struct {
	Host            string
	Port            string
	Debug           bool
	ShutdownTimeout time.Duration
}

// Addr returns the listen address in host:port form.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// LookupFunc resolves a single environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads an optional .env file from the working directory and then
// resolves settings from the process environment. Variables already present
// in the environment take precedence over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a Config using lookup for every variable.
func FromLookup(lookup LookupFunc) (Config, error) {
	cfg := Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		Debug:           true,
		ShutdownTimeout: DefaultShutdownTimeout,
	}

	if v, ok := nonEmpty(lookup, "HOST"); ok {
		cfg.Host = v
	}
	if v, ok := nonEmpty(lookup, "PORT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 65535 {
			return Config{}, fmt.Errorf("invalid PORT %q", v)
		}
		cfg.Port = v
	}
	if v, ok := nonEmpty(lookup, "DEBUG"); ok {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid DEBUG %q: %w", v, err)
		}
		cfg.Debug = debug
	}
	if v, ok := nonEmpty(lookup, "SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: must be positive", v)
		}
		cfg.ShutdownTimeout = d
	}
	return cfg, nil
}

func nonEmpty(lookup LookupFunc, key string) (string, bool) {
	v, ok := lookup(key)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

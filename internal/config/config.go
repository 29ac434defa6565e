// Package config loads the server settings from the environment, reading a
// .env file first when one is present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr    string
	TLSCert string
	TLSKey  string

	// TokenKey signs session tokens; auth is disabled when it is empty.
	TokenKey             string
	OperatorLogin        string
	OperatorPasswordHash string

	// RateLimit is requests per second per client IP.
	RateLimit float64
	RateBurst int

	StaticDir    string
	BatchWorkers int
}

// Load reads .env files (missing ones are ignored) and then the process
// environment.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function.
func FromEnv(getenv func(string) string) (*Config, error) {
	c := &Config{
		Addr:                 getenv("ADDR"),
		TLSCert:              getenv("TLS_CERT"),
		TLSKey:               getenv("TLS_KEY"),
		TokenKey:             getenv("TOKEN_KEY"),
		OperatorLogin:        getenv("OPERATOR_LOGIN"),
		OperatorPasswordHash: getenv("OPERATOR_PASSWORD_HASH"),
		StaticDir:            getenv("STATIC_DIR"),
	}
	var err error
	if v := getenv("RATE_LIMIT"); v != "" {
		if c.RateLimit, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("RATE_LIMIT: %w", err)
		}
	}
	if v := getenv("RATE_BURST"); v != "" {
		if c.RateBurst, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("RATE_BURST: %w", err)
		}
	}
	if v := getenv("BATCH_WORKERS"); v != "" {
		if c.BatchWorkers, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("BATCH_WORKERS: %w", err)
		}
	}
	c.applyDefaults()
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Addr == "" {
		if c.TLS() {
			c.Addr = ":443"
		} else {
			c.Addr = ":8080"
		}
	}
	if c.RateLimit <= 0 {
		c.RateLimit = 5
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 10
	}
	if c.StaticDir == "" {
		c.StaticDir = "./static"
	}
}

func (c *Config) validate() error {
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	if c.AuthEnabled() && (c.OperatorLogin == "" || c.OperatorPasswordHash == "") {
		return errors.New("TOKEN_KEY requires OPERATOR_LOGIN and OPERATOR_PASSWORD_HASH")
	}
	return nil
}

// TLS reports whether the server should listen with TLS.
func (c *Config) TLS() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func (c *Config) AuthEnabled() bool {
	return c.TokenKey != ""
}

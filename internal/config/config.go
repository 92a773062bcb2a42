// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package config loads and stores CLI configuration in the XDG config dir.
// Values are layered: defaults, then config.json, then a .env file, then
// SENTISCOPE_* environment variables. Command flags override all of them.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sentiscope/cli/internal/backend"
	"sentiscope/cli/internal/xdg"
)

// Environment variables read by ApplyEnv.
const (
	EnvServerURL        = "SENTISCOPE_SERVER_URL"
	EnvLogLevel         = "SENTISCOPE_LOG_LEVEL"
	EnvRequestTimeout   = "SENTISCOPE_REQUEST_TIMEOUT"
	EnvCancelSuperseded = "SENTISCOPE_CANCEL_SUPERSEDED"
)

// DefaultServerURL is where the analysis service listens in development.
const DefaultServerURL = "http://localhost:5000"

// Config holds CLI settings.
type Config struct {
	ServerURL string `json:"server_url"`
	LogLevel  string `json:"log_level"`
	// RequestTimeout is a Go duration such as "30s". Empty means no timeout.
	RequestTimeout   string            `json:"request_timeout,omitempty"`
	CancelSuperseded bool              `json:"cancel_superseded"`
	Endpoints        backend.Endpoints `json:"endpoints"`
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Config {
	return Config{
		ServerURL: DefaultServerURL,
		LogLevel:  "info",
		Endpoints: backend.DefaultEndpoints(),
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration; missing file returns defaults. Fields absent from
// the file keep their defaults.
func Load() (Config, error) {
	c := Defaults()
	p, err := Path()
	if err != nil {
		return c, err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return c, nil
		}
		return c, err
	}
	if err := json.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse %s: %w", p, err)
	}
	c.fillDefaults()
	return c, nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are skipped. With no arguments it reads ./.env.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides c with SENTISCOPE_* environment variables.
func ApplyEnv(c Config) (Config, error) {
	if v, ok := os.LookupEnv(EnvServerURL); ok && v != "" {
		c.ServerURL = v
	}
	if v, ok := os.LookupEnv(EnvLogLevel); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := os.LookupEnv(EnvRequestTimeout); ok {
		c.RequestTimeout = v
	}
	if v, ok := os.LookupEnv(EnvCancelSuperseded); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvCancelSuperseded, err)
		}
		c.CancelSuperseded = b
	}
	return c, c.Validate()
}

// Resolve loads .env, the config file and the environment, in that order of precedence.
func Resolve() (Config, error) {
	if err := LoadDotEnv(); err != nil {
		return Defaults(), err
	}
	c, err := Load()
	if err != nil {
		return c, err
	}
	return ApplyEnv(c)
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.ServerURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server url %q: want http(s)://host[:port]", c.ServerURL)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	return nil
}

// Timeout parses RequestTimeout. Empty or zero means no timeout.
func (c Config) Timeout() (time.Duration, error) {
	if strings.TrimSpace(c.RequestTimeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid request timeout %q: %w", c.RequestTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid request timeout %q: must not be negative", c.RequestTimeout)
	}
	return d, nil
}

// Set assigns a setting by its JSON key, as used by `config set`.
func (c *Config) Set(key, value string) error {
	switch key {
	case "server_url":
		c.ServerURL = value
	case "log_level":
		c.LogLevel = value
	case "request_timeout":
		c.RequestTimeout = value
	case "cancel_superseded":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cancel_superseded: %w", err)
		}
		c.CancelSuperseded = b
	case "endpoints.analyze":
		c.Endpoints.Analyze = value
	case "endpoints.users":
		c.Endpoints.Users = value
	default:
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(Keys(), ", "))
	}
	return c.Validate()
}

// Fields returns every setting as key/value pairs sorted by key.
func (c Config) Fields() [][2]string {
	m := map[string]string{
		"server_url":        c.ServerURL,
		"log_level":         c.LogLevel,
		"request_timeout":   c.RequestTimeout,
		"cancel_superseded": strconv.FormatBool(c.CancelSuperseded),
		"endpoints.analyze": c.Endpoints.Analyze,
		"endpoints.users":   c.Endpoints.Users,
	}
	out := make([][2]string, 0, len(m))
	for _, k := range Keys() {
		out = append(out, [2]string{k, m[k]})
	}
	return out
}

// Keys lists the settings accepted by Set.
func Keys() []string {
	keys := []string{"server_url", "log_level", "request_timeout", "cancel_superseded", "endpoints.analyze", "endpoints.users"}
	sort.Strings(keys)
	return keys
}

func (c *Config) fillDefaults() {
	d := Defaults()
	if c.ServerURL == "" {
		c.ServerURL = d.ServerURL
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Endpoints.Analyze == "" {
		c.Endpoints.Analyze = d.Endpoints.Analyze
	}
	if c.Endpoints.Users == "" {
		c.Endpoints.Users = d.Endpoints.Users
	}
}

// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package server

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixture is one canned analysis response.
type Fixture struct {
	// Delay holds the response back, e.g. "2s".
	Delay time.Duration `yaml:"delay"`
	// Status overrides the HTTP status. Zero means 200.
	Status int `yaml:"status"`
	// Response is written as the JSON body.
	Response map[string]any `yaml:"response"`
}

// Fixtures is the content of a fixture file.
type Fixtures struct {
	Default *Fixture           `yaml:"default"`
	Queries map[string]Fixture `yaml:"queries"`
	Users   []any              `yaml:"users"`
}

// DefaultFixtures returns the built-in fixture set.
func DefaultFixtures() Fixtures {
	fx, err := ParseFixtures(defaultFixtures)
	if err != nil {
		panic(fmt.Sprintf("built-in fixtures: %v", err))
	}
	return fx
}

// LoadFixtures reads a YAML fixture file.
func LoadFixtures(path string) (Fixtures, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Fixtures{}, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseFixtures(b)
}

// ParseFixtures decodes YAML fixtures. Query keys are normalized for lookup.
func ParseFixtures(b []byte) (Fixtures, error) {
	var raw Fixtures
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}
	fx := Fixtures{Default: raw.Default, Users: raw.Users, Queries: make(map[string]Fixture, len(raw.Queries))}
	for q, f := range raw.Queries {
		if f.Delay < 0 {
			return Fixtures{}, fmt.Errorf("fixture %q: negative delay", q)
		}
		fx.Queries[normalizeQuery(q)] = f
	}
	return fx, nil
}

// Lookup returns the fixture answering q.
func (fx Fixtures) Lookup(q string) (Fixture, bool) {
	if f, ok := fx.Queries[normalizeQuery(q)]; ok {
		return f, true
	}
	if fx.Default != nil {
		return *fx.Default, true
	}
	return Fixture{}, false
}

func normalizeQuery(q string) string {
	return strings.ToLower(strings.TrimSpace(q))
}

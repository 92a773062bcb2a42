// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package sentiment defines the value types shared by the search pipeline:
// the submitted query, the aggregate statistics returned by the analysis
// service, and the result state consumed by views.
package sentiment

import (
	"strings"

	apperrors "sentiscope/cli/internal/errors"
)

// FailureMessage is the only text shown to users when a search fails,
// whatever the underlying cause.
const FailureMessage = "An error occurred while searching."

// Query is a non-empty, trimmed search text. Two queries with equal text are equal.
type Query struct {
	text string
}

// NewQuery trims raw and returns an EmptyQuery error when nothing is left.
func NewQuery(raw string) (Query, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Query{}, apperrors.New(apperrors.EmptyQuery, "search query is empty")
	}
	return Query{text: text}, nil
}

// Text returns the trimmed query text.
func (q Query) Text() string { return q.text }

func (q Query) String() string { return q.text }

// Aggregate holds the summarized sentiment statistics for one query.
// The percentages are reported independently and need not sum to 100.
type Aggregate struct {
	Total    int     `json:"total"`
	Positive float64 `json:"positive_percentage"`
	Negative float64 `json:"negative_percentage"`
	Neutral  float64 `json:"neutral_percentage"`
}

// Result is a successful analysis: the service message plus its aggregate.
type Result struct {
	Message   string    `json:"message"`
	Aggregate Aggregate `json:"aggregate"`
}

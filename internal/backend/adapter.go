// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides interfaces and implementations for communicating with the
// sentiment-analysis service. It defines the API contract for query analysis and the
// user listing, and includes an HTTP/JSON implementation.
package backend

import (
	"context"

	"sentiscope/cli/internal/sentiment"
)

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Analyze sends the query to the analysis endpoint and returns the normalized result.
	// Every failure carries an internal/errors kind: TransportFailure or MalformedResponse.
	Analyze(ctx context.Context, q sentiment.Query) (sentiment.Result, error)
	// ListUsers returns the raw elements of the users listing.
	ListUsers(ctx context.Context) ([]any, error)
}

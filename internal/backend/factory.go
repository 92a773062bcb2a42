// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

// Endpoints contains REST API endpoint paths.
type Endpoints struct {
	Analyze string `json:"analyze"` // e.g., "/api/variable"
	Users   string `json:"users"`   // e.g., "/api/users"
}

// DefaultEndpoints returns the paths served by the analysis service.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Analyze: "/api/variable",
		Users:   "/api/users",
	}
}

// withDefaults fills empty paths from DefaultEndpoints.
func (e Endpoints) withDefaults() Endpoints {
	d := DefaultEndpoints()
	if e.Analyze == "" {
		e.Analyze = d.Analyze
	}
	if e.Users == "" {
		e.Users = d.Users
	}
	return e
}

// New creates a backend API implementation for the given base URL and endpoints.
// Returns HTTP client (real backend).
func New(baseURL string, endpoints Endpoints, opts ...Option) *HTTP {
	return newHTTP(baseURL, endpoints, opts...)
}

// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	apperrors "sentiscope/cli/internal/errors"
)

// ListUsers calls GET /api/users and returns the elements of the "users" array.
// Elements are returned as decoded, without assuming a shape. A body without a
// users array yields an empty slice.
func (h *HTTP) ListUsers(ctx context.Context) ([]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+h.endpoints.Users, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TransportFailure, "create request", err)
	}
	h.setStandardHeaders(req, uuid.NewString())

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.TransportFailure, "list users request failed", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, apperrors.Wrap(apperrors.TransportFailure, "list users request rejected", err)
	}

	// Be liberal in what we accept: decode into a map first
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, apperrors.Wrap(apperrors.MalformedResponse, "decode users", err)
	}

	users, _ := raw["users"].([]any)
	if users == nil {
		users = []any{}
	}
	return users, nil
}

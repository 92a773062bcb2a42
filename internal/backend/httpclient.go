package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "sentiscope/cli/internal/errors"
	"sentiscope/cli/internal/httperrors"
	"sentiscope/cli/internal/sentiment"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics.
const maxErrorBody = 512

// HTTP implements API client over REST endpoints.
// It performs no retries; each call resolves or fails exactly once.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests (e.g., "http://localhost:5000")
	baseURL string
	// endpoints contains the URL paths for the API endpoints
	endpoints Endpoints
	// client is the underlying HTTP client; it has no timeout unless WithTimeout is used
	client *http.Client
	// timeout is applied to a copy of client once all options have run
	timeout time.Duration
	// userAgent is sent with every request
	userAgent string
	log       *zap.Logger
}

var _ API = (*HTTP)(nil)

// Option configures the HTTP client.
type Option func(*HTTP)

// WithTimeout bounds every request. Zero means no client-side timeout.
func WithTimeout(d time.Duration) Option {
	return func(h *HTTP) { h.timeout = d }
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTP) {
		if c != nil {
			h.client = c
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(h *HTTP) {
		if ua != "" {
			h.userAgent = ua
		}
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *HTTP) {
		if l != nil {
			h.log = l
		}
	}
}

// newHTTP creates a new HTTP client with the given base URL and endpoints.
func newHTTP(baseURL string, endpoints Endpoints, opts ...Option) *HTTP {
	h := &HTTP{
		baseURL:   strings.TrimRight(baseURL, "/"),
		endpoints: endpoints.withDefaults(),
		client:    &http.Client{},
		userAgent: "sentiscope-cli",
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.timeout > 0 {
		c := *h.client
		c.Timeout = h.timeout
		h.client = &c
	}
	return h
}

// analyzeRequest is the body of POST /api/variable.
type analyzeRequest struct {
	SearchQuery string `json:"searchQuery"`
}

// analyzeResponse mirrors the analysis payload. Every field is optional on the wire.
type analyzeResponse struct {
	Message  *string  `json:"message"`
	Total    *float64 `json:"total"`
	Positive *float64 `json:"positive_percentage"`
	Negative *float64 `json:"negative_percentage"`
	Neutral  *float64 `json:"neutral_percentage"`
}

// Analyze calls POST /api/variable with { searchQuery } and returns the normalized aggregate.
// Connection errors and non-2xx statuses are TransportFailure; an unparsable body or a body
// without a message is MalformedResponse. Absent numeric fields become 0.
func (h *HTTP) Analyze(ctx context.Context, q sentiment.Query) (sentiment.Result, error) {
	payload, err := json.Marshal(analyzeRequest{SearchQuery: q.Text()})
	if err != nil {
		return sentiment.Result{}, apperrors.Wrap(apperrors.TransportFailure, "encode request", err)
	}

	requestID := uuid.NewString()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+h.endpoints.Analyze, bytes.NewReader(payload))
	if err != nil {
		return sentiment.Result{}, apperrors.Wrap(apperrors.TransportFailure, "create request", err)
	}
	h.setStandardHeaders(req, requestID)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		return sentiment.Result{}, apperrors.Wrap(apperrors.TransportFailure, "analyze request failed", err)
	}
	defer resp.Body.Close()

	h.log.Debug("analysis response",
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if err := checkStatus(resp); err != nil {
		return sentiment.Result{}, apperrors.Wrap(apperrors.TransportFailure, "analyze request rejected", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return sentiment.Result{}, apperrors.Wrap(apperrors.TransportFailure, "read response", err)
	}

	var out analyzeResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return sentiment.Result{}, apperrors.Wrap(apperrors.MalformedResponse, "decode response", err)
	}
	if out.Message == nil {
		return sentiment.Result{}, apperrors.New(apperrors.MalformedResponse, "response has no message")
	}

	return sentiment.Result{
		Message: *out.Message,
		Aggregate: sentiment.Normalize(sentiment.RawAggregate{
			Total:    out.Total,
			Positive: out.Positive,
			Negative: out.Negative,
			Neutral:  out.Neutral,
		}),
	}, nil
}

// setStandardHeaders sets headers shared by every request.
func (h *HTTP) setStandardHeaders(req *http.Request, requestID string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("X-Request-ID", requestID)
}

// checkStatus returns a *httperrors.StatusError for non-2xx responses.
// The error body is kept for logs only and never interpreted.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &httperrors.StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
}

// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors classifies HTTP and network failures for diagnostics.
// The classification is attached to log entries only; users always see the
// same generic search failure message.
package httperrors

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strconv"
	"strings"
	"syscall"

	apperrors "sentiscope/cli/internal/errors"
)

// Cause is a coarse diagnostic category for a failed request.
type Cause string

const (
	CauseTimeout           Cause = "timeout"
	CauseCanceled          Cause = "canceled"
	CauseDNS               Cause = "dns"
	CauseConnectionRefused Cause = "connection_refused"
	CauseTLS               Cause = "tls"
	CauseServerError       Cause = "server_error"
	CauseClientError       Cause = "client_error"
	CauseMalformed         Cause = "malformed_response"
	CauseUnknown           Cause = "unknown"
)

// StatusError reports a non-success HTTP status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return "unexpected status " + strconv.Itoa(e.Code)
	}
	return "unexpected status " + strconv.Itoa(e.Code) + ": " + e.Body
}

// Classify converts technical HTTP/network errors into a diagnostic cause.
// It detects common error types (timeout, DNS, connection refused, TLS, status codes)
// and falls back to CauseUnknown.
func Classify(err error) Cause {
	if err == nil {
		return CauseUnknown
	}

	if apperrors.KindOf(err) == apperrors.MalformedResponse {
		return CauseMalformed
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.Code >= 500 {
			return CauseServerError
		}
		return CauseClientError
	}

	if errors.Is(err, context.Canceled) {
		return CauseCanceled
	}
	if isTimeoutError(err) {
		return CauseTimeout
	}
	if isDNSError(err) {
		return CauseDNS
	}
	if isConnectionRefusedError(err) {
		return CauseConnectionRefused
	}
	if isSSLError(err) {
		return CauseTLS
	}
	return CauseUnknown
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	errStr := strings.ToLower(err.Error())
	if strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded") {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isSSLError checks if the error is an SSL/TLS error.
func isSSLError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// ExtractHostFromURL extracts the hostname from a URL for log messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "server"
	}
	return u.Host
}

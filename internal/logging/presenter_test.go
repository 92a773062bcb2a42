// Copyright (c) 2025 Sentiscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

package logging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	apperrors "sentiscope/cli/internal/errors"
	"sentiscope/cli/internal/httperrors"
)

func TestPresentError(t *testing.T) {
	assert.Empty(t, PresentError("ctx", nil))
	assert.Equal(t, "load config: bad", PresentError("load config", errors.New("bad")))
	assert.Equal(t, `Post "http://*:*@h/api": EOF`, PresentError("", errors.New(`Post "http://u:p@h/api": EOF`)))
}

func TestFormatRequestError(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "server error",
			err:  apperrors.Wrap(apperrors.TransportFailure, "rejected", &httperrors.StatusError{Code: 500}),
			want: "internal error",
		},
		{
			name: "timeout",
			err:  apperrors.Wrap(apperrors.TransportFailure, "failed", context.DeadlineExceeded),
			want: "did not answer in time",
		},
		{
			name: "malformed",
			err:  apperrors.New(apperrors.MalformedResponse, "response has no message"),
			want: "could not be read",
		},
		{
			name: "unknown",
			err:  errors.New("weird"),
			want: "could not be completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := FormatRequestError("localhost:5000", tt.err)
			assert.Contains(t, out, "Request Failed")
			assert.Contains(t, out, tt.want)
			assert.Contains(t, out, "Technical details:")
		})
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"WARN":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dashboard.log")

	log, err := NewFile("warn", false, path)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown")
	_ = log.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "hidden")
	assert.Contains(t, string(b), "shown")

	log, err = NewFile("warn", true, path)
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = New("nope", false)
	assert.Error(t, err)
}

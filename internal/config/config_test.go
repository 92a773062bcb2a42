package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{EnvServerURL, EnvLogLevel, EnvRequestTimeout, EnvCancelSuperseded} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	return dir
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	isolate(t)

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Defaults(), c)
}

func TestSaveAndLoad(t *testing.T) {
	dir := isolate(t)

	want := Defaults()
	want.ServerURL = "https://sentiment.example.com"
	want.RequestTimeout = "15s"
	want.CancelSuperseded = true
	require.NoError(t, Save(want))

	info, err := os.Stat(filepath.Join(dir, "sentiscope", "config.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadFillsMissingFields(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sentiscope"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sentiscope", "config.json"), []byte(`{"log_level":"debug"}`), 0o600))

	c, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, DefaultServerURL, c.ServerURL)
	assert.Equal(t, "/api/variable", c.Endpoints.Analyze)
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		check   func(t *testing.T, c Config)
		wantErr bool
	}{
		{
			name: "overrides",
			env: map[string]string{
				EnvServerURL:        "http://10.0.0.5:8080",
				EnvLogLevel:         "warn",
				EnvRequestTimeout:   "2s",
				EnvCancelSuperseded: "true",
			},
			check: func(t *testing.T, c Config) {
				assert.Equal(t, "http://10.0.0.5:8080", c.ServerURL)
				assert.Equal(t, "warn", c.LogLevel)
				d, err := c.Timeout()
				require.NoError(t, err)
				assert.Equal(t, 2*time.Second, d)
				assert.True(t, c.CancelSuperseded)
			},
		},
		{
			name:    "bad bool",
			env:     map[string]string{EnvCancelSuperseded: "sometimes"},
			wantErr: true,
		},
		{
			name:    "bad timeout",
			env:     map[string]string{EnvRequestTimeout: "soon"},
			wantErr: true,
		},
		{
			name:    "bad url",
			env:     map[string]string{EnvServerURL: "localhost:5000"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			c, err := ApplyEnv(Defaults())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, c)
		})
	}
}

func TestLoadDotEnvDoesNotOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SENTISCOPE_LOG_LEVEL=debug\nSENTISCOPE_SERVER_URL=http://from-dotenv:5000\n"), 0o600))
	t.Setenv(EnvServerURL, "http://from-env:5000")
	t.Cleanup(func() { os.Unsetenv(EnvLogLevel) })

	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "debug", os.Getenv(EnvLogLevel))
	assert.Equal(t, "http://from-env:5000", os.Getenv(EnvServerURL))
}

func TestTimeout(t *testing.T) {
	for in, want := range map[string]time.Duration{"": 0, "0s": 0, "1m": time.Minute, "250ms": 250 * time.Millisecond} {
		d, err := Config{RequestTimeout: in}.Timeout()
		require.NoError(t, err, in)
		assert.Equal(t, want, d, in)
	}
	_, err := Config{RequestTimeout: "-1s"}.Timeout()
	assert.Error(t, err)
}

func TestSet(t *testing.T) {
	c := Defaults()
	require.NoError(t, c.Set("server_url", "https://api.example.com"))
	require.NoError(t, c.Set("cancel_superseded", "1"))
	require.NoError(t, c.Set("endpoints.analyze", "/v2/analyze"))
	assert.Equal(t, "https://api.example.com", c.ServerURL)
	assert.True(t, c.CancelSuperseded)
	assert.Equal(t, "/v2/analyze", c.Endpoints.Analyze)

	assert.Error(t, c.Set("color", "blue"))
	assert.Error(t, c.Set("request_timeout", "forever"))
}

func TestFieldsCoversKeys(t *testing.T) {
	fields := Defaults().Fields()
	require.Len(t, fields, len(Keys()))
	for i, k := range Keys() {
		assert.Equal(t, k, fields[i][0])
	}
}

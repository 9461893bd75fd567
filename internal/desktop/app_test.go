package desktop

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/workix/desktop/pkg/client"
	"github.com/workix/desktop/pkg/models"
)

type stubBackend struct {
	value any
	err   error
	calls int
}

func (s *stubBackend) Do(ctx context.Context, endpoint, method string, body any) (any, error) {
	s.calls++
	return s.value, s.err
}

func TestGetAppVersion(t *testing.T) {
	assert.Equal(t, "0.1.0", New(&stubBackend{}).GetAppVersion())
	assert.Equal(t, "1.2.3", New(&stubBackend{}, WithVersion("1.2.3")).GetAppVersion())
	assert.Equal(t, "0.1.0", New(&stubBackend{}, WithVersion("")).GetAppVersion())
}

func TestGetAppInfo(t *testing.T) {
	env := New(&stubBackend{}, WithVersion("2.0.0")).GetAppInfo()

	require.True(t, env.Success)
	assert.Empty(t, env.Error)
	assert.Equal(t, models.AppInfo{
		Name:        "Workix Desktop",
		Version:     "2.0.0",
		Description: "EPC Service Management Platform",
		Platform:    runtime.GOOS,
		Arch:        runtime.GOARCH,
	}, env.Data)
}

func TestGetSystemInfo(t *testing.T) {
	env := New(&stubBackend{}).GetSystemInfo()

	require.True(t, env.Success)
	info, ok := env.Data.(models.SystemInfo)
	require.True(t, ok)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
	assert.Contains(t, []string{"unix", "windows", "wasm"}, info.Family)
}

func TestOSFamily(t *testing.T) {
	tests := map[string]string{
		"linux":   "unix",
		"darwin":  "unix",
		"freebsd": "unix",
		"windows": "windows",
		"js":      "wasm",
		"wasip1":  "wasm",
	}
	for goos, want := range tests {
		assert.Equal(t, want, osFamily(goos), goos)
	}
}

func TestCallBackendAPIEnvelopes(t *testing.T) {
	tests := []struct {
		name    string
		backend *stubBackend
		want    models.Envelope
	}{
		{
			name:    "success",
			backend: &stubBackend{value: map[string]any{"id": "1"}},
			want:    models.Envelope{Success: true, Data: map[string]any{"id": "1"}},
		},
		{
			name:    "invalid method",
			backend: &stubBackend{err: client.ErrInvalidMethod},
			want:    models.Envelope{Error: "Invalid HTTP method"},
		},
		{
			name:    "transport",
			backend: &stubBackend{err: &client.TransportError{Err: errors.New("connection refused")}},
			want:    models.Envelope{Error: "API call failed: connection refused"},
		},
		{
			name:    "decode",
			backend: &stubBackend{err: &client.DecodeError{StatusCode: 200, Err: errors.New("unexpected EOF")}},
			want:    models.Envelope{Error: "Failed to parse response: unexpected EOF"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := New(tt.backend)
			got := app.CallBackendAPI(context.Background(), "orders", "GET", nil)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, 1, tt.backend.calls)
		})
	}
}

func TestCallBackendAPIMetrics(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	c, err := client.New(srv.URL+"/api", client.WithHTTPClient(&http.Client{
		Transport: m.InstrumentTransport(nil),
	}))
	require.NoError(t, err)
	app := New(c, WithMetrics(m))

	ctx := context.Background()
	assert.True(t, app.CallBackendAPI(ctx, "orders", "get", nil).Success)
	assert.True(t, app.CallBackendAPI(ctx, "orders", "POST", map[string]any{"a": 1}).Success)
	assert.False(t, app.CallBackendAPI(ctx, "orders", "PATCH", nil).Success)
	assert.False(t, app.CallBackendAPI(ctx, "orders", "whatever", nil).Success)

	assert.EqualValues(t, 2, hits.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.callsTotal.WithLabelValues("GET", client.OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.callsTotal.WithLabelValues("POST", client.OutcomeSuccess)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.callsTotal.WithLabelValues("invalid", client.OutcomeInvalidMethod)))
	assert.Equal(t, 2, testutil.CollectAndCount(m.responses), "one response series per method")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.responses.WithLabelValues("200", "get")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.responses.WithLabelValues("200", "post")))
}

func TestLogMessageRouting(t *testing.T) {
	tests := []struct {
		level      string
		wantOut    string
		wantErrOut string
	}{
		{level: "error", wantErrOut: "[ERROR] disk full\n"},
		{level: "ERROR", wantErrOut: "[ERROR] disk full\n"},
		{level: "warn", wantOut: "[WARN] disk full\n"},
		{level: "Warn", wantOut: "[WARN] disk full\n"},
		{level: "info", wantOut: "[INFO] disk full\n"},
		{level: "debug", wantOut: "[DEBUG] disk full\n"},
		{level: "trace", wantOut: "[DEBUG] disk full\n"},
		{level: "warning", wantOut: "[DEBUG] disk full\n"},
		{level: "", wantOut: "[DEBUG] disk full\n"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var out, errOut bytes.Buffer
			app := New(&stubBackend{}, WithLogSink(NewLogSink(&out, &errOut)))

			app.LogMessage(tt.level, "disk full")

			assert.Equal(t, tt.wantOut, out.String())
			assert.Equal(t, tt.wantErrOut, errOut.String())
		})
	}
}

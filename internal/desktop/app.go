// Package desktop implements the commands the desktop front-end invokes on
// its native host.
package desktop

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"

	"github.com/workix/desktop/pkg/client"
	"github.com/workix/desktop/pkg/models"
)

var log = logging.Logger("desktop")

const (
	AppName        = "Workix Desktop"
	AppDescription = "EPC Service Management Platform"
)

// Version is the application version reported to the front-end.
var Version = "0.1.0"

// Backend is the proxy the App forwards call_backend_api to.
type Backend interface {
	Do(ctx context.Context, endpoint, method string, body any) (any, error)
}

// App holds the host side of the front-end commands. Its methods are safe
// for concurrent use.
type App struct {
	version string
	backend Backend
	sink    *LogSink
	metrics *Metrics
}

type Option func(*App)

// WithVersion overrides the reported application version.
func WithVersion(version string) Option {
	return func(a *App) {
		if version != "" {
			a.version = version
		}
	}
}

// WithLogSink routes LogMessage to sink instead of the process streams.
func WithLogSink(sink *LogSink) Option {
	return func(a *App) {
		a.sink = sink
	}
}

// WithMetrics records proxy outcomes on m.
func WithMetrics(m *Metrics) Option {
	return func(a *App) {
		a.metrics = m
	}
}

// New creates the command surface around backend.
func New(backend Backend, opts ...Option) *App {
	a := &App{
		version: Version,
		backend: backend,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.sink == nil {
		a.sink = NewStdLogSink()
	}
	return a
}

// GetAppVersion returns the application version string.
func (a *App) GetAppVersion() string {
	return a.version
}

// GetAppInfo returns the static application descriptor.
func (a *App) GetAppInfo() models.Envelope {
	return models.Success(models.AppInfo{
		Name:        AppName,
		Version:     a.version,
		Description: AppDescription,
		Platform:    runtime.GOOS,
		Arch:        runtime.GOARCH,
	})
}

// GetSystemInfo returns the operating system descriptor.
func (a *App) GetSystemInfo() models.Envelope {
	return models.Success(models.SystemInfo{
		OS:     runtime.GOOS,
		Arch:   runtime.GOARCH,
		Family: osFamily(runtime.GOOS),
	})
}

// CallBackendAPI forwards one request to the backend API and returns the
// outcome as an envelope.
func (a *App) CallBackendAPI(ctx context.Context, endpoint, method string, body any) models.Envelope {
	callID := uuid.NewString()
	start := time.Now()

	value, err := a.backend.Do(ctx, endpoint, method, body)

	outcome := client.Outcome(err)
	elapsed := time.Since(start)
	if a.metrics != nil {
		a.metrics.observeCall(method, outcome, elapsed)
	}

	if err != nil {
		log.Warnw("Backend call failed",
			"call_id", callID,
			"endpoint", endpoint,
			"method", method,
			"outcome", outcome,
			"error", err)
	} else {
		log.Debugw("Backend call succeeded",
			"call_id", callID,
			"endpoint", endpoint,
			"method", method,
			"duration", elapsed)
	}

	return client.Envelope(value, err)
}

// LogMessage writes a front-end log line to the host's output streams.
func (a *App) LogMessage(level, message string) {
	a.sink.Log(level, message)
}

func osFamily(goos string) string {
	switch goos {
	case "windows":
		return "windows"
	case "js", "wasip1":
		return "wasm"
	default:
		return "unix"
	}
}

package providers

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"

	"github.com/workix/desktop/internal/config"
	"github.com/workix/desktop/internal/desktop"
	"github.com/workix/desktop/internal/handlers"
	"github.com/workix/desktop/internal/server"
	"github.com/workix/desktop/pkg/client"
)

// Module wires the bridge: metrics, backend client, desktop app, handlers
// and server. The caller supplies *config.Config.
var Module = fx.Options(
	fx.Provide(
		ProvideRegistry,
		desktop.NewMetrics,
		ProvideClient,
		ProvideApp,
		handlers.NewHandlers,
		server.New,
	),
	fx.Invoke(server.Start),
)

type RegistryResult struct {
	fx.Out
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// ProvideRegistry creates the registry exposed on /metrics.
func ProvideRegistry() RegistryResult {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return RegistryResult{
		Registerer: reg,
		Gatherer:   reg,
	}
}

type ClientParams struct {
	fx.In
	Config  *config.Config
	Metrics *desktop.Metrics
}

// ProvideClient creates the backend proxy with an instrumented transport.
func ProvideClient(params ClientParams) (*client.Client, error) {
	backend := params.Config.Backend
	c, err := client.New(backend.BaseURL,
		client.WithHTTPClient(&http.Client{
			Transport: params.Metrics.InstrumentTransport(http.DefaultTransport),
		}),
		client.WithTimeout(backend.Timeout),
		client.WithUserAgent(backend.UserAgent),
	)
	if err != nil {
		return nil, fmt.Errorf("creating backend client: %w", err)
	}
	return c, nil
}

type AppParams struct {
	fx.In
	Client  *client.Client
	Metrics *desktop.Metrics
	Sink    *desktop.LogSink `optional:"true"`
}

// ProvideApp creates the desktop command surface.
func ProvideApp(params AppParams) *desktop.App {
	opts := []desktop.Option{desktop.WithMetrics(params.Metrics)}
	if params.Sink != nil {
		opts = append(opts, desktop.WithLogSink(params.Sink))
	}
	return desktop.New(params.Client, opts...)
}

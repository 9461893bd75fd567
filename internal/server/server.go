package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
	"golang.org/x/time/rate"

	"github.com/workix/desktop/internal/api"
	"github.com/workix/desktop/internal/config"
	"github.com/workix/desktop/internal/handlers"
)

var log = logging.Logger("server")

// Server represents the invoke bridge the web view talks to
type Server struct {
	echo   *echo.Echo
	config config.BridgeConfig
}

// New creates a new bridge server with the provided configuration
func New(cfg *config.Config, h *handlers.Handlers, gatherer prometheus.Gatherer) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Configure middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			if v.Error != nil {
				log.Warnw("Request failed",
					"request_id", v.RequestID,
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"error", v.Error)
				return nil
			}
			log.Debugw("Request served",
				"request_id", v.RequestID,
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Bridge.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	}))

	// Configure server timeouts
	e.Server.ReadTimeout = cfg.Bridge.ReadTimeout
	e.Server.ReadHeaderTimeout = cfg.Bridge.ReadTimeout
	e.Server.WriteTimeout = cfg.Bridge.WriteTimeout

	var invokeMiddleware []echo.MiddlewareFunc
	if cfg.Bridge.RateLimit > 0 {
		invokeMiddleware = append(invokeMiddleware, rateLimiter(cfg.Bridge.RateLimit))
	}

	api.RegisterRoutes(e, h, gatherer, invokeMiddleware...)

	return &Server{
		echo:   e,
		config: cfg.Bridge,
	}, nil
}

// rateLimiter allows perSecond sustained invocations per caller address.
func rateLimiter(perSecond float64) echo.MiddlewareFunc {
	burst := int(perSecond)
	if burst < 1 {
		burst = 1
	}
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		},
	))
}

// Listen binds the bridge address and serves in the background. Binding
// errors are returned; serving errors are logged.
func (s *Server) Listen() error {
	l, err := net.Listen("tcp", s.config.Address())
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Address(), err)
	}
	s.echo.Listener = l

	log.Infow("Starting bridge server", "address", l.Addr().String())
	go func() {
		if err := s.echo.Start(""); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("Bridge server stopped", "error", err)
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info("Shutting down bridge server")

	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

// Addr returns the bound address, or an empty string before Listen.
func (s *Server) Addr() string {
	if addr := s.echo.ListenerAddr(); addr != nil {
		return addr.String()
	}
	return ""
}

// Echo returns the underlying Echo instance for advanced configuration
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start ties the server to the fx application lifecycle.
func Start(lc fx.Lifecycle, s *Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Listen()
		},
		OnStop: func(ctx context.Context) error {
			return s.Shutdown(ctx)
		},
	})
}

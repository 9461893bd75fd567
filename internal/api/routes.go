package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/workix/desktop/internal/handlers"
)

// Command names the web view invokes.
const (
	CmdGetAppVersion  = "get_app_version"
	CmdGetAppInfo     = "get_app_info"
	CmdCallBackendAPI = "call_backend_api"
	CmdLogMessage     = "log_message"
	CmdGetSystemInfo  = "get_system_info"
)

// RegisterRoutes registers all bridge routes. invokeMiddleware applies to the
// command routes only.
func RegisterRoutes(e *echo.Echo, h *handlers.Handlers, gatherer prometheus.Gatherer, invokeMiddleware ...echo.MiddlewareFunc) {
	// Health check
	e.GET("/health", h.HealthCheck)

	// Metrics
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	// Host commands
	invoke := e.Group("/invoke", invokeMiddleware...)
	invoke.POST("/"+CmdGetAppVersion, h.GetAppVersion)
	invoke.POST("/"+CmdGetAppInfo, h.GetAppInfo)
	invoke.POST("/"+CmdCallBackendAPI, h.CallBackendAPI)
	invoke.POST("/"+CmdLogMessage, h.LogMessage)
	invoke.POST("/"+CmdGetSystemInfo, h.GetSystemInfo)
}

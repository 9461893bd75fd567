package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/workix/desktop/internal/desktop"
	"github.com/workix/desktop/pkg/models"
)

// Handlers exposes the desktop commands to the web view over HTTP.
type Handlers struct {
	app *desktop.App
}

func NewHandlers(app *desktop.App) *Handlers {
	return &Handlers{
		app: app,
	}
}

func (h *Handlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, models.Success(map[string]string{
		"status":  "ok",
		"service": "workix-desktop",
	}))
}

func (h *Handlers) GetAppVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, h.app.GetAppVersion())
}

func (h *Handlers) GetAppInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, h.app.GetAppInfo())
}

func (h *Handlers) GetSystemInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, h.app.GetSystemInfo())
}

// CallBackendAPIRequest is the argument object of call_backend_api.
type CallBackendAPIRequest struct {
	Endpoint string          `json:"endpoint"`
	Method   string          `json:"method"`
	Body     json.RawMessage `json:"body,omitempty"`
}

// payload returns the body to forward, or nil when it was omitted or null.
func (r CallBackendAPIRequest) payload() any {
	trimmed := bytes.TrimSpace(r.Body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return r.Body
}

// CallBackendAPI proxies one request to the backend. Every proxy outcome is
// reported in the envelope with status 200; only a malformed invocation is
// rejected. The proxied call outlives a disconnecting caller.
func (h *Handlers) CallBackendAPI(c echo.Context) error {
	var req CallBackendAPIRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	ctx := context.WithoutCancel(c.Request().Context())
	return c.JSON(http.StatusOK, h.app.CallBackendAPI(ctx, req.Endpoint, req.Method, req.payload()))
}

// LogMessageRequest is the argument object of log_message.
type LogMessageRequest struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func (h *Handlers) LogMessage(c echo.Context) error {
	var req LogMessageRequest
	if err := c.Bind(&req); err != nil {
		return invalidRequest(c, err)
	}

	h.app.LogMessage(req.Level, req.Message)
	return c.NoContent(http.StatusNoContent)
}

func invalidRequest(c echo.Context, err error) error {
	message := "Invalid request body"
	if he, ok := err.(*echo.HTTPError); ok {
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}
	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "invalid_request",
		Message: message,
		Code:    http.StatusBadRequest,
	})
}

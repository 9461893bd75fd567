// Package client provides the generic backend proxy used by the desktop host.
//
// A Client forwards an endpoint/method/body triple to the backend API rooted
// at its base URL and folds every outcome (success, invalid method, transport
// failure, undecodable body) into a models.Envelope. Each call issues at most
// one HTTP request; nothing is retried or cached.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	logging "github.com/ipfs/go-log/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/workix/desktop/pkg/models"
)

var log = logging.Logger("client")

const tracerName = "github.com/workix/desktop/pkg/client"

// DefaultBaseURL is the address of the local Workix backend API.
const DefaultBaseURL = "http://localhost:5000/api"

// Client represents a backend API proxy. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	tracer     trace.Tracer

	// timeout is applied to a copy of httpClient in New.
	timeout *time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. The client is copied, so later
// options never modify it.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout regardless of option order. Zero
// means no overall timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = &timeout
	}
}

// WithUserAgent sets a custom user agent.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithTracerProvider sets the provider used to trace backend calls. The
// global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracer = tp.Tracer(tracerName)
	}
}

// New creates a proxy for the backend API rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL: %q must be absolute", baseURL)
	}

	c := &Client{
		httpClient: &http.Client{},
		baseURL:    baseURL,
		userAgent:  "workix-desktop/1.0",
		tracer:     otel.GetTracerProvider().Tracer(tracerName),
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		return nil, fmt.Errorf("HTTP client cannot be nil")
	}
	hc := *c.httpClient
	if c.timeout != nil {
		hc.Timeout = *c.timeout
	}
	c.httpClient = &hc

	return c, nil
}

// BaseURL returns the backend root every endpoint is appended to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Call forwards one request to the backend and reports the outcome as an
// envelope. It never returns a Go error: invalid methods, transport failures
// and undecodable responses all become failed envelopes.
func (c *Client) Call(ctx context.Context, endpoint, method string, body any) models.Envelope {
	return Envelope(c.Do(ctx, endpoint, method, body))
}

// Do forwards one request to the backend and returns the decoded response
// body. The error is ErrInvalidMethod (wrapped), a *TransportError or a
// *DecodeError. A body that is nil or encodes to JSON null is sent as an
// empty JSON object, for every method.
func (c *Client) Do(ctx context.Context, endpoint, method string, body any) (any, error) {
	ctx, span := c.tracer.Start(ctx, "backend.call", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("backend.endpoint", endpoint),
		attribute.String("backend.method", method),
	)

	value, err := c.do(ctx, endpoint, method, body)

	span.SetAttributes(attribute.String("backend.outcome", Outcome(err)))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return value, err
}

func (c *Client) do(ctx context.Context, endpoint, rawMethod string, body any) (any, error) {
	method, err := ParseMethod(rawMethod)
	if err != nil {
		log.Debugw("Rejected backend call", "method", rawMethod, "endpoint", endpoint)
		return nil, err
	}

	req, err := c.newRequest(ctx, method, endpoint, body)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	log.Debugw("Calling backend", "method", method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	value, err := decodeBody(resp.Body)
	if err != nil {
		return nil, &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}

	log.Debugw("Backend responded", "method", method, "url", req.URL.String(), "status", resp.StatusCode)
	return value, nil
}

// newRequest creates the backend request. The endpoint is appended to the
// base URL verbatim.
func (c *Client) newRequest(ctx context.Context, method Method, endpoint string, body any) (*http.Request, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}
	if bytes.Equal(data, []byte("null")) {
		data = []byte("{}")
	}

	req, err := http.NewRequestWithContext(ctx, method.String(), c.baseURL+"/"+endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	return req, nil
}

// decodeBody reads exactly one JSON value from r. Numbers are kept as
// json.Number.
func decodeBody(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty response body")
		}
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value at offset %d", dec.InputOffset())
	}

	return value, nil
}

package client

import (
	"net/http"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		wantErr bool
	}{
		{
			name:    "valid URL",
			baseURL: "http://localhost:5000/api",
			wantErr: false,
		},
		{
			name:    "URL without scheme",
			baseURL: "localhost:5000/api",
			wantErr: true,
		},
		{
			name:    "empty URL",
			baseURL: "",
			wantErr: true,
		},
		{
			name:    "invalid URL",
			baseURL: "://invalid",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.baseURL)
			if (err != nil) != tt.wantErr {
				t.Errorf("New() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && client == nil {
				t.Error("New() returned nil client")
			}
		})
	}
}

func TestNewKeepsBaseURLVerbatim(t *testing.T) {
	client, err := New("http://localhost:5000/api/")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := client.BaseURL(); got != "http://localhost:5000/api/" {
		t.Errorf("BaseURL() = %q, want %q", got, "http://localhost:5000/api/")
	}
}

func TestClientWithOptions(t *testing.T) {
	customClient := &http.Client{}
	userAgent := "test-client/1.0"

	client, err := New("http://localhost:5000/api",
		WithHTTPClient(customClient),
		WithUserAgent(userAgent),
		WithTimeout(10*time.Second),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if client.httpClient == customClient {
		t.Error("WithHTTPClient() kept a shared reference to the custom client")
	}
	if client.userAgent != userAgent {
		t.Error("WithUserAgent() did not set custom user agent")
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("WithTimeout() timeout = %v, want %v", client.httpClient.Timeout, 10*time.Second)
	}
	if customClient.Timeout != 0 {
		t.Errorf("custom client timeout = %v, want it untouched", customClient.Timeout)
	}
}

func TestWithTimeoutIgnoresOptionOrder(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
	}{
		{
			name: "timeout after client",
			opts: []Option{WithHTTPClient(http.DefaultClient), WithTimeout(5 * time.Second)},
		},
		{
			name: "timeout before client",
			opts: []Option{WithTimeout(5 * time.Second), WithHTTPClient(http.DefaultClient)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(DefaultBaseURL, tt.opts...)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			if client.httpClient.Timeout != 5*time.Second {
				t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, 5*time.Second)
			}
			if http.DefaultClient.Timeout != 0 {
				t.Errorf("http.DefaultClient timeout = %v, want it untouched", http.DefaultClient.Timeout)
			}
		})
	}
}

func TestNewRejectsNilHTTPClient(t *testing.T) {
	if _, err := New(DefaultBaseURL, WithHTTPClient(nil)); err == nil {
		t.Error("New() with nil HTTP client succeeded, want error")
	}
}

func TestDefaultClientHasNoTimeout(t *testing.T) {
	client, err := New(DefaultBaseURL)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.httpClient.Timeout != 0 {
		t.Errorf("default timeout = %v, want none", client.httpClient.Timeout)
	}
}

func TestParseMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    Method
		wantErr bool
	}{
		{input: "GET", want: MethodGet},
		{input: "get", want: MethodGet},
		{input: "Get", want: MethodGet},
		{input: "post", want: MethodPost},
		{input: "Put", want: MethodPut},
		{input: "dElEtE", want: MethodDelete},
		{input: "PATCH", wantErr: true},
		{input: "HEAD", wantErr: true},
		{input: "options", wantErr: true},
		{input: "", wantErr: true},
		{input: " GET", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMethod(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMethod(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/workix/desktop/pkg/client"
)

type Config struct {
	Backend BackendConfig
	Bridge  BridgeConfig
	Log     LogConfig
}

type BackendConfig struct {
	// BaseURL is the root every proxied endpoint is appended to.
	BaseURL string
	// Timeout bounds a whole backend exchange. Zero leaves the HTTP
	// transport default in place, which never times out.
	Timeout time.Duration
	// UserAgent is sent with every proxied request.
	UserAgent string
}

// BridgeConfig configures the loopback server the web view invokes
// host commands through.
type BridgeConfig struct {
	Host string
	Port int
	// RateLimit is the sustained invocations per second allowed per caller.
	// Zero disables limiting.
	RateLimit float64
	// AllowOrigins lists the web view origins accepted by CORS.
	AllowOrigins []string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// New returns a viper instance carrying the defaults and environment
// bindings. Keys may be overridden with WORKIX_ prefixed variables, for
// example WORKIX_BACKEND_BASE_URL.
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("backend.base_url", client.DefaultBaseURL)
	v.SetDefault("backend.timeout", time.Duration(0))
	v.SetDefault("backend.user_agent", "workix-desktop/1.0")

	v.SetDefault("bridge.host", "127.0.0.1")
	v.SetDefault("bridge.port", 1420)
	v.SetDefault("bridge.rate_limit", 0.0)
	v.SetDefault("bridge.allow_origins", []string{"*"})
	v.SetDefault("bridge.read_timeout", 30*time.Second)
	v.SetDefault("bridge.write_timeout", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetEnvPrefix("workix")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file configured on v, if any, and assembles a
// validated Config. A file set explicitly with SetConfigFile must exist; a
// file searched for in config paths is optional.
func Load(v *viper.Viper) (*Config, error) {
	explicit := v.ConfigFileUsed() != ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		Backend: BackendConfig{
			BaseURL:   v.GetString("backend.base_url"),
			Timeout:   v.GetDuration("backend.timeout"),
			UserAgent: v.GetString("backend.user_agent"),
		},
		Bridge: BridgeConfig{
			Host:         v.GetString("bridge.host"),
			Port:         v.GetInt("bridge.port"),
			RateLimit:    v.GetFloat64("bridge.rate_limit"),
			AllowOrigins: v.GetStringSlice("bridge.allow_origins"),
			ReadTimeout:  v.GetDuration("bridge.read_timeout"),
			WriteTimeout: v.GetDuration("bridge.write_timeout"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base url not set")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend base url must be http or https, got %q", c.Backend.BaseURL)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend timeout cannot be negative")
	}

	if c.Bridge.Port < 0 || c.Bridge.Port > 65535 {
		return fmt.Errorf("bridge port %d out of range", c.Bridge.Port)
	}
	if c.Bridge.RateLimit < 0 {
		return fmt.Errorf("bridge rate limit cannot be negative")
	}

	switch c.Log.Format {
	case "", "text", "json", "color":
	default:
		return fmt.Errorf("unknown log format %q (text, json, color)", c.Log.Format)
	}

	return nil
}

func (c *BridgeConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

package live

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/vango-dev/reconcile/pkg/patch"
)

// Config configures live sessions.
type Config struct {
	// ReadTimeout bounds the wait for the next client message or pong.
	// Default: 60s
	ReadTimeout time.Duration

	// WriteTimeout bounds a single frame write. Default: 10s
	WriteTimeout time.Duration

	// HeartbeatInterval is the ping period. It must be shorter than
	// ReadTimeout. Default: 30s
	HeartbeatInterval time.Duration

	// MaxMessageSize limits client messages. Default: 64KB
	MaxMessageSize int64

	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the upgrade request origin.
	// Default: SameOriginCheck
	CheckOrigin func(r *http.Request) bool

	// Logger receives connection lifecycle logs. Default: slog.Default()
	Logger *slog.Logger

	// PatchOptions are passed to every session's Patcher.
	PatchOptions []patch.Option
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    64 * 1024,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		CheckOrigin:       SameOriginCheck,
	}
}

func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		d.Logger = slog.Default()
		return d
	}
	out := *c
	if out.ReadTimeout <= 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.HeartbeatInterval <= 0 {
		out.HeartbeatInterval = d.HeartbeatInterval
	}
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.CheckOrigin == nil {
		out.CheckOrigin = d.CheckOrigin
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}

// SameOriginCheck accepts requests without an Origin header and requests
// whose Origin host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host == r.Host
}

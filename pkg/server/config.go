package server

import (
	"log/slog"
	"time"
)

// Config holds the session server configuration.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string

	// ReadTimeout is the websocket read deadline. A connection that
	// stays silent longer than this is closed. Keepalive pings reset
	// it from the client side.
	ReadTimeout time.Duration

	// WriteTimeout is the deadline applied to each frame write.
	WriteTimeout time.Duration

	// PingInterval is how often the server pings idle connections.
	// Must be shorter than ReadTimeout.
	PingInterval time.Duration

	// MaxSessions caps concurrent sessions. 0 means unlimited.
	MaxSessions int

	// Logger for structured diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Second,
		PingInterval: 25 * time.Second,
		MaxSessions:  1000,
	}
}

// withDefaults fills zero values.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = def.ReadTimeout
	}
	if c.WriteTimeout <= 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.PingInterval <= 0 || c.PingInterval >= c.ReadTimeout {
		c.PingInterval = c.ReadTimeout * 2 / 5
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

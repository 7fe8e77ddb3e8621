package core

import (
	"log/slog"
	"time"
)

type SessionConfig struct {
	MaxAge time.Duration
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		MaxAge: 24 * time.Hour,
	}
}

type Config struct {
	Secret string

	Database Storage

	Canvas Canvas

	// Optional config
	CacheAdapter  Cache
	SessionConfig *SessionConfig
	DisableCache  bool
	Logger        *slog.Logger

	// StrokeQueueSize bounds the stroke-log queue. When the queue is full,
	// samples are dropped rather than blocking the pointer path.
	StrokeQueueSize int
}

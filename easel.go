// Package easel is a drawing-board persistence core: email/password
// authentication, a Postgres-backed drawing repository, an append-only
// stroke log, a raster canvas surface and the session controller that
// ties them together.
package easel

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lborres/easel/core"
	"github.com/lborres/easel/pkg/cache"
	"github.com/lborres/easel/pkg/crypto"
	"github.com/lborres/easel/services"
)

// interfaces
type (
	Storage        = core.Storage
	AuthStorage    = core.AuthStorage
	DrawingStorage = core.DrawingStorage
	StrokeStorage  = core.StrokeStorage
	Cache          = core.Cache
	Canvas         = core.Canvas

	PasswordHandler = crypto.PasswordHandler
)

// structs
type (
	Config        = core.Config
	SessionConfig = core.SessionConfig
	CacheConfig   = core.CacheConfig
)

type (
	User           = core.User
	Account        = core.Account
	Session        = core.Session
	SessionData    = core.SessionData
	Drawing        = core.Drawing
	DrawingSummary = core.DrawingSummary
	Stroke         = core.Stroke
	Point          = core.Point
	Segment        = core.Segment
)

const (
	defaultSecretLen = 32
)

// Constructors & helpers (convenience re-exports)
var (
	NewInMemoryCache     = cache.NewInMemoryCache
	NewArgon2            = crypto.NewArgon2
	DefaultSessionConfig = core.DefaultSessionConfig
)

var (
	ErrUserExists         = core.ErrUserExists
	ErrUserNotFound       = core.ErrUserNotFound
	ErrInvalidCredentials = core.ErrInvalidCredentials
)

var (
	ErrMissingAuthHeader = core.ErrMissingAuthHeader
	ErrInvalidToken      = core.ErrInvalidToken
	ErrSessionNotFound   = core.ErrSessionNotFound
	ErrSessionExpired    = core.ErrSessionExpired
	ErrNotSignedIn       = core.ErrNotSignedIn
)

var (
	ErrDrawingNotFound = core.ErrDrawingNotFound
)

var (
	ErrDBAdapterRequired = core.ErrDBAdapterRequired
	ErrCanvasRequired    = core.ErrCanvasRequired
	ErrSecretRequired    = core.ErrSecretRequired
	ErrSecretTooShort    = core.ErrSecretTooShort
)

// Easel is the assembled application core.
type Easel struct {
	Auth       *services.AuthService
	Sessions   *services.SessionManager
	Drawings   *services.DrawingService
	Strokes    *services.StrokeLog
	Controller *services.Controller

	Secret string
	Logger *slog.Logger

	storage core.Storage
}

func New(config Config) (*Easel, error) {
	if config.Secret == "" {
		return nil, ErrSecretRequired
	}
	if len(config.Secret) < defaultSecretLen {
		return nil, fmt.Errorf("%w - minimum of %d characters", ErrSecretTooShort, defaultSecretLen)
	}
	if config.Database == nil {
		return nil, ErrDBAdapterRequired
	}
	if config.Canvas == nil {
		return nil, ErrCanvasRequired
	}

	// Set Defaults

	cacheAdapter := config.CacheAdapter
	if cacheAdapter == nil && !config.DisableCache {
		cacheAdapter = NewInMemoryCache(CacheConfig{
			TTL:     5 * time.Minute,
			MaxSize: 500,
		})
	}

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		def := DefaultSessionConfig()
		sessionConfig = &def
	}

	logger := config.Logger
	if logger == nil {
		logger = newNopLogger()
	}

	sessions := services.NewSessionManager(*sessionConfig, config.Database, cacheAdapter)
	auth := services.NewAuthService(config.Database, sessions, crypto.NewArgon2())
	drawings := services.NewDrawingService(config.Database)
	strokes := services.NewStrokeLog(config.Database, config.StrokeQueueSize, logger)
	controller := services.NewController(auth, drawings, strokes, config.Canvas, logger)

	return &Easel{
		Auth:       auth,
		Sessions:   sessions,
		Drawings:   drawings,
		Strokes:    strokes,
		Controller: controller,
		Secret:     config.Secret,
		Logger:     logger,
		storage:    config.Database,
	}, nil
}

// Close drains the stroke queue.
func (e *Easel) Close() {
	e.Strokes.Close()
}

// CleanupExpiredSessions removes sessions past their expiry. Intended to
// run periodically from the server binary.
func (e *Easel) CleanupExpiredSessions() (int, error) {
	return e.storage.DeleteExpiredSessions()
}

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

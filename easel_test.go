package easel

import (
	"errors"
	"strings"
	"testing"

	"github.com/lborres/easel/canvas"
	"github.com/lborres/easel/pkg/crypto"
	"github.com/lborres/easel/services"
)

const testSecret = "01234567890123456789012345678901"

func testConfig() Config {
	return Config{
		Secret:   testSecret,
		Database: services.NewFakeStorage(),
		Canvas:   canvas.NewSurface(100, 100),
	}
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: nil,
		},
		{
			name:    "missing secret",
			mutate:  func(c *Config) { c.Secret = "" },
			wantErr: ErrSecretRequired,
		},
		{
			name:    "short secret",
			mutate:  func(c *Config) { c.Secret = "short-secret" },
			wantErr: ErrSecretTooShort,
		},
		{
			name:    "missing database",
			mutate:  func(c *Config) { c.Database = nil },
			wantErr: ErrDBAdapterRequired,
		},
		{
			name:    "missing canvas",
			mutate:  func(c *Config) { c.Canvas = nil },
			wantErr: ErrCanvasRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)

			e, err := New(cfg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("New() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil {
				defer e.Close()
				if e.Auth == nil || e.Drawings == nil || e.Strokes == nil || e.Controller == nil {
					t.Error("New() returned partially wired Easel")
				}
			}
		})
	}
}

func TestNewShortSecretNamesMinimumLength(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = "short-secret"

	_, err := New(cfg)
	if !errors.Is(err, ErrSecretTooShort) {
		t.Fatalf("New() error = %v, want ErrSecretTooShort", err)
	}
	if !strings.Contains(err.Error(), "32") {
		t.Errorf("error message %q should state the minimum length", err.Error())
	}
}

func TestNewShouldNotUseCacheWhenDisableCacheTrue(t *testing.T) {
	storage := services.NewFakeStorage()

	cfg := testConfig()
	cfg.Database = storage
	cfg.DisableCache = true

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	res, err := e.Sessions.Create("user-1", "127.0.0.1", "ua")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Remove the row behind the manager's back. With no cache, Verify must
	// hit storage and fail.
	if err := storage.DeleteSessionByHash(crypto.HashToken(res.Token)); err != nil {
		t.Fatalf("DeleteSessionByHash() error = %v", err)
	}
	if _, err := e.Sessions.Verify(res.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Verify() error = %v, want ErrSessionNotFound with cache disabled", err)
	}
}

func TestNewDefaultsToCache(t *testing.T) {
	storage := services.NewFakeStorage()

	cfg := testConfig()
	cfg.Database = storage

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	res, err := e.Sessions.Create("user-1", "127.0.0.1", "ua")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Storage loses the row but the default cache still serves it.
	if err := storage.DeleteSessionByHash(crypto.HashToken(res.Token)); err != nil {
		t.Fatalf("DeleteSessionByHash() error = %v", err)
	}
	if _, err := e.Sessions.Verify(res.Token); err != nil {
		t.Fatalf("Verify() error = %v, want cache hit despite storage miss", err)
	}
}

func TestCleanupExpiredSessions(t *testing.T) {
	storage := services.NewFakeStorage()

	cfg := testConfig()
	cfg.Database = storage
	cfg.SessionConfig = &SessionConfig{MaxAge: -1} // sessions are born expired

	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer e.Close()

	if _, err := e.Sessions.Create("user-1", "", ""); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	count, err := e.CleanupExpiredSessions()
	if err != nil {
		t.Fatalf("CleanupExpiredSessions() error = %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

package cache

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lborres/easel/core"
)

func testSession(id string) *core.Session {
	now := time.Now()
	return &core.Session{
		ID:        id,
		UserID:    "user-1",
		TokenHash: "hash-" + id,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func TestInMemoryCache_SetAndGet(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 10})
	session := testSession("s1")

	if err := c.Set(session.TokenHash, session); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := c.Get(session.TokenHash)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.ID != "s1" {
		t.Errorf("got session %q, want s1", got.ID)
	}
}

func TestInMemoryCache_GetMissing(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 10})

	if _, err := c.Get("absent"); !errors.Is(err, core.ErrCacheNotFound) {
		t.Errorf("Get() error = %v, want ErrCacheNotFound", err)
	}
}

func TestInMemoryCache_TTLExpiry(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: time.Nanosecond, MaxSize: 10})
	session := testSession("s1")

	if err := c.Set(session.TokenHash, session); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	time.Sleep(time.Millisecond)

	if _, err := c.Get(session.TokenHash); !errors.Is(err, core.ErrCacheNotFound) {
		t.Errorf("Get() after TTL error = %v, want ErrCacheNotFound", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after expiry eviction, want 0", c.Len())
	}
}

func TestInMemoryCache_Delete(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 10})
	session := testSession("s1")

	if err := c.Set(session.TokenHash, session); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Delete(session.TokenHash); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := c.Get(session.TokenHash); !errors.Is(err, core.ErrCacheNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrCacheNotFound", err)
	}

	// Deleting an absent key is not an error
	if err := c.Delete("absent"); err != nil {
		t.Errorf("Delete(absent) error = %v", err)
	}
}

func TestInMemoryCache_Clear(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 10})

	for i := 0; i < 5; i++ {
		s := testSession(fmt.Sprintf("s%d", i))
		if err := c.Set(s.TokenHash, s); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}
}

func TestInMemoryCache_EvictionWhenFull(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 3})

	for i := 0; i < 5; i++ {
		s := testSession(fmt.Sprintf("s%d", i))
		if err := c.Set(s.TokenHash, s); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	if c.Len() > 3 {
		t.Errorf("Len() = %d, want at most 3", c.Len())
	}
	if c.Stats().Evictions == 0 {
		t.Error("Evictions = 0, want evictions recorded")
	}
}

func TestInMemoryCache_Defaults(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{})

	stats := c.Stats()
	if stats.TTL != 5*time.Minute {
		t.Errorf("default TTL = %v, want 5m", stats.TTL)
	}
	if c.maxSize != 500 {
		t.Errorf("default maxSize = %d, want 500", c.maxSize)
	}
}

func TestInMemoryCache_Stats(t *testing.T) {
	c := NewInMemoryCache(core.CacheConfig{TTL: time.Minute, MaxSize: 10})
	session := testSession("s1")

	_ = c.Set(session.TokenHash, session)
	_, _ = c.Get(session.TokenHash)
	_, _ = c.Get("absent")
	_ = c.Delete(session.TokenHash)

	stats := c.Stats()
	if stats.Sets != 1 {
		t.Errorf("Sets = %d, want 1", stats.Sets)
	}
	if stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Misses = %d, want 1", stats.Misses)
	}
	if stats.Deletes != 1 {
		t.Errorf("Deletes = %d, want 1", stats.Deletes)
	}
}

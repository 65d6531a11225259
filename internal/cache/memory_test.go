package cache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestMemoryStoreTTL(t *testing.T) {
	c := NewMemoryStore(time.Hour, zap.NewNop())
	defer c.Close()

	ctx := context.Background()
	key := Fingerprint("hello", "default", "")
	val := []byte("answer")

	if err := c.Set(ctx, key, val, 20*time.Millisecond); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, hit, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !hit {
		t.Fatalf("expected hit immediately after Set")
	}
	if string(got) != "answer" {
		t.Fatalf("expected 'answer', got %q", got)
	}

	// lazy expiry on read
	time.Sleep(30 * time.Millisecond)

	_, hit, err = c.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get after TTL failed: %v", err)
	}
	if hit {
		t.Fatalf("expected miss after TTL expiry")
	}
	if c.Len() != 0 {
		t.Fatalf("expected stale entry removed on read, len=%d", c.Len())
	}
}

func TestMemoryStoreSweepRemovesExpired(t *testing.T) {
	c := NewMemoryStore(time.Hour, zap.NewNop())
	defer c.Close()

	ctx := context.Background()
	_ = c.Set(ctx, "a", []byte("1"), 5*time.Millisecond)
	_ = c.Set(ctx, "b", []byte("2"), time.Hour)

	time.Sleep(10 * time.Millisecond)

	if removed := c.sweep(time.Now()); removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 entry left, got %d", c.Len())
	}
}

func TestMemoryStoreClearAndStats(t *testing.T) {
	c := NewMemoryStore(time.Hour, zap.NewNop())
	defer c.Close()

	ctx := context.Background()
	_ = c.Set(ctx, "a", []byte("1"), time.Hour)
	_ = c.Set(ctx, "b", []byte("2"), 5*time.Millisecond)

	time.Sleep(10 * time.Millisecond)

	st, err := c.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if st.TotalEntries != 2 || st.ValidEntries != 1 {
		t.Fatalf("unexpected stats: %+v", st)
	}

	if err := c.Clear(ctx); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache after Clear")
	}
}

func TestMemoryStoreSetOverwrites(t *testing.T) {
	c := NewMemoryStore(time.Hour, zap.NewNop())
	defer c.Close()

	ctx := context.Background()
	_ = c.Set(ctx, "k", []byte("old"), time.Hour)
	_ = c.Set(ctx, "k", []byte("new"), time.Hour)

	got, hit, _ := c.Get(ctx, "k")
	if !hit || string(got) != "new" {
		t.Fatalf("expected overwrite, got hit=%v value=%q", hit, got)
	}
}

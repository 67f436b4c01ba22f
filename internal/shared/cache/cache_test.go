package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryGetSet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(4)
	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := m.Set(ctx, "a", []byte("<html>"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := m.Get(ctx, "a")
	if err != nil || string(got) != "<html>" {
		t.Fatalf("unexpected get %q %v", got, err)
	}
	got[0] = 'X'
	again, _ := m.Get(ctx, "a")
	if string(again) != "<html>" {
		t.Fatalf("cached value must not alias caller slices")
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(4)
	m.now = func() time.Time { return now }

	_ = m.Set(ctx, "a", []byte("v"), time.Second)
	now = now.Add(2 * time.Second)
	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected expired miss, got %v", err)
	}
}

func TestMemoryEvictsOldest(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(2)
	_ = m.Set(ctx, "a", []byte("1"), 0)
	_ = m.Set(ctx, "b", []byte("2"), 0)
	_ = m.Set(ctx, "c", []byte("3"), 0)

	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected a evicted")
	}
	for _, k := range []string{"b", "c"} {
		if _, err := m.Get(ctx, k); err != nil {
			t.Fatalf("expected %s kept, got %v", k, err)
		}
	}
}

func TestMemoryExpiredKeyIsQueuedOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemory(2)
	m.now = func() time.Time { return now }

	_ = m.Set(ctx, "a", []byte("1"), time.Second)
	now = now.Add(2 * time.Second)
	if _, err := m.Get(ctx, "a"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected expired miss, got %v", err)
	}
	_ = m.Set(ctx, "b", []byte("2"), 0)
	_ = m.Set(ctx, "a", []byte("3"), 0)
	if len(m.order) != 2 {
		t.Fatalf("order = %q, want one slot per live key", m.order)
	}

	// b is now the oldest entry and must be the one evicted.
	_ = m.Set(ctx, "c", []byte("4"), 0)
	if _, err := m.Get(ctx, "b"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected b evicted, got %v", err)
	}
	for _, k := range []string{"a", "c"} {
		if _, err := m.Get(ctx, k); err != nil {
			t.Fatalf("expected %s kept, got %v", k, err)
		}
	}
}

func TestNewRedisFailsWhenUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := NewRedis(ctx, "127.0.0.1:1", "", 0); err == nil {
		t.Fatalf("expected connection error")
	}
}

package memory

import (
	"context"
	"testing"
	"time"

	"github.com/nw3q/toshin-chieria-calender-api/internal/ports/cache"
)

func TestStore_SetGet(t *testing.T) {
	s := NewStore().(*store)
	ctx := context.Background()

	err := s.Set(ctx, "k1", cache.Entry{Body: []byte("hola"), ContentType: "text/plain"}, time.Minute)
	if err != nil {
		t.Fatalf("Set error: %v", err)
	}

	e, ok, err := s.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !ok {
		t.Fatalf("expected hit")
	}
	if string(e.Body) != "hola" || e.ContentType != "text/plain" {
		t.Fatalf("unexpected entry %+v", e)
	}

	if _, ok, _ := s.Get(ctx, "missing"); ok {
		t.Fatalf("expected miss for unknown key")
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	s := NewStore().(*store)
	ctx := context.Background()

	now := time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Set(ctx, "k1", cache.Entry{Body: []byte("x")}, 5*time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	if _, ok, _ := s.Get(ctx, "k1"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	now = now.Add(5*time.Minute + time.Second)
	if _, ok, _ := s.Get(ctx, "k1"); ok {
		t.Fatalf("expected miss after expiry")
	}
}

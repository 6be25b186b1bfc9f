package memory

import (
	"context"
	"sync"
	"time"

	"github.com/nw3q/toshin-chieria-calender-api/internal/ports/cache"
)

type entry struct {
	value     cache.Entry
	expiresAt time.Time // zero = sin expiración
}

type store struct {
	mu    sync.Mutex
	byKey map[string]entry
	now   func() time.Time
}

func NewStore() cache.Store {
	return &store{
		byKey: make(map[string]entry),
		now:   time.Now,
	}
}

func (s *store) Get(ctx context.Context, key string) (cache.Entry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byKey[key]
	if !ok {
		return cache.Entry{}, false, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		// Expirada: limpieza perezosa
		delete(s.byKey, key)
		return cache.Entry{}, false, nil
	}
	return e.value, true, nil
}

func (s *store) Set(ctx context.Context, key string, v cache.Entry, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: v}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.byKey[key] = e
	return nil
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
)

var ErrNilLoader = errors.New("cache loader is required")

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// Store is an in-process TTL cache. A zero TTL keeps entries until deleted.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	flight  resilience.SingleFlight
	now     func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(s.now()) {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && cur.expired(s.now()) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	e := entry{value: value}
	if s.ttl > 0 {
		e.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

// DeletePrefix drops every key starting with prefix and returns the count.
func (s *Store) DeletePrefix(_ context.Context, prefix string) int {
	if prefix == "" {
		return 0
	}

	removed := 0
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
			removed++
		}
	}
	s.mu.Unlock()
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// GetOrLoad returns the cached value or runs loader once across concurrent
// callers for the same key. Loader errors are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, ErrNilLoader
	}
	if key == "" {
		return loader(ctx)
	}
	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}
		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Load is the typed form of GetOrLoad.
func Load[T any](ctx context.Context, s *Store, key string, loader func(context.Context) (T, error)) (T, error) {
	var zero T
	raw, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	value, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T", key, raw)
	}
	return value, nil
}

package cache

import (
	"context"
	"sync"
	"time"

	"unimitr-backend/internal/domain"
)

// Store is a process-local key/value cache for unfiltered resource lists.
type Store struct {
	mu   sync.RWMutex
	data map[string]entry
	// gen counts deletions per key so a load that raced an invalidation
	// never writes its stale result back.
	gen map[string]uint64

	maxAge time.Duration
	now    func() time.Time
}

type entry struct {
	val    any
	stored time.Time
}

type Option func(*Store)

// WithMaxAge expires entries after d. Zero keeps them until invalidated.
func WithMaxAge(d time.Duration) Option {
	return func(s *Store) { s.maxAge = d }
}

func New(opts ...Option) *Store {
	s := &Store{
		data: make(map[string]entry),
		gen:  make(map[string]uint64),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListKey is the cache key of the unfiltered list of one kind.
func ListKey(kind domain.Kind) string {
	return string(kind) + "_list"
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.data[key]
	if !ok || (s.maxAge > 0 && s.now().Sub(e.stored) >= s.maxAge) {
		return nil, false
	}
	return e.val, true
}

func (s *Store) Set(key string, val any) {
	s.mu.Lock()
	s.data[key] = entry{val: val, stored: s.now()}
	s.mu.Unlock()
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.gen[key]++
	s.mu.Unlock()
}

// Invalidate drops the list of kind. It has the signature of a workflow write hook.
func (s *Store) Invalidate(kind domain.Kind) {
	s.Delete(ListKey(kind))
}

func (s *Store) generation(key string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen[key]
}

func (s *Store) setIfGeneration(key string, val any, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen[key] == gen {
		s.data[key] = entry{val: val, stored: s.now()}
	}
}

// GetOrLoad returns the cached value under key, calling load on a miss.
// Load errors are returned and nothing is cached.
func GetOrLoad[T any](ctx context.Context, s *Store, key string, load func(context.Context) (T, error)) (T, error) {
	if v, ok := s.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	gen := s.generation(key)
	val, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	s.setIfGeneration(key, val, gen)
	return val, nil
}

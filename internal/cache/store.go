package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	payload   V
	createdAt time.Time
	ttl       time.Duration
	version   uint64
}

// live reports whether the entry is still readable at now.
func (e *entry[V]) live(now time.Time) bool {
	return now.Before(e.createdAt.Add(e.ttl))
}

// Store is a string-keyed in-memory store with per-entry TTL.
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	cfg     config

	// version is the last stamp handed out; pending holds scheduled
	// evictions by the version they target.
	version uint64
	pending map[uint64]Timer
	closed  bool
}

// New creates a store.
func New[V any](opts ...Option) *Store[V] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Store[V]{
		entries: make(map[string]*entry[V]),
		pending: make(map[uint64]Timer),
		cfg:     cfg,
	}
}

// TTL returns the configured time-to-live.
func (s *Store[V]) TTL() time.Duration {
	return s.cfg.ttl
}

// Set stores payload under key, replacing any existing entry, and schedules
// its eviction. Set on a closed store is ignored.
func (s *Store[V]) Set(key string, payload V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	s.version++
	version := s.version
	s.entries[key] = &entry[V]{
		payload:   payload,
		createdAt: s.cfg.clock.Now(),
		ttl:       s.cfg.ttl,
		version:   version,
	}

	// The timer callback blocks on s.mu until this Set returns, so the
	// pending map always sees the timer before the callback runs.
	s.pending[version] = s.cfg.scheduler.AfterFunc(s.cfg.ttl, func() {
		s.evict(key, version)
	})
}

// Get returns the payload stored under key if it has not expired.
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if !ent.live(s.cfg.clock.Now()) {
		delete(s.entries, key)
		var zero V
		return zero, false
	}
	return ent.payload, true
}

// Has reports whether a live entry exists under key.
func (s *Store[V]) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ent, ok := s.entries[key]
	return ok && ent.live(s.cfg.clock.Now())
}

// Delete removes the entry under key. Deleting a missing key is a no-op.
func (s *Store[V]) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

// Len returns the number of stored entries, including expired entries
// that have not been purged yet.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops pending evictions and drops all entries.
func (s *Store[V]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	for version, timer := range s.pending {
		timer.Stop()
		delete(s.pending, version)
	}
	s.entries = make(map[string]*entry[V])
}

// evict runs when the eviction scheduled for version fires.
func (s *Store[V]) evict(key string, version uint64) {
	s.mu.Lock()
	delete(s.pending, version)
	ent, ok := s.entries[key]
	removed := ok && ent.version == version
	if removed {
		delete(s.entries, key)
	}
	onEvict := s.cfg.onEvict
	s.mu.Unlock()

	if removed && onEvict != nil {
		onEvict(key)
	}
}

package source

import (
	"context"

	"github.com/google/uuid"

	"github.com/dshills/multipick/internal/cache"
	"github.com/dshills/multipick/internal/logging"
	"github.com/dshills/multipick/internal/option"
)

// DefaultKey is the cache key the full list is stored under.
const DefaultKey = "coins"

// Source resolves the candidate list through the cache and a Fetcher.
type Source struct {
	fetcher Fetcher
	store   *cache.Store[[]option.Option]
	key     string
	sample  Sampler
	logger  *logging.Logger
}

// Option configures a Source.
type Option func(*Source)

// WithKey sets the cache key.
func WithKey(key string) Option {
	return func(s *Source) {
		if key != "" {
			s.key = key
		}
	}
}

// WithSampler sets the prefix sampler.
func WithSampler(sample Sampler) Option {
	return func(s *Source) {
		if sample != nil {
			s.sample = sample
		}
	}
}

// WithMaxSample uses a random sampler bounded by n.
func WithMaxSample(n int) Option {
	return func(s *Source) {
		s.sample = RandomSampler(n, nil)
	}
}

// WithLogger sets the logger that receives fetch failures.
func WithLogger(l *logging.Logger) Option {
	return func(s *Source) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a source. Panics if fetcher or store is nil.
func New(fetcher Fetcher, store *cache.Store[[]option.Option], opts ...Option) *Source {
	if fetcher == nil {
		panic("source: New called with nil fetcher")
	}
	if store == nil {
		panic("source: New called with nil store")
	}

	s := &Source{
		fetcher: fetcher,
		store:   store,
		key:     DefaultKey,
		logger:  logging.Null(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.sample == nil {
		s.sample = RandomSampler(DefaultMaxSample, nil)
	}
	s.logger = s.logger.WithComponent("source")
	return s
}

// Key returns the cache key.
func (s *Source) Key() string {
	return s.key
}

// Resolve serves a sample of the cached list when one is live, and
// fetches otherwise.
func (s *Source) Resolve(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return Result{Status: StatusCanceled, Err: err}
	}
	if full, ok := s.store.Get(s.key); ok {
		s.logger.Debug("serving %d cached options", len(full))
		return Result{Status: StatusCached, Options: prefix(full, s.sample)}
	}
	return s.Fetch(ctx)
}

// Fetch retrieves the full list, caches it, and serves a sample of it.
// On failure it falls back to the live cached list. Fetch never panics on
// fetcher errors and reports them through the logger and Result.Err.
func (s *Source) Fetch(ctx context.Context) Result {
	id := uuid.NewString()
	log := s.logger.WithField("request", id)

	full, err := s.fetcher.Fetch(ctx)

	if ctxErr := ctx.Err(); ctxErr != nil {
		log.Debug("discarding fetch result: %v", ctxErr)
		return Result{Status: StatusCanceled, RequestID: id, Err: ctxErr}
	}

	if err == nil {
		if full == nil {
			full = []option.Option{}
		}
		s.store.Set(s.key, option.Clone(full))
		log.Debug("fetched %d options", len(full))
		return Result{Status: StatusFresh, Options: prefix(full, s.sample), RequestID: id}
	}

	if cached, ok := s.store.Get(s.key); ok {
		log.Warn("fetch failed, serving %d cached options: %v", len(cached), err)
		return Result{Status: StatusCached, Options: prefix(cached, s.sample), RequestID: id, Err: err}
	}

	log.Error("fetching option list: %v", err)
	return Result{Status: StatusUnavailable, RequestID: id, Err: err}
}

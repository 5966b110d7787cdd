package app

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/dshills/multipick/internal/cache"
	"github.com/dshills/multipick/internal/config"
	"github.com/dshills/multipick/internal/logging"
	"github.com/dshills/multipick/internal/option"
	"github.com/dshills/multipick/internal/selection"
	"github.com/dshills/multipick/internal/source"
)

// Option configures an Application.
type Option func(*Application)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *logging.Logger) Option {
	return func(a *Application) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithFetcher replaces the HTTP fetcher built from the source config.
func WithFetcher(f source.Fetcher) Option {
	return func(a *Application) {
		a.fetcher = f
	}
}

// WithSampler replaces the random prefix sampler.
func WithSampler(s source.Sampler) Option {
	return func(a *Application) {
		a.sampler = s
	}
}

// WithValues registers a callback for every selection notification.
func WithValues(fn selection.ValuesFunc) Option {
	return func(a *Application) {
		a.hook = fn
	}
}

// WithCacheOptions passes extra options to the cache store, after the TTL
// taken from the config.
func WithCacheOptions(opts ...cache.Option) Option {
	return func(a *Application) {
		a.cacheOpts = append(a.cacheOpts, opts...)
	}
}

// Application wires the cache store, option source and selection engine
// to a terminal.
type Application struct {
	cfg    config.Config
	logger *logging.Logger

	fetcher   source.Fetcher
	sampler   source.Sampler
	cacheOpts []cache.Option
	hook      selection.ValuesFunc

	store  *cache.Store[[]option.Option]
	source *source.Source
	engine *selection.Engine
	reset  selection.ResetHandle

	ctx          context.Context
	cancel       context.CancelFunc
	running      atomic.Bool
	shutdownOnce sync.Once

	// Owned by the event loop goroutine.
	ui uiState
}

// New creates an application from a validated config.
func New(cfg config.Config, opts ...Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &InitError{Component: "config", Err: err}
	}

	a := &Application{
		cfg:    cfg,
		logger: logging.Null(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.WithComponent("app")

	storeOpts := append([]cache.Option{cache.WithTTL(cfg.Source.CacheTTL)}, a.cacheOpts...)
	a.store = cache.New[[]option.Option](storeOpts...)

	if a.fetcher == nil {
		a.fetcher = source.NewHTTPFetcher(cfg.Source.Endpoint,
			source.WithTimeout(cfg.Source.Timeout),
			source.WithMaxBody(cfg.Source.MaxBody),
		)
	}

	srcOpts := []source.Option{
		source.WithKey(cfg.Source.CacheKey),
		source.WithMaxSample(cfg.Source.MaxSample),
		source.WithLogger(a.logger),
	}
	if a.sampler != nil {
		srcOpts = append(srcOpts, source.WithSampler(a.sampler))
	}
	a.source = source.New(a.fetcher, a.store, srcOpts...)

	a.engine = selection.NewQuiet(nil, selection.Config{
		Initial:    bareOptions(cfg.Select.Picked),
		Limit:      cfg.Select.Limit,
		Query:      cfg.Select.Query,
		InputAttrs: map[string]string{"placeholder": cfg.Select.Placeholder},
	}, a.values)
	a.reset = a.engine.Handle()
	a.ctx, a.cancel = context.WithCancel(context.Background())
	a.ui = newUIState()

	a.engine.Announce()
	return a, nil
}

// values is the engine's ValuesFunc.
func (a *Application) values(selected, remaining []option.Option) {
	if a.logger.Enabled(logging.LevelDebug) {
		a.logger.Debug("values: %d selected [%s], %d remaining",
			len(selected), strings.Join(option.Labels(selected), ", "), len(remaining))
	}
	if a.hook != nil {
		a.hook(selected, remaining)
	}
}

// Engine returns the selection engine.
func (a *Application) Engine() *selection.Engine {
	return a.engine
}

// Source returns the option source.
func (a *Application) Source() *source.Source {
	return a.source
}

// ResetHandle returns the reset capability of the picker.
func (a *Application) ResetHandle() selection.ResetHandle {
	return a.reset
}

// IsRunning reports whether Run is active.
func (a *Application) IsRunning() bool {
	return a.running.Load()
}

// Shutdown cancels any outstanding fetch, ends a running event loop and
// closes the cache store. Safe to call more than once.
func (a *Application) Shutdown() {
	a.shutdownOnce.Do(func() {
		a.logger.Debug("shutting down")
		a.cancel()
		a.store.Close()
	})
}

// apply installs a resolved option list.
func (a *Application) apply(res source.Result) {
	switch res.Status {
	case source.StatusFresh, source.StatusCached:
		a.engine.SetOptions(res.Options)
		a.logger.Info("loaded %d options (%s)", len(res.Options), res.Status)
	case source.StatusUnavailable:
		a.logger.Warn("no options available: %v", res.Err)
	}
}

// resolved replaces bare configured picks with the matching options from
// the loaded list.
func (a *Application) resolved(selected []option.Option) []option.Option {
	all := a.engine.Options()
	out := make([]option.Option, len(selected))
	for i, s := range selected {
		if found, ok := option.Find(all, s.Label); ok {
			out[i] = found
			continue
		}
		out[i] = s
	}
	return out
}

// bareOptions builds label-only options for configured picks.
func bareOptions(labels []string) []option.Option {
	out := make([]option.Option, 0, len(labels))
	for _, l := range labels {
		out = append(out, option.New(l, ""))
	}
	return out
}

package app

import (
	"context"
	"fmt"

	"github.com/dshills/multipick/internal/option"
)

// List resolves the option list once and returns the configured selection
// and the candidates left under the configured query. Picks whose label
// is not in the list are kept as bare labels and logged.
func (a *Application) List(ctx context.Context) (selected, remaining []option.Option, err error) {
	ctx, stop := a.bind(ctx)
	defer stop()

	res := a.source.Resolve(ctx)
	if !res.OK() {
		cause := res.Err
		if cause == nil {
			cause = ctx.Err()
		}
		if cause == nil {
			return nil, nil, fmt.Errorf("%w: %s", ErrUnavailable, res.Status)
		}
		return nil, nil, fmt.Errorf("%w: %s: %w", ErrUnavailable, res.Status, cause)
	}
	a.apply(res)

	selected = a.resolved(a.engine.Selected())
	for _, s := range selected {
		if s.Value == "" {
			a.logger.Warn("picked label %q is not in the option list", s.Label)
		}
	}
	return selected, a.engine.Candidates(), nil
}

// bind returns a context canceled by either ctx or Shutdown.
func (a *Application) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(a.ctx, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

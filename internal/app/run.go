package app

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/multipick/internal/option"
	"github.com/dshills/multipick/internal/source"
	"github.com/dshills/multipick/internal/term"
)

const helpLine = "enter select · tab chips · del remove · ctrl-r reset · esc done"

// stopEvent wakes the event loop when the run context ends.
type stopEvent struct{}

type uiState struct {
	view      *term.View
	status    string
	highlight int
	focus     int
}

func newUIState() uiState {
	return uiState{
		view:   term.NewView(),
		status: "loading options...",
		focus:  -1,
	}
}

// Run shows the picker on t until the user quits, ctx ends or Shutdown is
// called, and returns the final selection. The option list is resolved in
// the background; the picker is usable with its configured picks while it
// loads.
func (a *Application) Run(ctx context.Context, t *term.Terminal) ([]option.Option, error) {
	if !a.running.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if a.ctx.Err() != nil {
		return nil, ErrShutdown
	}

	if err := t.Init(); err != nil {
		return nil, &InitError{Component: "terminal", Err: err}
	}
	defer t.Shutdown()

	ctx, stop := a.bind(ctx)
	defer stop()
	unwatch := context.AfterFunc(ctx, func() {
		_ = t.PostInterrupt(stopEvent{})
	})
	defer unwatch()

	go func() {
		res := a.source.Resolve(ctx)
		if res.Status == source.StatusCanceled {
			return
		}
		_ = t.PostInterrupt(res)
	}()

	a.render(t)
	for {
		ev := t.PollEvent()
		if ev == nil {
			return a.resolved(a.engine.Selected()), nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			t.Sync()
		case *tcell.EventInterrupt:
			switch data := ev.Data().(type) {
			case source.Result:
				a.loaded(data)
			case stopEvent:
				if a.ctx.Err() != nil {
					return a.resolved(a.engine.Selected()), ErrShutdown
				}
				return a.resolved(a.engine.Selected()), ctx.Err()
			}
		case *tcell.EventKey:
			if err := a.handleKey(ev); err != nil {
				a.logger.Debug("leaving picker: %v", err)
				return a.resolved(a.engine.Selected()), nil
			}
		}
		a.render(t)
	}
}

// loaded applies a resolved list and reports it on the status line.
func (a *Application) loaded(res source.Result) {
	a.apply(res)
	switch res.Status {
	case source.StatusFresh:
		a.ui.status = ""
	case source.StatusCached:
		a.ui.status = "showing cached options"
	case source.StatusUnavailable:
		a.ui.status = "options unavailable: " + errText(res.Err)
	}
	a.clampHighlight()
}

func (a *Application) render(t *term.Terminal) {
	status := a.ui.status
	if status == "" {
		status = helpLine
	}
	a.ui.view.Render(t, term.Frame{
		Selected:    a.engine.Selected(),
		Candidates:  a.engine.Candidates(),
		Query:       a.engine.Query(),
		Placeholder: a.engine.InputAttrs()["placeholder"],
		Limit:       a.engine.Limit(),
		Highlight:   a.ui.highlight,
		Focus:       a.ui.focus,
		Status:      status,
	})
}

func errText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

package app

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// handleKey applies one key press. Returns ErrQuit when the picker should
// close.
func (a *Application) handleKey(ev *tcell.EventKey) error {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return ErrQuit
	case tcell.KeyCtrlR:
		a.reset.CleanValues()
		a.ui.focus = -1
		a.ui.highlight = 0
		a.ui.status = "selection reset"
	case tcell.KeyUp:
		a.moveHighlight(-1)
	case tcell.KeyDown:
		a.moveHighlight(1)
	case tcell.KeyTab:
		a.cycleFocus(1)
	case tcell.KeyBacktab:
		a.cycleFocus(-1)
	case tcell.KeyEnter:
		a.enter()
	case tcell.KeyDelete:
		a.removeFocused()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.backspace()
	case tcell.KeyRune:
		a.ui.focus = -1
		a.engine.SetQuery(a.engine.Query() + string(ev.Rune()))
		a.ui.highlight = 0
	}
	return nil
}

func (a *Application) moveHighlight(delta int) {
	a.ui.focus = -1
	a.ui.highlight += delta
	a.clampHighlight()
}

func (a *Application) clampHighlight() {
	n := len(a.engine.Candidates())
	if a.ui.highlight >= n {
		a.ui.highlight = n - 1
	}
	if a.ui.highlight < 0 {
		a.ui.highlight = 0
	}
}

// cycleFocus moves chip focus. Stepping past either end returns focus to
// the search input.
func (a *Application) cycleFocus(delta int) {
	n := len(a.engine.Selected())
	if n == 0 {
		a.ui.focus = -1
		return
	}

	switch {
	case a.ui.focus < 0 && delta > 0:
		a.ui.focus = 0
	case a.ui.focus < 0:
		a.ui.focus = n - 1
	default:
		a.ui.focus += delta
	}
	if a.ui.focus < 0 || a.ui.focus >= n {
		a.ui.focus = -1
	}
}

func (a *Application) enter() {
	if a.ui.focus >= 0 {
		a.removeFocused()
		return
	}

	candidates := a.engine.Candidates()
	if len(candidates) == 0 {
		a.ui.status = "no matching options"
		return
	}
	a.clampHighlight()
	opt := candidates[a.ui.highlight]

	if a.engine.Select(opt) {
		a.ui.status = "selected " + opt.Label
		a.clampHighlight()
		return
	}
	if a.engine.Full() {
		a.ui.status = fmt.Sprintf("limit of %d reached", a.engine.Limit())
	}
}

func (a *Application) removeFocused() {
	selected := a.engine.Selected()
	if a.ui.focus < 0 || a.ui.focus >= len(selected) {
		return
	}

	opt := selected[a.ui.focus]
	if a.engine.Remove(opt) {
		a.ui.status = "removed " + opt.Label
	}
	if a.ui.focus >= len(selected)-1 {
		a.ui.focus = len(selected) - 2
	}
	a.clampHighlight()
}

func (a *Application) backspace() {
	if a.ui.focus >= 0 {
		a.removeFocused()
		return
	}

	q := []rune(a.engine.Query())
	if len(q) == 0 {
		return
	}
	a.engine.SetQuery(string(q[:len(q)-1]))
	a.ui.highlight = 0
}

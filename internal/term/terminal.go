package term

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Terminal draws onto a tcell screen.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a terminal backed by the controlling TTY.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

// NewTerminalWithScreen wraps an existing screen, such as a simulation
// screen in tests.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// Init initializes the screen.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnablePaste()
	return nil
}

// Shutdown restores the terminal. PollEvent returns nil afterwards.
func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

// Size returns the screen size in cells.
func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

// Clear clears the back buffer.
func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
}

// Show flushes the back buffer to the screen.
func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

// Sync redraws the whole screen, used after a resize.
func (t *Terminal) Sync() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Sync()
}

// ShowCursor places the cursor.
func (t *Terminal) ShowCursor(x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.ShowCursor(x, y)
}

// HideCursor hides the cursor.
func (t *Terminal) HideCursor() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.HideCursor()
}

// Beep rings the bell.
func (t *Terminal) Beep() {
	t.mu.Lock()
	defer t.mu.Unlock()

	_ = t.screen.Beep() // best-effort; terminal may not support beep
}

// DrawText writes text at (x, y) without passing maxX and returns the
// column after the last cell written. Wide graphemes that would cross
// maxX are not drawn.
func (t *Terminal) DrawText(x, y, maxX int, text string, style tcell.Style) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if w == 0 {
			continue
		}
		if x+w > maxX {
			break
		}
		runes := g.Runes()
		t.screen.SetContent(x, y, runes[0], runes[1:], style)
		x += w
	}
	return x
}

// FillRow paints the rest of row y from x with blanks in style.
func (t *Terminal) FillRow(x, y, maxX int, style tcell.Style) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for ; x < maxX; x++ {
		t.screen.SetContent(x, y, ' ', nil, style)
	}
}

// PollEvent blocks for the next event. Returns nil after Shutdown.
func (t *Terminal) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostInterrupt delivers data to the event loop as a *tcell.EventInterrupt.
func (t *Terminal) PostInterrupt(data any) error {
	return t.screen.PostEvent(tcell.NewEventInterrupt(data))
}

// Row returns the runes drawn on row y, for tests and snapshots.
func (t *Terminal) Row(y int) string {
	t.mu.Lock()
	defer t.mu.Unlock()

	w, _ := t.screen.Size()
	row := make([]rune, 0, w)
	for x := 0; x < w; {
		mainc, combc, _, width := t.screen.GetContent(x, y)
		if mainc == 0 {
			mainc = ' '
		}
		row = append(row, mainc)
		row = append(row, combc...)
		if width < 1 {
			width = 1
		}
		x += width
	}
	return string(row)
}

// TextWidth returns the display width of text in cells.
func TextWidth(text string) int {
	return uniseg.StringWidth(text)
}

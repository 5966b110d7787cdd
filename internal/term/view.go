package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/multipick/internal/option"
)

// Frame is everything the view needs to draw one screen.
type Frame struct {
	Selected    []option.Option
	Candidates  []option.Option
	Query       string
	Placeholder string
	Limit       int

	// Highlight indexes Candidates. Focus indexes Selected, -1 for none.
	Highlight int
	Focus     int

	Status string
}

var (
	styleChip      = tcell.StyleDefault.Reverse(true)
	styleChipFocus = tcell.StyleDefault.Reverse(true).Bold(true).Underline(true)
	stylePrompt    = tcell.StyleDefault.Bold(true)
	stylePlacehold = tcell.StyleDefault.Dim(true)
	styleHighlight = tcell.StyleDefault.Reverse(true)
	styleDim       = tcell.StyleDefault.Dim(true)
)

// View renders frames and remembers the list scroll offset.
type View struct {
	offset int
}

// NewView creates a view.
func NewView() *View {
	return &View{}
}

// Offset returns the index of the first visible candidate.
func (v *View) Offset() int {
	return v.offset
}

// Render draws f onto t and shows it.
func (v *View) Render(t *Terminal, f Frame) {
	width, height := t.Size()
	t.Clear()
	if width <= 0 || height <= 0 {
		t.Show()
		return
	}

	cursorX := v.renderInput(t, f, width)
	if height > 1 {
		v.renderSummary(t, f, width)
	}
	if height > 3 {
		v.renderList(t, f, width, 2, height-1)
	}
	if height > 2 {
		t.FillRow(0, height-1, width, styleDim)
		t.DrawText(0, height-1, width, f.Status, styleDim)
	}

	if f.Focus < 0 && cursorX < width {
		t.ShowCursor(cursorX, 0)
	} else {
		t.HideCursor()
	}
	t.Show()
}

// renderInput draws the chips and query on row 0 and returns the cursor column.
func (v *View) renderInput(t *Terminal, f Frame, width int) int {
	x := 0
	for i, o := range f.Selected {
		style := styleChip
		if i == f.Focus {
			style = styleChipFocus
		}
		x = t.DrawText(x, 0, width, " "+o.Label+" ×", style)
		x = t.DrawText(x, 0, width, " ", tcell.StyleDefault)
	}

	x = t.DrawText(x, 0, width, "> ", stylePrompt)
	if f.Query == "" && len(f.Selected) == 0 && f.Placeholder != "" {
		t.DrawText(x, 0, width, f.Placeholder, stylePlacehold)
		return x
	}
	return t.DrawText(x, 0, width, f.Query, tcell.StyleDefault)
}

func (v *View) renderSummary(t *Terminal, f Frame, width int) {
	summary := fmt.Sprintf("%d selected", len(f.Selected))
	if f.Limit > 0 {
		summary = fmt.Sprintf("%d/%d selected", len(f.Selected), f.Limit)
	}
	summary += fmt.Sprintf(" · %d available", len(f.Candidates))
	t.DrawText(0, 1, width, summary, styleDim)
}

// renderList draws candidates on rows [top, bottom).
func (v *View) renderList(t *Terminal, f Frame, width, top, bottom int) {
	rows := bottom - top
	v.scroll(f.Highlight, len(f.Candidates), rows)

	for row := 0; row < rows; row++ {
		idx := v.offset + row
		if idx >= len(f.Candidates) {
			break
		}
		o := f.Candidates[idx]
		y := top + row

		style := tcell.StyleDefault
		if idx == f.Highlight && f.Focus < 0 {
			style = styleHighlight
			t.FillRow(0, y, width, style)
		}
		x := t.DrawText(0, y, width, "  "+o.Label, style)
		if o.Value != "" {
			t.DrawText(x, y, width, "  "+o.Value, style.Dim(true))
		}
	}
}

// scroll keeps highlight inside the visible window of rows.
func (v *View) scroll(highlight, count, rows int) {
	if rows <= 0 || count <= rows {
		v.offset = 0
		return
	}
	if highlight < v.offset {
		v.offset = highlight
	}
	if highlight >= v.offset+rows {
		v.offset = highlight - rows + 1
	}
	if maxOffset := count - rows; v.offset > maxOffset {
		v.offset = maxOffset
	}
	if v.offset < 0 {
		v.offset = 0
	}
}

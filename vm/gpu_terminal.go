package vm

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// TerminalSink renders a GPU's bounded character grid directly onto real
// terminal cells via tcell, one cell per codepoint. It is the GPU sink's
// natural home for a low-level cell-grid library: the GPU already models a
// bounded grid with a cursor, so no widget layer sits between it and the
// terminal.
type TerminalSink struct {
	screen tcell.Screen
	style  tcell.Style
}

// NewTerminalSink initializes and starts a tcell screen over the whole
// terminal; the GPU's grid is drawn from its top-left corner. Callers must
// call Close when done to restore the terminal.
func NewTerminalSink() (*TerminalSink, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return &TerminalSink{
		screen: screen,
		style:  tcell.StyleDefault,
	}, nil
}

// Attach wires this sink as gpu's refresh callback.
func (t *TerminalSink) Attach(gpu *GPU) {
	gpu.Sink = t.renderGrid(gpu)
}

// renderGrid closes over gpu so Refresh's frame callback can draw cell-by-
// cell instead of re-parsing the already-rendered string.
func (t *TerminalSink) renderGrid(gpu *GPU) func(string) {
	return func(string) {
		t.screen.Clear()
		for y := 0; y < gpu.Height; y++ {
			for x := 0; x < gpu.Width; x++ {
				r := gpu.cells[y*gpu.Width+x]
				if !unicode.IsPrint(r) {
					r = ' '
				}
				t.screen.SetContent(x, y, r, nil, t.style)
			}
		}
		t.screen.ShowCursor(gpu.curX, gpu.curY)
		t.screen.Show()
	}
}

// Close restores the terminal to its prior state.
func (t *TerminalSink) Close() {
	t.screen.Fini()
}

package vm

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"
)

// GPU is a bounded codepoint grid with a cursor, written to by the `out`
// and `seek` operations and rendered through Refresh at a rate-limited
// interval (or with force=true, unconditionally).
type GPU struct {
	Width, Height int
	cells         []rune
	curX, curY    int
	refreshHz     float64
	lastRefresh   time.Time
	Sink          func(frame string)
}

// NewGPU builds a blank width x height grid (cells start as space) with the
// given refresh rate in Hz. 80x24 matches the reference implementation's
// hardcoded default; callers needing another size pass it explicitly.
func NewGPU(width, height int, refreshHz float64) *GPU {
	g := &GPU{
		Width:     width,
		Height:    height,
		cells:     make([]rune, width*height),
		refreshHz: refreshHz,
	}
	for i := range g.cells {
		g.cells[i] = ' '
	}
	return g
}

func (g *GPU) refreshInterval() time.Duration {
	if g.refreshHz <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / g.refreshHz)
}

// normalize wraps curX/curY back into [0,width) x [0,height): an x overflow
// carries into y via divmod, and y itself wraps modulo height — so writing
// far past the last row wraps around to the top rather than faulting.
func (g *GPU) normalize() {
	if g.Width <= 0 {
		return
	}
	carry := g.curX / g.Width
	rem := g.curX % g.Width
	if rem < 0 {
		rem += g.Width
		carry--
	}
	g.curX = rem
	g.curY += carry
	if g.Height > 0 {
		g.curY %= g.Height
		if g.curY < 0 {
			g.curY += g.Height
		}
	}
}

// Put writes one codepoint at the cursor and advances it by one column,
// wrapping as needed. Codepoints beyond the representable Unicode range
// fault.
func (g *GPU) Put(n int64) Fault {
	if n < 0 || n > 0x10FFFF {
		return &GPUFault{Reason: fmt.Sprintf("codepoint %d out of range", n)}
	}
	idx := g.curY*g.Width + g.curX
	if idx >= 0 && idx < len(g.cells) {
		g.cells[idx] = rune(n)
	}
	g.curX++
	g.normalize()
	return nil
}

// Seek repositions the cursor, faulting if either coordinate is out of
// bounds.
func (g *GPU) Seek(x, y int64) Fault {
	if x < 0 || x >= int64(g.Width) || y < 0 || y >= int64(g.Height) {
		return &GPUFault{Reason: fmt.Sprintf("seek (%d,%d) out of bounds", x, y)}
	}
	g.curX = int(x)
	g.curY = int(y)
	return nil
}

// Refresh renders the grid through Sink, either unconditionally (force) or
// only once refreshInterval has elapsed since the last render.
func (g *GPU) Refresh(force bool) {
	if !force {
		if interval := g.refreshInterval(); interval > 0 && time.Since(g.lastRefresh) < interval {
			return
		}
	}
	g.lastRefresh = time.Now()
	if g.Sink != nil {
		g.Sink(g.render())
	}
}

// StdoutSink writes a refreshed frame to output followed by a blank line,
// matching the reference implementation's plain sys.stdout.write behavior.
// This is the GPU's default sink; a terminal front-end (TerminalSink)
// replaces it when the caller wants cell-addressed rendering instead.
func StdoutSink(output io.Writer) func(string) {
	return func(frame string) {
		fmt.Fprint(output, frame)
		fmt.Fprintln(output)
	}
}

func (g *GPU) render() string {
	var sb strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			r := g.cells[y*g.Width+x]
			if unicode.IsPrint(r) {
				sb.WriteRune(r)
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

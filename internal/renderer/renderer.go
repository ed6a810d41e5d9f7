package renderer

import (
	"github.com/rivo/uniseg"

	"github.com/dshills/vimdent/internal/engine/buffer"
	"github.com/dshills/vimdent/internal/renderer/backend"
)

// BufferReader provides read access to buffer content.
type BufferReader interface {
	// LineText returns the text content of a line (0-indexed).
	LineText(line uint32) string

	// LineCount returns the total number of lines in the buffer.
	LineCount() uint32
}

// Span is a selected range in line/byte-column coordinates.
type Span struct {
	Start, End buffer.Point
}

func (s Span) contains(p buffer.Point) bool {
	return !pointLess(p, s.Start) && pointLess(p, s.End)
}

func pointLess(a, b buffer.Point) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}

// Frame is the state one redraw shows.
type Frame struct {
	Buffer     BufferReader
	Cursor     buffer.Point
	Selections []Span
	TabSize    int

	// StatusLeft and StatusRight are drawn at either end of the status line.
	StatusLeft  string
	StatusRight string
}

// Renderer draws frames to a backend, scrolling to keep the cursor in view.
type Renderer struct {
	be        backend.Backend
	top, left int
}

// New creates a renderer drawing to be.
func New(be backend.Backend) *Renderer {
	return &Renderer{be: be}
}

// Scroll returns the first visible line and the first visible cell column.
func (r *Renderer) Scroll() (top, left int) {
	return r.top, r.left
}

// Draw renders f. The last screen row is the status line.
func (r *Renderer) Draw(f Frame) {
	width, height := r.be.Size()
	r.be.Clear()
	if width <= 0 || height <= 0 {
		r.be.Show()
		return
	}

	tab := f.TabSize
	if tab <= 0 {
		tab = 1
	}
	rows := height - 1

	cursorLine := int(f.Cursor.Line)
	cursorText := f.Buffer.LineText(f.Cursor.Line)
	col := int(f.Cursor.Column)
	if col > len(cursorText) {
		col = len(cursorText)
	}
	cursorCell := DisplayWidth(cursorText[:col], tab)
	r.scrollTo(cursorLine, cursorCell, rows, width)

	for row := 0; row < rows; row++ {
		line := r.top + row
		if line >= int(f.Buffer.LineCount()) {
			break
		}
		r.drawLine(row, uint32(line), f.Buffer.LineText(uint32(line)), f.Selections, tab, width)
	}

	r.drawStatus(height-1, width, f.StatusLeft, f.StatusRight)

	if rows > 0 {
		r.be.ShowCursor(cursorCell-r.left, cursorLine-r.top)
	} else {
		r.be.HideCursor()
	}
	r.be.Show()
}

func (r *Renderer) scrollTo(line, cell, rows, width int) {
	switch {
	case line < r.top:
		r.top = line
	case rows > 0 && line >= r.top+rows:
		r.top = line - rows + 1
	}
	switch {
	case cell < r.left:
		r.left = cell
	case cell >= r.left+width:
		r.left = cell - width + 1
	}
}

// drawLine draws one line grapheme by grapheme. Tabs fill tab cells.
func (r *Renderer) drawLine(row int, line uint32, text string, sels []Span, tab, width int) {
	cell := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		start, _ := g.Positions()
		runes := g.Runes()

		style := backend.StyleDefault
		p := buffer.Point{Line: line, Column: uint32(start)}
		for _, s := range sels {
			if s.contains(p) {
				style = backend.StyleSelection
				break
			}
		}

		w := g.Width()
		if runes[0] == '\t' {
			w = tab
		}

		x := cell - r.left
		switch {
		case x < 0 || x+w > width:
			// Partly scrolled off; leave the cells blank.
		case runes[0] == '\t':
			for i := 0; i < w; i++ {
				r.be.SetContent(x+i, row, ' ', nil, style)
			}
		case w > 0:
			r.be.SetContent(x, row, runes[0], runes[1:], style)
		}
		cell += w
	}
}

func (r *Renderer) drawStatus(row, width int, left, right string) {
	for x := 0; x < width; x++ {
		r.be.SetContent(x, row, ' ', nil, backend.StyleStatus)
	}
	x := r.drawText(1, row, width, left)
	if rw := uniseg.StringWidth(right); width-1-rw > x {
		r.drawText(width-1-rw, row, width, right)
	}
}

// drawText draws s in the status style from x and returns the next free cell.
func (r *Renderer) drawText(x, row, width int, s string) int {
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if x+w > width {
			break
		}
		runes := g.Runes()
		if w > 0 {
			r.be.SetContent(x, row, runes[0], runes[1:], backend.StyleStatus)
		}
		x += w
	}
	return x
}

// DisplayWidth returns the number of cells s occupies. A tab occupies
// tabSize cells, matching the indent column rule.
func DisplayWidth(s string, tabSize int) int {
	width := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		if g.Runes()[0] == '\t' {
			width += tabSize
			continue
		}
		width += g.Width()
	}
	return width
}

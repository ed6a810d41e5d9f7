package backend

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Cell is one screen cell recorded by NullBackend.
type Cell struct {
	Rune  rune
	Comb  []rune
	Style Style
}

// NullBackend is an in-memory backend for testing.
type NullBackend struct {
	width, height int
	cells         [][]Cell
	cursorX       int
	cursorY       int
	cursorVisible bool
	events        chan Event
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan Event, 100),
	}
}

func (b *NullBackend) Init() error {
	b.Clear()
	return nil
}

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	return b.width, b.height
}

// SetContent records the grapheme. Like a terminal, a wide grapheme
// also covers the next cell, which is left with a zero rune.
func (b *NullBackend) SetContent(x, y int, mainc rune, combc []rune, style Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y][x] = Cell{Rune: mainc, Comb: combc, Style: style}
	if uniseg.StringWidth(string(append([]rune{mainc}, combc...))) > 1 && x+1 < b.width {
		b.cells[y][x+1] = Cell{Style: style}
	}
}

func (b *NullBackend) Clear() {
	b.cells = make([][]Cell, b.height)
	for y := range b.cells {
		b.cells[y] = make([]Cell, b.width)
		for x := range b.cells[y] {
			b.cells[y][x] = Cell{Rune: ' '}
		}
	}
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.cursorX = x
	b.cursorY = y
	b.cursorVisible = true
}

func (b *NullBackend) HideCursor() {
	b.cursorVisible = false
}

func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

// Interrupt queues an EventInterrupt. It never blocks; the event is
// dropped if the queue is full.
func (b *NullBackend) Interrupt(data any) {
	b.PostEvent(Event{Type: EventInterrupt, Data: data})
}

// PostEvent queues an event for PollEvent.
func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
	}
}

// Cell returns the cell at x, y.
func (b *NullBackend) Cell(x, y int) Cell {
	if x >= 0 && x < b.width && y >= 0 && y < b.height {
		return b.cells[y][x]
	}
	return Cell{}
}

// Row returns row y as text, with trailing blanks trimmed.
func (b *NullBackend) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range b.cells[y] {
		if c.Rune == 0 {
			continue
		}
		sb.WriteRune(c.Rune)
		for _, r := range c.Comb {
			sb.WriteRune(r)
		}
	}
	return strings.TrimRight(sb.String(), " ")
}

// CursorPosition returns the current cursor position for testing.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	return b.cursorX, b.cursorY, b.cursorVisible
}

// Resize simulates a terminal resize and queues an EventResize.
func (b *NullBackend) Resize(width, height int) {
	b.width = width
	b.height = height
	b.Clear()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}

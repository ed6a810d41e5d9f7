// Package backend provides terminal backend abstraction for the renderer.
package backend

import "github.com/dshills/vimdent/internal/input/key"

// Style selects how a cell is drawn.
type Style uint8

const (
	// StyleDefault is plain text.
	StyleDefault Style = iota
	// StyleSelection marks selected text.
	StyleSelection
	// StyleStatus is the status line.
	StyleStatus
)

// EventType identifies the type of terminal event.
type EventType int

const (
	EventNone EventType = iota
	EventKey
	EventResize
	// EventInterrupt wakes the event loop from another goroutine.
	EventInterrupt
)

// Event represents a terminal event.
type Event struct {
	Type EventType

	// Key is set for EventKey.
	Key key.Event

	// Width and Height are set for EventResize.
	Width, Height int

	// Data is the payload of an EventInterrupt.
	Data any
}

// Backend defines the interface for terminal/display backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// SetContent sets the cell at x, y to a grapheme: a main rune plus
	// combining runes. Positions outside the terminal are ignored.
	SetContent(x, y int, mainc rune, combc []rune, style Style)

	// Clear clears the entire screen.
	Clear()

	// Show flushes pending changes to the display.
	Show()

	// ShowCursor positions and displays the cursor.
	ShowCursor(x, y int)

	// HideCursor hides the cursor.
	HideCursor()

	// PollEvent waits for and returns the next event.
	PollEvent() Event

	// Interrupt posts an EventInterrupt carrying data.
	Interrupt(data any)
}

package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Parse parses a specification such as "tab", "shift+tab", "ctrl+z" or "a".
// Names are case-insensitive; a lone upper-case letter implies shift.
func Parse(spec string) (Event, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Event{}, ErrEmptySpec
	}
	if spec == "+" {
		return NewRuneEvent('+', ModNone), nil
	}

	parts := strings.Split(spec, "+")
	keyPart := parts[len(parts)-1]
	mods := ModNone
	// "ctrl++" names the plus key.
	if keyPart == "" && len(parts) > 2 && parts[len(parts)-2] == "" {
		keyPart = "+"
		parts = parts[:len(parts)-1]
	}

	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(strings.ToLower(strings.TrimSpace(p)))
		if mod == ModNone {
			return Event{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidSpec, p, spec)
		}
		mods |= mod
	}

	if k := KeyFromName(strings.ToLower(keyPart)); k != KeyNone {
		return NewSpecialEvent(k, mods), nil
	}
	if strings.EqualFold(keyPart, "space") {
		return NewRuneEvent(' ', mods), nil
	}

	runes := []rune(keyPart)
	if len(runes) != 1 {
		return Event{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidSpec, keyPart, spec)
	}
	r := runes[0]
	if unicode.IsUpper(r) {
		mods |= ModShift
		r = unicode.ToLower(r)
	}
	return NewRuneEvent(r, mods), nil
}

// ParseSequence parses a list of specifications into a key sequence.
func ParseSequence(specs []string) ([]Event, error) {
	if len(specs) == 0 {
		return nil, ErrEmptySpec
	}
	seq := make([]Event, 0, len(specs))
	for _, s := range specs {
		ev, err := Parse(s)
		if err != nil {
			return nil, err
		}
		seq = append(seq, ev)
	}
	return seq, nil
}

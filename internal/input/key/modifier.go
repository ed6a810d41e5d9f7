package key

import "strings"

// Modifier represents keyboard modifier keys.
type Modifier uint8

const (
	ModNone  Modifier = 0
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
)

// Has returns true if m contains mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// String returns the modifiers in canonical order, joined with "+".
func (m Modifier) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModSuper) {
		parts = append(parts, "super")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// ModifierFromName returns the modifier with the given name, or ModNone.
func ModifierFromName(name string) Modifier {
	switch name {
	case "shift":
		return ModShift
	case "ctrl", "control":
		return ModCtrl
	case "alt", "option":
		return ModAlt
	case "super", "cmd", "command", "meta":
		return ModSuper
	}
	return ModNone
}

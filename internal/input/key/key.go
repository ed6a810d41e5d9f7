package key

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
type Key uint16

const (
	KeyNone Key = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// KeyRune is used for character keys; the character is in Event.Rune.
	KeyRune
)

var keyNames = map[Key]string{
	KeyEscape:    "escape",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
}

var keyAliases = map[string]Key{
	"esc":       KeyEscape,
	"return":    KeyEnter,
	"cr":        KeyEnter,
	"bs":        KeyBackspace,
	"del":       KeyDelete,
	"page_up":   KeyPageUp,
	"page_down": KeyPageDown,
	"pgup":      KeyPageUp,
	"pgdn":      KeyPageDown,
}

// String returns the key's name as written in keymap files.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k == KeyRune {
		return "rune"
	}
	return "none"
}

// KeyFromName returns the key with the given lower-case name, or KeyNone.
func KeyFromName(name string) Key {
	for k, n := range keyNames {
		if n == name {
			return k
		}
	}
	if k, ok := keyAliases[name]; ok {
		return k
	}
	return KeyNone
}

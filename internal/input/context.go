package input

import "strings"

// Context is the editor state key binding conditions are evaluated against.
type Context struct {
	// Mode is the current editor mode.
	Mode string

	// FilePath is the path of the current file.
	FilePath string

	// ReadOnly indicates whether the buffer is read-only.
	ReadOnly bool

	// HasSelection indicates whether any selection is non-empty.
	HasSelection bool

	// AutoCompleteVisible indicates a completion popup is showing.
	AutoCompleteVisible bool

	// Settings backs "setting.<name>" conditions.
	Settings map[string]any
}

// NewContext creates a new input context with default values.
func NewContext() *Context {
	return &Context{
		Mode:     "insert",
		Settings: make(map[string]any),
	}
}

// Value returns the named condition value. Recognized keys are
// "auto_complete_visible", "selection_empty", "read_only", "mode",
// "file_path" and "setting.<name>".
func (c *Context) Value(key string) (any, bool) {
	switch key {
	case "auto_complete_visible":
		return c.AutoCompleteVisible, true
	case "selection_empty":
		return !c.HasSelection, true
	case "read_only":
		return c.ReadOnly, true
	case "mode":
		return c.Mode, true
	case "file_path":
		return c.FilePath, true
	}

	if name, ok := strings.CutPrefix(key, "setting."); ok {
		v, ok := c.Settings[name]
		return v, ok
	}
	return nil, false
}

// Clone returns a deep copy of the context.
func (c *Context) Clone() *Context {
	clone := *c
	if c.Settings != nil {
		clone.Settings = make(map[string]any, len(c.Settings))
		for k, v := range c.Settings {
			clone.Settings[k] = v
		}
	}
	return &clone
}

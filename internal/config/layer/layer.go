// Package layer merges settings from several sources by priority.
//
// Higher priority layers override values from lower priority layers:
// builtin defaults < user settings < workspace settings < environment
// < command-line arguments.
package layer

import (
	"time"

	"github.com/dshills/vimdent/internal/config/loader"
)

// Source indicates where a configuration layer came from.
type Source uint8

const (
	// SourceBuiltin represents built-in defaults.
	SourceBuiltin Source = iota
	// SourceUser represents the user settings file.
	SourceUser
	// SourceWorkspace represents a settings file next to the document.
	SourceWorkspace
	// SourceEnv represents VIMDENT_* environment variables.
	SourceEnv
	// SourceArgs represents command-line flags.
	SourceArgs
)

// Priorities for each source. Gaps leave room for extra layers.
const (
	PriorityBuiltin   = 0
	PriorityUser      = 100
	PriorityWorkspace = 200
	PriorityEnv       = 500
	PriorityArgs      = 600
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceBuiltin:
		return "builtin"
	case SourceUser:
		return "user"
	case SourceWorkspace:
		return "workspace"
	case SourceEnv:
		return "environment"
	case SourceArgs:
		return "arguments"
	default:
		return "unknown"
	}
}

// DefaultPriority returns the standard priority for a source.
func (s Source) DefaultPriority() int {
	switch s {
	case SourceUser:
		return PriorityUser
	case SourceWorkspace:
		return PriorityWorkspace
	case SourceEnv:
		return PriorityEnv
	case SourceArgs:
		return PriorityArgs
	default:
		return PriorityBuiltin
	}
}

// Layer represents a single configuration layer.
type Layer struct {
	// Name identifies the layer (e.g., "user", "workspace", "builtin").
	Name string

	// Priority determines merge order (higher overrides lower).
	Priority int

	// Source indicates where this layer was loaded from.
	Source Source

	// Path is the file path (if loaded from file).
	Path string

	// Data holds the configuration values.
	Data map[string]any

	// ModTime is when the layer data was last replaced.
	ModTime time.Time
}

// New creates a layer with the source's default priority.
func New(name string, source Source, data map[string]any) *Layer {
	if data == nil {
		data = make(map[string]any)
	}
	return &Layer{
		Name:     name,
		Source:   source,
		Priority: source.DefaultPriority(),
		Data:     data,
		ModTime:  time.Now(),
	}
}

// FromFile creates a layer backed by a settings file.
func FromFile(name string, source Source, path string, data map[string]any) *Layer {
	l := New(name, source, data)
	l.Path = path
	return l
}

// Clone creates a deep copy of the layer.
func (l *Layer) Clone() *Layer {
	c := *l
	c.Data = loader.Clone(l.Data)
	return &c
}

package input

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action came from a key binding.
	SourceKeyboard ActionSource = iota
	// SourceCommandLine indicates the action came from the vimdent CLI.
	SourceCommandLine
	// SourceAPI indicates the action was built in code.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceCommandLine:
		return "cli"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// Action represents a command to be executed by the dispatcher.
type Action struct {
	// Name is the command identifier, e.g. "editor.indent" or "vim_tab_press".
	Name string

	// Args contains command-specific arguments.
	Args map[string]any

	// Source indicates where this action originated.
	Source ActionSource

	// Count is the repeat count. Zero and one both run the command once.
	Count int
}

// NewAction creates an API action with the given name.
func NewAction(name string) Action {
	return Action{Name: name, Source: SourceAPI}
}

// WithCount returns a copy of the action with the specified count.
func (a Action) WithCount(count int) Action {
	a.Count = count
	return a
}

// Repeat returns how many times the action should run, at least 1.
func (a Action) Repeat() int {
	if a.Count < 1 {
		return 1
	}
	return a.Count
}

// Arg returns an argument value.
func (a Action) Arg(name string) (any, bool) {
	v, ok := a.Args[name]
	return v, ok
}

// ArgBool returns a boolean argument, false when absent or mistyped.
func (a Action) ArgBool(name string) bool {
	b, _ := a.Args[name].(bool)
	return b
}

// ArgString returns a string argument, "" when absent or mistyped.
func (a Action) ArgString(name string) string {
	s, _ := a.Args[name].(string)
	return s
}

package keymap

// Command names bound by the default keymap.
const (
	CommandIndent   = "vim_tab_press"
	CommandUnindent = "vim_shift_tab_press"
	CommandUndo     = "undo"
	CommandRedo     = "redo"
	CommandSave     = "save"
	CommandQuit     = "quit"
)

// Default returns the built-in keymap.
func Default() *Keymap {
	return &Keymap{
		Name:   "default",
		Source: "default",
		Bindings: []Binding{
			{
				Keys:    []string{"tab"},
				Command: CommandIndent,
				Context: []Condition{
					{Key: "auto_complete_visible", Operator: OpEqual, Operand: false},
				},
				Description: "Indent to the next indent stop",
			},
			{Keys: []string{"shift+tab"}, Command: CommandUnindent, Description: "Remove one indent step"},
			{Keys: []string{"ctrl+z"}, Command: CommandUndo, Description: "Undo"},
			{Keys: []string{"ctrl+y"}, Command: CommandRedo, Description: "Redo"},
			{Keys: []string{"ctrl+s"}, Command: CommandSave, Description: "Save file"},
			{Keys: []string{"ctrl+q"}, Command: CommandQuit, Description: "Quit"},
		},
	}
}

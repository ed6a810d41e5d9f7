// Package keymap binds key sequences to commands, using the structure of
// Sublime Text keymap files:
//
//	[
//	    { "keys": ["tab"], "command": "vim_tab_press",
//	      "context": [{ "key": "auto_complete_visible", "operator": "equal", "operand": false }] },
//	    { "keys": ["shift+tab"], "command": "vim_shift_tab_press" }
//	]
//
// A binding matches when its keys equal the pressed sequence and every
// context condition holds against the current input.Context. Keymaps with a
// higher priority win; within a keymap, later bindings win.
package keymap

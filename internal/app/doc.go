// Package app hosts a single document: a Session ties the buffer, cursors
// and undo history to a dispatcher, the keymaps and the settings store,
// and Run drives a session from a terminal backend.
package app

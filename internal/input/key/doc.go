// Package key models key presses and parses key specifications in the
// lower-case "modifier+key" form keymap files use, such as "tab",
// "shift+tab" and "ctrl+z".
package key

// Package config resolves the settings vimdent's commands read.
//
// Settings come from layered sources merged by priority (see package
// layer): built-in defaults, a user settings file, an optional workspace
// settings file, VIMDENT_* environment variables and command-line
// overrides. Files may be TOML, YAML, JSON / .sublime-settings or Lua
// (see package loader).
//
// The recognized keys are:
//
//	tab_size                  visual tab width (default 4)
//	vimdentation_indent_size  indent step; no default
//	vimdentation_mixed_tabs   fold space runs into tabs (default false)
//	log_level                 debug, info, warn or error (default info)
//
// Store holds the current Settings, reloads them on demand or when a
// watched file changes, and notifies subscribers.
package config

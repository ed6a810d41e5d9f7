package loader

import (
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the prefix for vimdent environment variables.
const DefaultEnvPrefix = "VIMDENT_"

// EnvLoader loads configuration from environment variables.
type EnvLoader struct {
	prefix  string
	environ func() []string
	mapping map[string]string
}

// EnvOption configures an EnvLoader.
type EnvOption func(*EnvLoader)

// WithPrefix sets the variable prefix.
func WithPrefix(prefix string) EnvOption {
	return func(l *EnvLoader) {
		l.prefix = prefix
	}
}

// WithEnviron replaces os.Environ, mainly for tests.
func WithEnviron(environ func() []string) EnvOption {
	return func(l *EnvLoader) {
		l.environ = environ
	}
}

// WithMapping maps a variable name (without prefix) to a settings key.
func WithMapping(envKey, settingsKey string) EnvOption {
	return func(l *EnvLoader) {
		l.mapping[envKey] = settingsKey
	}
}

// NewEnvLoader creates an environment loader with the standard mappings.
func NewEnvLoader(opts ...EnvOption) *EnvLoader {
	l := &EnvLoader{
		prefix:  DefaultEnvPrefix,
		environ: os.Environ,
		mapping: map[string]string{
			"TAB_SIZE":    "tab_size",
			"INDENT_SIZE": "vimdentation_indent_size",
			"MIXED_TABS":  "vimdentation_mixed_tabs",
			"LOG_LEVEL":   "log_level",
		},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads every prefixed variable. Returns nil, nil if none are set.
func (l *EnvLoader) Load() (map[string]any, error) {
	var config map[string]any
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, l.prefix) {
			continue
		}
		key := l.envToKey(strings.TrimPrefix(name, l.prefix))
		if key == "" {
			continue
		}
		if config == nil {
			config = make(map[string]any)
		}
		config[key] = ParseValue(value)
	}
	return config, nil
}

func (l *EnvLoader) envToKey(name string) string {
	if key, ok := l.mapping[name]; ok {
		return key
	}
	return strings.ToLower(name)
}

// ParseValue converts a variable's text to int64, float64, bool or string.
// Integers are tried first so that "1" and "0" stay numbers.
func ParseValue(s string) any {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	switch strings.ToLower(s) {
	case "true", "yes", "on":
		return true
	case "false", "no", "off":
		return false
	}
	return s
}

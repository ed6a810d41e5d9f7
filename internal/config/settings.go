package config

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/vimdent/internal/indent"
)

// Setting keys.
const (
	KeyTabSize    = "tab_size"
	KeyIndentSize = "vimdentation_indent_size"
	KeyMixedTabs  = "vimdentation_mixed_tabs"
	KeyLogLevel   = "log_level"
)

// DefaultLogLevel is used when log_level is not set.
const DefaultLogLevel = "info"

var logLevels = []string{"debug", "info", "warn", "error"}

// Settings is the resolved configuration.
type Settings struct {
	TabSize    int    `json:"tab_size" toml:"tab_size" yaml:"tab_size" jsonschema:"minimum=1,default=4" jsonschema_description:"Visual width of a tab character in columns."`
	IndentSize int    `json:"vimdentation_indent_size,omitempty" toml:"vimdentation_indent_size,omitempty" yaml:"vimdentation_indent_size,omitempty" jsonschema:"minimum=1" jsonschema_description:"Indent step in columns. Required by the indent command."`
	MixedTabs  bool   `json:"vimdentation_mixed_tabs" toml:"vimdentation_mixed_tabs" yaml:"vimdentation_mixed_tabs" jsonschema:"default=false" jsonschema_description:"Replace runs of spaces that reach a tab stop with tab characters."`
	LogLevel   string `json:"log_level,omitempty" toml:"log_level,omitempty" yaml:"log_level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=info" jsonschema_description:"Minimum level of log messages."`
}

// Defaults returns the built-in settings. IndentSize stays unset.
func Defaults() Settings {
	return Settings{
		TabSize:  indent.DefaultTabSize,
		LogLevel: DefaultLogLevel,
	}
}

// Keys returns the recognized setting keys, sorted.
func Keys() []string {
	keys := []string{KeyTabSize, KeyIndentSize, KeyMixedTabs, KeyLogLevel}
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key is a recognized setting.
func IsKnownKey(key string) bool {
	switch key {
	case KeyTabSize, KeyIndentSize, KeyMixedTabs, KeyLogLevel:
		return true
	}
	return false
}

// Decode builds Settings from a merged configuration map, starting from
// Defaults. Keys vimdent does not use are ignored so that a whole
// Preferences.sublime-settings file can be read. Every invalid key is
// reported; the returned error joins one *ValidationError per key.
func Decode(m map[string]any) (Settings, error) {
	s := Defaults()
	var errs []error

	if v, ok := m[KeyTabSize]; ok && v != nil {
		n, err := decodeInt(KeyTabSize, v)
		switch {
		case err != nil:
			errs = append(errs, err)
		case n <= 0:
			errs = append(errs, outOfRange(KeyTabSize, v, indent.ErrInvalidTabSize))
		default:
			s.TabSize = n
		}
	}

	if v, ok := m[KeyIndentSize]; ok && v != nil {
		n, err := decodeInt(KeyIndentSize, v)
		switch {
		case err != nil:
			errs = append(errs, err)
		case n <= 0:
			errs = append(errs, outOfRange(KeyIndentSize, v, indent.ErrInvalidIndentSize))
		default:
			s.IndentSize = n
		}
	}

	if v, ok := m[KeyMixedTabs]; ok && v != nil {
		b, err := decodeBool(KeyMixedTabs, v)
		if err != nil {
			errs = append(errs, err)
		} else {
			s.MixedTabs = b
		}
	}

	if v, ok := m[KeyLogLevel]; ok && v != nil {
		level, err := decodeLogLevel(v)
		if err != nil {
			errs = append(errs, err)
		} else {
			s.LogLevel = level
		}
	}

	if len(errs) > 0 {
		return Settings{}, errors.Join(errs...)
	}
	return s, nil
}

// Validate checks values that Decode would have rejected.
func (s Settings) Validate() error {
	if err := s.IndentOptions().Validate(); err != nil {
		return err
	}
	if _, err := decodeLogLevel(s.LogLevel); err != nil && s.LogLevel != "" {
		return err
	}
	return nil
}

// IndentOptions returns the options the indent commands take.
func (s Settings) IndentOptions() indent.Options {
	return indent.Options{
		IndentSize: s.IndentSize,
		TabSize:    s.TabSize,
		MixedTabs:  s.MixedTabs,
	}
}

// Map returns the settings as a configuration map. An unset IndentSize
// is omitted.
func (s Settings) Map() map[string]any {
	m := map[string]any{
		KeyTabSize:   s.TabSize,
		KeyMixedTabs: s.MixedTabs,
		KeyLogLevel:  s.LogLevel,
	}
	if s.IndentSize != 0 {
		m[KeyIndentSize] = s.IndentSize
	}
	return m
}

// decodeInt accepts every integer shape the loaders produce: int from
// YAML, int64 from TOML, Lua and the environment, float64 from JSON.
func decodeInt(key string, v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, outOfRange(key, v, nil)
		}
		return int(n), nil
	case uint64:
		if n > math.MaxInt32 {
			return 0, outOfRange(key, v, nil)
		}
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > math.MaxInt32 {
			return 0, typeMismatch(key, v, "an integer")
		}
		return int(n), nil
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, typeMismatch(key, v, "an integer")
		}
		return i, nil
	}
	return 0, typeMismatch(key, v, "an integer")
}

func decodeBool(key string, v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case int, int64, float64:
		n, err := decodeInt(key, b)
		if err == nil && (n == 0 || n == 1) {
			return n == 1, nil
		}
	case string:
		if parsed, err := strconv.ParseBool(strings.TrimSpace(b)); err == nil {
			return parsed, nil
		}
	}
	return false, typeMismatch(key, v, "a boolean")
}

func decodeLogLevel(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(KeyLogLevel, v, "a string")
	}
	level := strings.ToLower(strings.TrimSpace(s))
	if level == "warning" {
		level = "warn"
	}
	for _, l := range logLevels {
		if l == level {
			return level, nil
		}
	}
	return "", &ValidationError{
		Key:     KeyLogLevel,
		Message: "must be one of " + strings.Join(logLevels, ", "),
		Value:   v,
		Code:    ErrCodeInvalidEnum,
	}
}

func typeMismatch(key string, v any, want string) error {
	return &ValidationError{
		Key:     key,
		Message: fmt.Sprintf("must be %s, got %T", want, v),
		Value:   v,
		Code:    ErrCodeTypeMismatch,
		Err:     ErrTypeMismatch,
	}
}

func outOfRange(key string, v any, sentinel error) error {
	return &ValidationError{
		Key:     key,
		Message: "must be a positive integer",
		Value:   v,
		Code:    ErrCodeOutOfRange,
		Err:     sentinel,
	}
}

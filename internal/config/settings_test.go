package config

import (
	"errors"
	"testing"

	"github.com/dshills/vimdent/internal/indent"
)

func TestDefaults(t *testing.T) {
	s := Defaults()
	if s.TabSize != 4 || s.IndentSize != 0 || s.MixedTabs || s.LogLevel != "info" {
		t.Errorf("Defaults() = %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Defaults().Validate() = %v", err)
	}
}

func TestDecodeCoercion(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want Settings
	}{
		{
			name: "empty",
			in:   map[string]any{},
			want: Defaults(),
		},
		{
			name: "toml ints",
			in:   map[string]any{"tab_size": int64(8), "vimdentation_indent_size": int64(4), "vimdentation_mixed_tabs": true},
			want: Settings{TabSize: 8, IndentSize: 4, MixedTabs: true, LogLevel: "info"},
		},
		{
			name: "json floats",
			in:   map[string]any{"tab_size": float64(2), "vimdentation_indent_size": float64(2)},
			want: Settings{TabSize: 2, IndentSize: 2, LogLevel: "info"},
		},
		{
			name: "yaml ints and strings",
			in:   map[string]any{"tab_size": 3, "vimdentation_mixed_tabs": "true", "log_level": "WARNING"},
			want: Settings{TabSize: 3, MixedTabs: true, LogLevel: "warn"},
		},
		{
			name: "env numbers for bool",
			in:   map[string]any{"vimdentation_mixed_tabs": int64(1), "vimdentation_indent_size": "6"},
			want: Settings{TabSize: 4, IndentSize: 6, MixedTabs: true, LogLevel: "info"},
		},
		{
			name: "null indent size is unset",
			in:   map[string]any{"vimdentation_indent_size": nil},
			want: Defaults(),
		},
		{
			name: "unrelated sublime keys ignored",
			in:   map[string]any{"font_size": 12, "translate_tabs_to_spaces": true},
			want: Defaults(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.in)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Decode = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name     string
		in       map[string]any
		key      string
		code     ValidationErrorCode
		sentinel error
	}{
		{"zero tab size", map[string]any{"tab_size": 0}, KeyTabSize, ErrCodeOutOfRange, indent.ErrInvalidTabSize},
		{"negative indent size", map[string]any{"vimdentation_indent_size": int64(-2)}, KeyIndentSize, ErrCodeOutOfRange, indent.ErrInvalidIndentSize},
		{"zero indent size", map[string]any{"vimdentation_indent_size": 0}, KeyIndentSize, ErrCodeOutOfRange, indent.ErrInvalidIndentSize},
		{"fractional tab size", map[string]any{"tab_size": 2.5}, KeyTabSize, ErrCodeTypeMismatch, ErrTypeMismatch},
		{"string tab size", map[string]any{"tab_size": "wide"}, KeyTabSize, ErrCodeTypeMismatch, ErrTypeMismatch},
		{"bool out of range", map[string]any{"vimdentation_mixed_tabs": 2}, KeyMixedTabs, ErrCodeTypeMismatch, ErrTypeMismatch},
		{"log level", map[string]any{"log_level": "loud"}, KeyLogLevel, ErrCodeInvalidEnum, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Decode error = %v, want *ValidationError", err)
			}
			if ve.Key != tt.key || ve.Code != tt.code {
				t.Errorf("ValidationError = {%s %v}, want {%s %v}", ve.Key, ve.Code, tt.key, tt.code)
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(err, %v) = false", tt.sentinel)
			}
		})
	}
}

func TestDecodeReportsEveryKey(t *testing.T) {
	_, err := Decode(map[string]any{"tab_size": 0, "vimdentation_indent_size": -1})
	if !errors.Is(err, indent.ErrInvalidTabSize) || !errors.Is(err, indent.ErrInvalidIndentSize) {
		t.Errorf("Decode error = %v, want both size errors", err)
	}
}

func TestSettingsMapRoundTrip(t *testing.T) {
	s := Settings{TabSize: 8, IndentSize: 4, MixedTabs: true, LogLevel: "debug"}
	got, err := Decode(s.Map())
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if got != s {
		t.Errorf("Decode(Map()) = %+v, want %+v", got, s)
	}

	if _, ok := Defaults().Map()[KeyIndentSize]; ok {
		t.Error("Defaults().Map() contains an unset indent size")
	}
}

func TestIndentOptions(t *testing.T) {
	s := Settings{TabSize: 8, IndentSize: 4, MixedTabs: true}
	want := indent.Options{TabSize: 8, IndentSize: 4, MixedTabs: true}
	if got := s.IndentOptions(); got != want {
		t.Errorf("IndentOptions() = %+v, want %+v", got, want)
	}
}

func TestKeys(t *testing.T) {
	for _, k := range Keys() {
		if !IsKnownKey(k) {
			t.Errorf("IsKnownKey(%q) = false", k)
		}
	}
	if IsKnownKey("font_size") {
		t.Error("IsKnownKey(font_size) = true")
	}
}

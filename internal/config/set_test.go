package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/dshills/vimdent/internal/config/loader"
	"github.com/dshills/vimdent/internal/indent"
)

func TestSetValueFormats(t *testing.T) {
	for _, name := range []string{"s.json", "s.sublime-settings", "s.toml", "s.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := SetValue(path, KeyIndentSize, "4"); err != nil {
				t.Fatalf("SetValue error: %v", err)
			}
			if err := SetValue(path, KeyMixedTabs, "true"); err != nil {
				t.Fatalf("SetValue error: %v", err)
			}

			data, err := loader.LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile error: %v", err)
			}
			s, err := Decode(data)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if s.IndentSize != 4 || !s.MixedTabs {
				t.Errorf("settings = %+v, want indent size 4 and mixed tabs", s)
			}
		})
	}
}

func TestSetValueKeepsOtherJSONKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Preferences.sublime-settings")
	write(t, path, "{\n\t\"font_size\": 12,\n\t\"tab_size\": 4\n}\n")

	if err := SetValue(path, KeyTabSize, "8"); err != nil {
		t.Fatalf("SetValue error: %v", err)
	}
	data, _ := os.ReadFile(path)
	if gjson.GetBytes(data, "font_size").Int() != 12 {
		t.Errorf("font_size lost: %s", data)
	}
	if gjson.GetBytes(data, "tab_size").Int() != 8 {
		t.Errorf("tab_size not updated: %s", data)
	}
	if !strings.Contains(string(data), "\"font_size\": 12,\n") {
		t.Errorf("formatting changed: %s", data)
	}
}

func TestSetValueRejects(t *testing.T) {
	dir := t.TempDir()

	err := SetValue(filepath.Join(dir, "a.json"), "font_size", "12")
	if !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("unknown key error = %v, want ErrUnknownSetting", err)
	}

	path := filepath.Join(dir, "b.toml")
	write(t, path, "tab_size = 4\n")
	if err := SetValue(path, KeyTabSize, "0"); !errors.Is(err, indent.ErrInvalidTabSize) {
		t.Errorf("invalid value error = %v, want ErrInvalidTabSize", err)
	}
	if data, _ := os.ReadFile(path); string(data) != "tab_size = 4\n" {
		t.Errorf("file modified on error: %q", data)
	}

	if err := SetValue(filepath.Join(dir, "init.lua"), KeyTabSize, "8"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("lua error = %v, want ErrUnsupportedFormat", err)
	}
}

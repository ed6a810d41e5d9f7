package layer

import (
	"errors"
	"testing"
)

func TestSourceString(t *testing.T) {
	tests := []struct {
		source Source
		want   string
	}{
		{SourceBuiltin, "builtin"},
		{SourceUser, "user"},
		{SourceWorkspace, "workspace"},
		{SourceEnv, "environment"},
		{SourceArgs, "arguments"},
		{Source(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.source.String(); got != tt.want {
			t.Errorf("Source(%d).String() = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestManagerMergePriority(t *testing.T) {
	m := NewManager()
	m.Set(New("env", SourceEnv, map[string]any{"tab_size": 2}))
	m.Set(New("builtin", SourceBuiltin, map[string]any{"tab_size": 4, "vimdentation_mixed_tabs": false}))
	m.Set(New("user", SourceUser, map[string]any{"tab_size": 8, "vimdentation_indent_size": 4}))

	got := m.Merge()
	if got["tab_size"] != 2 {
		t.Errorf("tab_size = %v, want 2 (env wins)", got["tab_size"])
	}
	if got["vimdentation_indent_size"] != 4 {
		t.Errorf("vimdentation_indent_size = %v, want 4", got["vimdentation_indent_size"])
	}
	if got["vimdentation_mixed_tabs"] != false {
		t.Errorf("vimdentation_mixed_tabs = %v, want false", got["vimdentation_mixed_tabs"])
	}

	layers := m.Layers()
	if len(layers) != 3 || layers[0].Name != "builtin" || layers[2].Name != "env" {
		t.Errorf("Layers order = %v, want builtin, user, env", names(layers))
	}
}

func names(layers []*Layer) []string {
	out := make([]string, len(layers))
	for i, l := range layers {
		out[i] = l.Name
	}
	return out
}

func TestManagerSetReplacesByName(t *testing.T) {
	m := NewManager()
	m.Set(New("user", SourceUser, map[string]any{"tab_size": 8}))
	m.Set(New("user", SourceUser, map[string]any{"tab_size": 3}))

	if n := len(m.Layers()); n != 1 {
		t.Fatalf("len(Layers) = %d, want 1", n)
	}
	if got := m.Merge()["tab_size"]; got != 3 {
		t.Errorf("tab_size = %v, want 3", got)
	}
}

func TestManagerUpdateInvalidatesCache(t *testing.T) {
	m := NewManager()
	m.Set(New("user", SourceUser, map[string]any{"tab_size": 8}))
	_ = m.Merge()

	if err := m.Update("user", map[string]any{"tab_size": 6}); err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if got := m.Merge()["tab_size"]; got != 6 {
		t.Errorf("tab_size after Update = %v, want 6", got)
	}

	if err := m.Update("missing", nil); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("Update(missing) error = %v, want ErrLayerNotFound", err)
	}
}

func TestManagerMergeReturnsCopy(t *testing.T) {
	m := NewManager()
	m.Set(New("user", SourceUser, map[string]any{"tab_size": 8}))

	got := m.Merge()
	got["tab_size"] = 1
	if again := m.Merge()["tab_size"]; again != 8 {
		t.Errorf("cached merge mutated: tab_size = %v, want 8", again)
	}
}

func TestManagerRemoveAndOrigin(t *testing.T) {
	m := NewManager()
	m.Set(New("builtin", SourceBuiltin, map[string]any{"tab_size": 4}))
	m.Set(FromFile("user", SourceUser, "/tmp/vimdent.toml", map[string]any{"tab_size": 8}))

	origin, ok := m.Origin("tab_size")
	if !ok || origin.Name != "user" || origin.Path != "/tmp/vimdent.toml" {
		t.Errorf("Origin(tab_size) = %v, %v, want user layer", origin, ok)
	}
	if _, ok := m.Origin("log_level"); ok {
		t.Error("Origin(log_level) found, want not found")
	}

	if !m.Remove("user") {
		t.Fatal("Remove(user) = false")
	}
	if m.Remove("user") {
		t.Error("second Remove(user) = true")
	}
	if m.Get("user") != nil {
		t.Error("Get(user) after Remove != nil")
	}
	if got := m.Merge()["tab_size"]; got != 4 {
		t.Errorf("tab_size after Remove = %v, want 4", got)
	}
}

func TestLayerClone(t *testing.T) {
	l := New("user", SourceUser, map[string]any{"nested": map[string]any{"a": 1}})
	c := l.Clone()
	c.Data["nested"].(map[string]any)["a"] = 2

	if l.Data["nested"].(map[string]any)["a"] != 1 {
		t.Error("Clone shares nested data")
	}
}

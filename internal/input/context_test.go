package input

import "testing"

func TestContextValue(t *testing.T) {
	ctx := NewContext()
	ctx.AutoCompleteVisible = true
	ctx.ReadOnly = true
	ctx.Settings["vimdentation_mixed_tabs"] = true

	tests := []struct {
		key  string
		want any
		ok   bool
	}{
		{"auto_complete_visible", true, true},
		{"selection_empty", true, true},
		{"read_only", true, true},
		{"mode", "insert", true},
		{"setting.vimdentation_mixed_tabs", true, true},
		{"setting.missing", nil, false},
		{"unknown", nil, false},
	}

	for _, tt := range tests {
		got, ok := ctx.Value(tt.key)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Value(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestContextClone(t *testing.T) {
	ctx := NewContext()
	ctx.Settings["tab_size"] = 8
	clone := ctx.Clone()
	clone.Settings["tab_size"] = 2
	clone.HasSelection = true

	if ctx.Settings["tab_size"] != 8 {
		t.Error("clone shares Settings with original")
	}
	if ctx.HasSelection {
		t.Error("clone shares fields with original")
	}
}

func TestActionRepeat(t *testing.T) {
	tests := []struct {
		count int
		want  int
	}{
		{0, 1},
		{-2, 1},
		{1, 1},
		{3, 3},
	}
	for _, tt := range tests {
		if got := NewAction("editor.indent").WithCount(tt.count).Repeat(); got != tt.want {
			t.Errorf("Repeat() with count %d = %d, want %d", tt.count, got, tt.want)
		}
	}
}

func TestActionArgs(t *testing.T) {
	a := Action{Name: "x", Args: map[string]any{"force": true, "n": 2}}
	if !a.ArgBool("force") {
		t.Error("ArgBool(force) = false, want true")
	}
	if a.ArgBool("n") {
		t.Error("ArgBool on a non-bool should be false")
	}
	if _, ok := a.Arg("missing"); ok {
		t.Error("Arg(missing) should report absent")
	}
	if NewAction("x").Source != SourceAPI {
		t.Error("NewAction should use SourceAPI")
	}
}

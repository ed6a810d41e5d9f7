package loader

import (
	"testing"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

func TestStandardizeJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"valid unchanged", `{"a": 1}`, `{"a":1}`},
		{"line comment", "{\"a\": 1 // one\n}", `{"a":1}`},
		{"block comment", `{/* x */"a": 1}`, `{"a":1}`},
		{"multiline block comment", "{\"a\": 1, /* one\ntwo */ \"b\": 2}", `{"a":1,"b":2}`},
		{"trailing comma object", `{"a": 1,}`, `{"a":1}`},
		{"trailing comma array after comment", "[1, 2, // last\n]", `[1,2]`},
		{"nested trailing commas", `{"a": [1, {"b": 2,},],}`, `{"a":[1,{"b":2}]}`},
		{"comment markers inside strings", `{"url": "http://x/*y*/", "q": "a\"//b",}`, `{"url":"http://x/*y*/","q":"a\"//b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StandardizeJSON([]byte(tt.input))
			if !gjson.ValidBytes(got) {
				t.Fatalf("StandardizeJSON(%q) = %q, not valid JSON", tt.input, got)
			}
			if compact := string(pretty.Ugly(got)); compact != tt.want {
				t.Errorf("StandardizeJSON(%q) = %s, want %s", tt.input, compact, tt.want)
			}
		})
	}
}

func TestStandardizeJSONKeepsOffsets(t *testing.T) {
	input := "{\n  // indent\n  \"tab_size\": 8, /* wide */\n}\n"
	got := StandardizeJSON([]byte(input))
	if len(got) != len(input) {
		t.Fatalf("len = %d, want %d", len(got), len(input))
	}
	if v := gjson.GetBytes(got, "tab_size"); v.Int() != 8 {
		t.Errorf("tab_size = %v, want 8", v)
	}
}

func TestStandardizeJSONValidReturnsInput(t *testing.T) {
	input := []byte(`{"tab_size": 4}`)
	if got := StandardizeJSON(input); &got[0] != &input[0] {
		t.Error("valid JSON was copied")
	}
}

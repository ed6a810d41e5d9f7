package config

import (
	"testing"

	"github.com/tidwall/gjson"
)

func TestSchema(t *testing.T) {
	data, err := Schema()
	if err != nil {
		t.Fatalf("Schema error: %v", err)
	}
	if !gjson.ValidBytes(data) {
		t.Fatalf("Schema is not valid JSON: %s", data)
	}

	for _, key := range Keys() {
		if !gjson.GetBytes(data, "properties."+key).Exists() {
			t.Errorf("schema has no property %q", key)
		}
	}
	if got := gjson.GetBytes(data, "properties.tab_size.minimum").Int(); got != 1 {
		t.Errorf("tab_size minimum = %d, want 1", got)
	}
	if got := gjson.GetBytes(data, "properties.log_level.enum.#").Int(); got != 4 {
		t.Errorf("log_level enum count = %d, want 4", got)
	}
	if gjson.GetBytes(data, `required.#(=="vimdentation_indent_size")`).Exists() {
		t.Errorf("indent size is required, want optional: %s", gjson.GetBytes(data, "required").Raw)
	}
}

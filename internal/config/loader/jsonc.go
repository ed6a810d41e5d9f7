package loader

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

// StandardizeJSON turns the relaxed JSON Sublime Text writes into plain
// JSON. Comments and trailing commas become whitespace, so byte offsets in
// parse errors still point into the original file. Valid JSON is returned
// unchanged.
func StandardizeJSON(data []byte) []byte {
	if gjson.ValidBytes(data) {
		return data
	}
	return jsonc.ToJSON(data)
}

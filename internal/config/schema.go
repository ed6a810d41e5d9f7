package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
	"github.com/tidwall/pretty"
)

// Schema returns the JSON Schema of the settings file, indented.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
		// Settings files usually hold editor settings vimdent ignores.
		AllowAdditionalProperties: true,
	}
	schema := reflector.Reflect(&Settings{})
	schema.Title = "vimdent settings"

	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(data), nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
	"gopkg.in/yaml.v3"

	"github.com/dshills/vimdent/internal/config/loader"
)

// SetValue writes key = raw into the settings file at path, creating the
// file if needed. raw is parsed like an environment variable ("8",
// "true", "info"). The file's resulting settings must validate; on error
// the file is left untouched.
//
// JSON files are edited in place so that other keys keep their order and
// formatting. TOML and YAML files are rewritten. Lua files cannot be
// edited.
func SetValue(path, key, raw string) error {
	if !IsKnownKey(key) {
		return &ValidationError{
			Key:     key,
			Message: "not a vimdent setting",
			Value:   raw,
			Code:    ErrCodeUnknownSetting,
			Err:     ErrUnknownSetting,
		}
	}
	value := loader.ParseValue(raw)

	format, err := loader.DetectFormat(path)
	if err != nil {
		return err
	}

	current, err := loader.LoadFile(path)
	if err != nil {
		return err
	}
	if current == nil {
		current = make(map[string]any)
	}
	current[key] = value
	if _, err := Decode(current); err != nil {
		return err
	}

	var out []byte
	switch format {
	case loader.FormatJSON:
		out, err = setJSON(path, key, value)
	case loader.FormatTOML:
		out, err = toml.Marshal(current)
	case loader.FormatYAML:
		out, err = yaml.Marshal(current)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o644)
}

func setJSON(path, key string, value any) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	created := len(bytes.TrimSpace(data)) == 0
	if created {
		data = []byte("{}")
	}
	// sjson needs plain JSON; comments do not survive an edit.
	data = loader.StandardizeJSON(data)

	out, err := sjson.SetBytes(data, key, value)
	if err != nil {
		return nil, err
	}
	if created {
		out = pretty.Pretty(out)
	}
	return out, nil
}

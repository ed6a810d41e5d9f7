package loader

import (
	"bytes"
	"errors"
	"io"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is wrapped by ParseError for malformed JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// JSONLoader loads configuration from JSON and .sublime-settings files.
type JSONLoader struct {
	fs   FileSystem
	path string
}

// NewJSONLoader creates a new JSON loader for the given path.
func NewJSONLoader(path string) *JSONLoader {
	return &JSONLoader{fs: DefaultFS(), path: path}
}

// Load reads configuration from the configured path.
func (l *JSONLoader) Load() (map[string]any, error) {
	return l.LoadFrom(l.path)
}

// LoadFrom reads configuration from a specific path.
func (l *JSONLoader) LoadFrom(path string) (map[string]any, error) {
	data, err := readFile(l.fs, path)
	if err != nil || data == nil {
		return nil, err
	}
	return parseJSON(path, data)
}

// LoadFromReader reads configuration from an io.Reader.
func (l *JSONLoader) LoadFromReader(r io.Reader) (map[string]any, error) {
	data, err := readAll(r)
	if err != nil {
		return nil, err
	}
	return parseJSON("<reader>", data)
}

func parseJSON(source string, data []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return make(map[string]any), nil
	}

	data = StandardizeJSON(data)
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: source, Message: "malformed JSON", Err: ErrInvalidJSON}
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, &ParseError{Path: source, Message: "top level must be an object", Err: ErrInvalidJSON}
	}
	config, _ := root.Value().(map[string]any)
	return config, nil
}

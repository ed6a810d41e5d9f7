package keymap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/dshills/vimdent/internal/config/loader"
)

// ErrInvalidKeymap is returned for keymap files that are not a JSON array.
var ErrInvalidKeymap = errors.New("keymap: invalid keymap file")

// LoadFile loads a .sublime-keymap file.
// The keymap is named after the file and sourced from its path.
func LoadFile(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading keymap file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	km, err := Parse(name, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	km.Source = path
	return km, nil
}

// Parse decodes keymap JSON. Sublime keymaps allow // comments and
// trailing commas, so both are accepted.
func Parse(name string, data []byte) (*Keymap, error) {
	data = loader.StandardizeJSON(data)
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidKeymap
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: top level must be an array", ErrInvalidKeymap)
	}

	km := &Keymap{Name: name, Source: name}
	var perr error
	root.ForEach(func(idx, entry gjson.Result) bool {
		b, err := parseBinding(entry)
		if err != nil {
			perr = fmt.Errorf("%w: entry %d: %v", ErrInvalidKeymap, idx.Int(), err)
			return false
		}
		km.Bindings = append(km.Bindings, b)
		return true
	})
	if perr != nil {
		return nil, perr
	}
	if err := km.Validate(); err != nil {
		return nil, err
	}
	return km, nil
}

func parseBinding(entry gjson.Result) (Binding, error) {
	if !entry.IsObject() {
		return Binding{}, errors.New("binding must be an object")
	}

	var b Binding
	for _, k := range entry.Get("keys").Array() {
		b.Keys = append(b.Keys, k.String())
	}
	b.Command = entry.Get("command").String()
	if args := entry.Get("args"); args.IsObject() {
		b.Args, _ = args.Value().(map[string]any)
	}

	for _, c := range entry.Get("context").Array() {
		if !c.IsObject() {
			return Binding{}, errors.New("context entries must be objects")
		}
		cond := Condition{
			Key:      c.Get("key").String(),
			Operator: c.Get("operator").String(),
		}
		if op := c.Get("operand"); op.Exists() {
			cond.Operand = op.Value()
		}
		b.Context = append(b.Context, cond)
	}
	return b, nil
}

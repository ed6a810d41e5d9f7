// Package loader reads settings files into plain maps.
//
// Supported formats are TOML, YAML, JSON (including Sublime Text
// .sublime-settings files, which allow comments and trailing commas) and
// Lua scripts. Environment variables are read by EnvLoader. Every loader
// returns a flat or nested map[string]any; decoding into typed settings
// happens in the config package.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnknownFormat is returned for files whose extension has no loader.
var ErrUnknownFormat = errors.New("loader: unknown settings file format")

// Loader is the interface for configuration loaders.
type Loader interface {
	// Load reads configuration from the source and returns a map.
	// Returns nil, nil if the source doesn't exist (not an error).
	Load() (map[string]any, error)
}

// FileLoader is the interface for loaders that read from files.
type FileLoader interface {
	Loader
	// LoadFrom reads configuration from a specific path.
	LoadFrom(path string) (map[string]any, error)
}

// FileSystem is an abstraction for file system operations.
type FileSystem interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)
	// Stat returns file info for path.
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Stat returns file info for path.
func (OSFS) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// DefaultFS returns the default file system (OS).
func DefaultFS() FileSystem {
	return OSFS{}
}

// Format names a settings file syntax.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatLua  Format = "lua"
)

// DetectFormat returns the format implied by path's extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json", ".sublime-settings", ".sublime-project":
		return FormatJSON, nil
	case ".lua":
		return FormatLua, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// ForFile returns the loader for path, chosen by extension.
func ForFile(fsys FileSystem, path string) (FileLoader, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if fsys == nil {
		fsys = DefaultFS()
	}

	switch format {
	case FormatTOML:
		return &TOMLLoader{fs: fsys, path: path}, nil
	case FormatYAML:
		return &YAMLLoader{fs: fsys, path: path}, nil
	case FormatLua:
		return &LuaLoader{fs: fsys, path: path, timeout: DefaultLuaTimeout}, nil
	default:
		return &JSONLoader{fs: fsys, path: path}, nil
	}
}

// LoadFile reads path with the loader its extension selects.
// A missing file yields nil, nil.
func LoadFile(path string) (map[string]any, error) {
	l, err := ForFile(nil, path)
	if err != nil {
		return nil, err
	}
	return l.Load()
}

// readFile reads path, mapping a missing file to nil data and no error.
func readFile(fsys FileSystem, path string) ([]byte, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return data, nil
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return data, nil
}

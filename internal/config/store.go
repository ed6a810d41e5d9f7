package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/vimdent/internal/config/layer"
	"github.com/dshills/vimdent/internal/config/loader"
	"github.com/dshills/vimdent/internal/config/watcher"
)

// Layer names used by Store.
const (
	LayerBuiltin   = "builtin"
	LayerUser      = "user"
	LayerWorkspace = "workspace"
	LayerEnv       = "environment"
	LayerArgs      = "arguments"
)

// Observer is called with the new settings after a successful reload
// that changed them.
type Observer func(Settings)

// Store holds the current settings and reloads them from their sources.
type Store struct {
	mu       sync.RWMutex
	layers   *layer.Manager
	current  Settings
	lastErr  error
	userFile string
	workFile string
	env      *loader.EnvLoader
	args     map[string]any

	obsMu     sync.Mutex
	observers map[uint64]Observer
	nextID    uint64
}

// Option configures a Store.
type Option func(*Store)

// WithUserFile sets the user settings file.
func WithUserFile(path string) Option {
	return func(s *Store) {
		s.userFile = path
	}
}

// WithWorkspaceFile sets a settings file that overrides the user file.
func WithWorkspaceFile(path string) Option {
	return func(s *Store) {
		s.workFile = path
	}
}

// WithEnvLoader replaces the environment loader. Pass nil to ignore the
// environment.
func WithEnvLoader(l *loader.EnvLoader) Option {
	return func(s *Store) {
		s.env = l
	}
}

// WithOverrides sets values that take precedence over every file,
// typically from command-line flags.
func WithOverrides(values map[string]any) Option {
	return func(s *Store) {
		s.args = loader.Clone(values)
	}
}

// NewStore creates a store holding Defaults. Call Reload to read the
// configured sources.
func NewStore(opts ...Option) *Store {
	s := &Store{
		layers:    layer.NewManager(),
		current:   Defaults(),
		env:       loader.NewEnvLoader(),
		observers: make(map[uint64]Observer),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.layers.Set(layer.New(LayerBuiltin, layer.SourceBuiltin, Defaults().Map()))
	return s
}

// Load creates a store and reads its sources once.
func Load(opts ...Option) (*Store, error) {
	s := NewStore(opts...)
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Settings returns the current settings.
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Err returns the error from the last Reload, or nil.
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Files returns the settings files the store reads.
func (s *Store) Files() []string {
	var files []string
	for _, f := range []string{s.userFile, s.workFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// Merged returns the merged configuration map.
func (s *Store) Merged() map[string]any {
	s.mu.RLock()
	layers := s.layers
	s.mu.RUnlock()
	return layers.Merge()
}

// Origin returns the layer that supplies key.
func (s *Store) Origin(key string) (*layer.Layer, bool) {
	s.mu.RLock()
	layers := s.layers
	s.mu.RUnlock()
	return layers.Origin(key)
}

// Reload re-reads every source. On error the previous settings stay in
// effect and the error is returned and kept for Err.
func (s *Store) Reload() error {
	s.mu.Lock()
	prev := s.current
	next, err := s.reloadLocked()
	s.lastErr = err
	if err == nil {
		s.current = next
	}
	s.mu.Unlock()

	if err != nil {
		return err
	}
	if next != prev {
		s.notify(next)
	}
	return nil
}

func (s *Store) reloadLocked() (Settings, error) {
	user, err := loadOptionalFile(s.userFile)
	if err != nil {
		return Settings{}, err
	}
	work, err := loadOptionalFile(s.workFile)
	if err != nil {
		return Settings{}, err
	}
	var env map[string]any
	if s.env != nil {
		if env, err = s.env.Load(); err != nil {
			return Settings{}, err
		}
	}

	candidate := layer.NewManager()
	for _, l := range s.layers.Layers() {
		if l.Name == LayerBuiltin {
			candidate.Set(l)
		}
	}
	setIfPresent(candidate, layer.FromFile(LayerUser, layer.SourceUser, s.userFile, user))
	setIfPresent(candidate, layer.FromFile(LayerWorkspace, layer.SourceWorkspace, s.workFile, work))
	setIfPresent(candidate, layer.New(LayerEnv, layer.SourceEnv, env))
	setIfPresent(candidate, layer.New(LayerArgs, layer.SourceArgs, s.args))

	next, err := Decode(candidate.Merge())
	if err != nil {
		return Settings{}, err
	}
	s.layers = candidate
	return next, nil
}

func setIfPresent(m *layer.Manager, l *layer.Layer) {
	if len(l.Data) > 0 {
		m.Set(l)
	}
}

func loadOptionalFile(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	data, err := loader.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return data, nil
}

// Subscribe registers an observer for settings changes. The returned
// function removes it.
func (s *Store) Subscribe(o Observer) (cancel func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextID
	s.nextID++
	s.observers[id] = o

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

func (s *Store) notify(next Settings) {
	s.obsMu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.obsMu.Unlock()

	for _, o := range observers {
		o(next)
	}
}

// Watch reloads the store whenever one of its files changes. Reload
// errors are passed to onError, if set; the previous settings stay in
// effect. Close the returned watcher to stop.
func (s *Store) Watch(onError func(error), opts ...watcher.Option) (*watcher.Watcher, error) {
	if onError != nil {
		opts = append(opts, watcher.WithErrorHandler(onError))
	}
	w, err := watcher.New(opts...)
	if err != nil {
		return nil, err
	}

	for _, f := range s.Files() {
		if err := w.Watch(f); err != nil {
			_ = w.Close()
			return nil, err
		}
	}
	w.OnChange(func(watcher.Event) {
		if err := s.Reload(); err != nil && onError != nil {
			onError(err)
		}
	})
	return w, nil
}

// DefaultUserFile returns the user settings file path: the first of
// vimdent.toml, vimdent.yaml, vimdent.json, Preferences.sublime-settings
// or init.lua that exists in the vimdent config directory, or
// vimdent.toml when none does.
func DefaultUserFile() string {
	dir := DefaultConfigDir()
	for _, name := range []string{"vimdent.toml", "vimdent.yaml", "vimdent.json", "Preferences.sublime-settings", "init.lua"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return filepath.Join(dir, "vimdent.toml")
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/vimdent or ~/.config/vimdent.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "vimdent")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "vimdent")
}

// FindWorkspaceFile looks for .vimdent.toml, .vimdent.yaml or
// .vimdent.json in dir and its parents. It returns "" when none exists.
func FindWorkspaceFile(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		for _, name := range []string{".vimdent.toml", ".vimdent.yaml", ".vimdent.json"} {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

package keymap

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/vimdent/internal/input"
	"github.com/dshills/vimdent/internal/input/key"
)

// ErrNoKeys is returned for a binding without a key sequence.
var ErrNoKeys = errors.New("keymap: binding has no keys")

// Keymap is a named list of bindings from one source.
type Keymap struct {
	// Name is the keymap identifier.
	Name string

	// Source indicates where this keymap was defined, e.g. "default" or a path.
	Source string

	// Priority orders keymaps; higher wins.
	Priority int

	Bindings []Binding
}

// Validate checks that every binding has keys, a command and parsable keys.
func (k *Keymap) Validate() error {
	_, err := k.parse()
	return err
}

func (k *Keymap) parse() ([]parsedBinding, error) {
	out := make([]parsedBinding, 0, len(k.Bindings))
	for i, b := range k.Bindings {
		if len(b.Keys) == 0 {
			return nil, fmt.Errorf("%s: binding %d: %w", k.Name, i, ErrNoKeys)
		}
		if b.Command == "" {
			return nil, fmt.Errorf("%s: binding %d (%v): empty command", k.Name, i, b.Keys)
		}
		seq, err := key.ParseSequence(b.Keys)
		if err != nil {
			return nil, fmt.Errorf("%s: binding %d: %w", k.Name, i, err)
		}
		out = append(out, parsedBinding{Binding: b, seq: seq})
	}
	return out, nil
}

// MatchResult describes how a key sequence relates to the bindings.
type MatchResult uint8

const (
	// NoMatch means no enabled binding starts with the sequence.
	NoMatch MatchResult = iota
	// PartialMatch means the sequence is a prefix of a longer binding.
	PartialMatch
	// ExactMatch means a binding fires for the sequence.
	ExactMatch
)

type registered struct {
	km       *Keymap
	bindings []parsedBinding
	order    int
}

// Registry holds the active keymaps.
type Registry struct {
	mu      sync.RWMutex
	keymaps []registered
	next    int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a keymap, replacing one with the same name.
func (r *Registry) Register(km *Keymap) error {
	parsed, err := km.parse()
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.unregisterLocked(km.Name)
	r.keymaps = append(r.keymaps, registered{km: km, bindings: parsed, order: r.next})
	r.next++

	// Highest priority first; among equals, the most recently registered.
	sort.SliceStable(r.keymaps, func(i, j int) bool {
		if r.keymaps[i].km.Priority != r.keymaps[j].km.Priority {
			return r.keymaps[i].km.Priority > r.keymaps[j].km.Priority
		}
		return r.keymaps[i].order > r.keymaps[j].order
	})
	return nil
}

// Unregister removes the keymap with the given name.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unregisterLocked(name)
}

func (r *Registry) unregisterLocked(name string) {
	kept := r.keymaps[:0]
	for _, reg := range r.keymaps {
		if reg.km.Name != name {
			kept = append(kept, reg)
		}
	}
	r.keymaps = kept
}

// Keymaps returns the registered keymaps in lookup order.
func (r *Registry) Keymaps() []*Keymap {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Keymap, len(r.keymaps))
	for i, reg := range r.keymaps {
		out[i] = reg.km
	}
	return out
}

// Lookup finds the binding that fires for seq in ctx.
// An exact match wins over a partial one.
func (r *Registry) Lookup(seq []key.Event, ctx *input.Context) (Binding, MatchResult) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := NoMatch
	for _, reg := range r.keymaps {
		for i := len(reg.bindings) - 1; i >= 0; i-- {
			pb := reg.bindings[i]
			if !pb.hasPrefix(seq) || !pb.Enabled(ctx) {
				continue
			}
			if pb.matches(seq) {
				return pb.Binding, ExactMatch
			}
			result = PartialMatch
		}
	}
	return Binding{}, result
}

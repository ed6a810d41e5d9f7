package layer

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/vimdent/internal/config/loader"
)

// ErrLayerNotFound is returned when a named layer does not exist.
var ErrLayerNotFound = errors.New("layer not found")

// Manager manages configuration layers and provides merged access.
type Manager struct {
	mu     sync.RWMutex
	layers []*Layer       // sorted by priority (ascending)
	merged map[string]any // cached merged result
	dirty  bool
}

// NewManager creates a new layer manager.
func NewManager() *Manager {
	return &Manager{dirty: true}
}

// Set adds a layer, replacing any existing layer with the same name.
// Layers are kept sorted by priority; equal priorities keep insertion order.
func (m *Manager) Set(layer *Layer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.indexOf(layer.Name); i >= 0 {
		m.layers[i] = layer
	} else {
		m.layers = append(m.layers, layer)
	}
	sort.SliceStable(m.layers, func(i, j int) bool {
		return m.layers[i].Priority < m.layers[j].Priority
	})
	m.dirty = true
}

// Remove removes a layer by name.
// Returns true if the layer was found and removed.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(name)
	if i < 0 {
		return false
	}
	m.layers = append(m.layers[:i], m.layers[i+1:]...)
	m.dirty = true
	return true
}

// Get returns a layer by name, or nil.
func (m *Manager) Get(name string) *Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.indexOf(name); i >= 0 {
		return m.layers[i]
	}
	return nil
}

// Update replaces a layer's data.
func (m *Manager) Update(name string, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrLayerNotFound, name)
	}
	updated := *m.layers[i]
	updated.Data = data
	m.layers[i] = &updated
	m.dirty = true
	return nil
}

// Layers returns a copy of all layers sorted by priority.
func (m *Manager) Layers() []*Layer {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Layer, len(m.layers))
	copy(result, m.layers)
	return result
}

// Merge combines all layers into a single configuration map.
// Results are cached until a layer changes.
func (m *Manager) Merge() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dirty || m.merged == nil {
		result := make(map[string]any)
		for _, layer := range m.layers {
			result = loader.DeepMerge(result, loader.Clone(layer.Data))
		}
		m.merged = result
		m.dirty = false
	}
	return loader.Clone(m.merged)
}

// Origin returns the highest priority layer that sets key.
func (m *Manager) Origin(key string) (*Layer, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := len(m.layers) - 1; i >= 0; i-- {
		if _, ok := m.layers[i].Data[key]; ok {
			return m.layers[i], true
		}
	}
	return nil, false
}

func (m *Manager) indexOf(name string) int {
	for i, layer := range m.layers {
		if layer.Name == name {
			return i
		}
	}
	return -1
}

package dispatcher

import (
	"sort"
	"sync"
	"time"

	"github.com/dshills/vimdent/internal/dispatcher/handler"
)

// CommandStats holds dispatch counts for one command.
type CommandStats struct {
	Name          string
	Dispatches    uint64
	NoOps         uint64
	Errors        uint64
	Cancelled     uint64
	Panics        uint64
	Edits         uint64
	TotalDuration time.Duration
}

// AverageDuration returns the mean dispatch time.
func (s CommandStats) AverageDuration() time.Duration {
	if s.Dispatches == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.Dispatches)
}

// Metrics collects dispatch statistics per command.
type Metrics struct {
	mu       sync.Mutex
	commands map[string]*CommandStats
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{commands: make(map[string]*CommandStats)}
}

func (m *Metrics) stats(name string) *CommandStats {
	s := m.commands[name]
	if s == nil {
		s = &CommandStats{Name: name}
		m.commands[name] = s
	}
	return s
}

// RecordDispatch records one finished dispatch.
func (m *Metrics) RecordDispatch(name string, duration time.Duration, result handler.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.stats(name)
	s.Dispatches++
	s.TotalDuration += duration
	s.Edits += uint64(len(result.Edits))

	switch result.Status {
	case handler.StatusNoOp:
		s.NoOps++
	case handler.StatusError:
		s.Errors++
	case handler.StatusCancelled:
		s.Cancelled++
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats(name).Panics++
}

// Command returns the stats for one command.
func (m *Metrics) Command(name string) (CommandStats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.commands[name]
	if !ok {
		return CommandStats{}, false
	}
	return *s, true
}

// Commands returns the stats of every dispatched command, most
// dispatched first.
func (m *Metrics) Commands() []CommandStats {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]CommandStats, 0, len(m.commands))
	for _, s := range m.commands {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Dispatches != out[j].Dispatches {
			return out[i].Dispatches > out[j].Dispatches
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands = make(map[string]*CommandStats)
}

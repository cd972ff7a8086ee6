package filter

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Manager holds named filters, typically loaded from configuration.
// Names are case-insensitive since config keys arrive lowercased.
type Manager struct {
	filters map[string]*Filter
	mu      sync.RWMutex
}

// NewManager creates an empty filter manager
func NewManager() *Manager {
	return &Manager{
		filters: make(map[string]*Filter),
	}
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[normalizeName(name)] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers multiple filters at once. Nothing is registered
// unless every expression compiles.
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]*Filter, len(filters))

	for name, expression := range filters {
		filter, err := Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[normalizeName(name)] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (*Filter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[normalizeName(name)]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered filter names, sorted
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve returns the named filter if one is registered under nameOrExpr,
// and otherwise compiles nameOrExpr as an expression. An empty input
// resolves to a nil filter, which matches everything.
func (m *Manager) Resolve(nameOrExpr string) (*Filter, error) {
	if nameOrExpr == "" {
		return nil, nil
	}
	if filter, ok := m.GetFilter(nameOrExpr); ok {
		return filter, nil
	}
	return Compile(nameOrExpr)
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

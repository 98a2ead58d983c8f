package universe

import (
	"sort"
	"strings"
	"sync"
)

// Module is the reflection-equivalent query surface the engine depends on.
// The engine only needs name lookup, enumeration, and whether the module
// names its types with interactive-session prefixes.
type Module interface {
	// Name returns the module's display name.
	Name() string

	// TypeByName returns the type with the exact qualified name, if any.
	TypeByName(name string) (*NamedType, bool)

	// AllTypes enumerates every type defined by the module.
	AllTypes() []*NamedType

	// UsesSessionNaming reports whether the module's types carry synthetic
	// interactive-session name prefixes and must be searched by fixed-up
	// name instead of exact name.
	UsesSessionNaming() bool
}

// MemoryModule is an in-memory Module backed by an indexed type table.
//
// Thread-safe: all methods can be called concurrently.
type MemoryModule struct {
	mu            sync.RWMutex
	name          string
	sessionNaming bool
	types         map[string]*NamedType
	order         []string
}

// NewMemoryModule creates an empty in-memory module.
func NewMemoryModule(name string) *MemoryModule {
	return &MemoryModule{
		name:  name,
		types: make(map[string]*NamedType),
	}
}

// NewSessionModule creates an empty in-memory module whose types use
// interactive-session naming.
func NewSessionModule(name string) *MemoryModule {
	m := NewMemoryModule(name)
	m.sessionNaming = true
	return m
}

func (m *MemoryModule) Name() string { return m.name }

func (m *MemoryModule) UsesSessionNaming() bool { return m.sessionNaming }

// AddType registers a type with the module and records the module as its
// owner. Re-adding a name replaces the previous entry.
func (m *MemoryModule) AddType(t *NamedType) {
	m.mu.Lock()
	defer m.mu.Unlock()

	t.Owner = m
	if _, exists := m.types[t.Name]; !exists {
		m.order = append(m.order, t.Name)
	}
	m.types[t.Name] = t
}

// DefineType creates an empty named type, registers it, and returns it for
// further population.
func (m *MemoryModule) DefineType(name string, arity int) *NamedType {
	t := &NamedType{Name: name, Arity: arity}
	m.AddType(t)
	return t
}

func (m *MemoryModule) TypeByName(name string) (*NamedType, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.types[name]
	return t, ok
}

func (m *MemoryModule) AllTypes() []*NamedType {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*NamedType, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.types[name])
	}
	return out
}

// Universe is an ordered list of modules that together define a closed set
// of types.
type Universe []Module

// ModuleNames returns the names of the universe's modules in order.
func (u Universe) ModuleNames() []string {
	names := make([]string, len(u))
	for i, m := range u {
		names[i] = m.Name()
	}
	return names
}

// String renders the universe as its module list.
func (u Universe) String() string {
	return strings.Join(u.ModuleNames(), ", ")
}

// TypeNames returns the sorted full names of every type in the universe.
func (u Universe) TypeNames() []string {
	var names []string
	for _, m := range u {
		for _, t := range m.AllTypes() {
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)
	return names
}

package model

import (
	"fmt"
	"sort"
)

// Descriptor binds a name to a settings type. New returns a pointer to a
// fresh instance with every default already applied; materialization decodes
// the merged mapping over it, so untouched fields keep their defaults and
// scaffolding can read them back.
type Descriptor struct {
	Name string
	Doc  string
	New  func() any
}

// Registry is an explicit name-to-descriptor lookup for CLI use. It has no
// package-level instance: each binary builds its own.
type Registry struct {
	descriptors map[string]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: map[string]*Descriptor{}}
}

// Register adds a descriptor. Registering a duplicate or unusable descriptor
// is a programming error and panics, matching the behavior callers expect
// from init-time wiring.
func (r *Registry) Register(desc *Descriptor) {
	if desc == nil || desc.Name == "" || desc.New == nil {
		panic("model: descriptor must have a name and a constructor")
	}
	if _, exists := r.descriptors[desc.Name]; exists {
		panic(fmt.Sprintf("model: descriptor %q already registered", desc.Name))
	}
	r.descriptors[desc.Name] = desc
}

// Lookup returns the descriptor registered under name.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	desc, ok := r.descriptors[name]
	if !ok {
		return nil, fmt.Errorf("model %q not registered (known models: %v)", name, r.Names())
	}
	return desc, nil
}

// Names lists registered descriptor names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

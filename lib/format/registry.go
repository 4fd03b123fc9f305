package format

import (
	"slices"
	"sync"

	"github.com/ether/padformat/lib/exception"
)

// Registry maps format names to their descriptor lists. It may be shared by
// several formatters.
type Registry struct {
	mu      sync.RWMutex
	formats map[string][]*Descriptor
}

func NewRegistry() *Registry {
	return &Registry{formats: make(map[string][]*Descriptor)}
}

// NewDefaultRegistry returns a registry holding the built-in formats.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	for name, list := range DefaultFormats() {
		if err := r.Register(name, list...); err != nil {
			panic(err)
		}
	}
	return r
}

// Register stores the descriptors under name, replacing any previous list.
// The first descriptor is the one used when the format is applied.
func (r *Registry) Register(name string, descriptors ...Descriptor) error {
	if name == "" {
		return exception.NewInvalidDescriptorError(name, "name must not be empty", nil)
	}
	if len(descriptors) == 0 {
		return exception.NewInvalidDescriptorError(name, "at least one descriptor is required", nil)
	}
	list := make([]*Descriptor, 0, len(descriptors))
	for i := range descriptors {
		d := descriptors[i]
		if d.Kind() == 0 {
			return exception.NewInvalidDescriptorError(name, "descriptor needs inline, block or selector", nil)
		}
		if err := d.applyDefaults(); err != nil {
			return exception.NewInvalidDescriptorError(name, "selector does not compile", err)
		}
		list = append(list, &d)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.formats[name] = list
	return nil
}

func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.formats, name)
}

func (r *Registry) Get(name string) ([]*Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, ok := r.formats[name]
	return list, ok
}

func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names lists the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.formats))
	for name := range r.formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Group returns the other formats sharing a group with name.
func (r *Registry) Group(name string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list, ok := r.formats[name]
	if !ok || list[0].Group == "" {
		return nil
	}
	group := list[0].Group
	members := make([]string, 0)
	for other, descriptors := range r.formats {
		if other != name && descriptors[0].Group == group {
			members = append(members, other)
		}
	}
	slices.Sort(members)
	return members
}

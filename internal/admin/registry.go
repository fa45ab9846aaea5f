// Package admin implements the registry of entity types exposed in the
// administrative interface. Each entity type is registered once at startup
// together with a view descriptor declaring how the generic
// list/search/filter/edit surface presents and constrains its records.
package admin

import (
	"fmt"
	"sort"
	"sync"
)

// Descriptor declares, for one entity type, how the administrative
// list/search/filter/edit interface presents and constrains records.
// A descriptor is immutable after registration.
type Descriptor struct {
	// ListDisplay is the ordered sequence of fields or computed accessors
	// shown as table columns.
	ListDisplay []string
	// SearchFields is the set of text fields eligible for substring search.
	SearchFields []string
	// Exclude is the set of fields hidden from the add/change form and
	// immutable through it.
	Exclude []string
	// ListFilter is the set of fields offered as sidebar filter facets.
	ListFilter []string
}

// Entry is a registered entity type together with its descriptor and the
// metadata the admin index page needs to link to it.
type Entry struct {
	// Name is the unique slug of the entity type (e.g. "staticplaceholder").
	Name string
	// Label is the human-readable plural label shown on the index page.
	Label string
	// Path is the URL of the entity type's list view.
	Path string
	// Descriptor is the view descriptor for the entity type.
	Descriptor Descriptor
}

// Registry maps entity types to their view descriptors. It is populated at
// startup by the handlers registering themselves and is read-only afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty admin registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]Entry),
	}
}

// Register adds an entity type with its view descriptor. Every field name
// the descriptor references is validated against the model's declared
// fields; ListDisplay entries may also name computed accessors (snake_case
// of an exported niladic method, e.g. "get_name" for GetName). Registering
// the same entity type twice returns ErrAlreadyRegistered.
func (r *Registry) Register(name, label, path string, model any, descriptor Descriptor) error {
	if model == nil {
		return ErrNilModel
	}

	if err := validateDescriptor(model, descriptor); err != nil {
		return fmt.Errorf("register %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("register %s: %w", name, ErrAlreadyRegistered)
	}

	r.entries[name] = Entry{
		Name:       name,
		Label:      label,
		Path:       path,
		Descriptor: copyDescriptor(descriptor),
	}

	return nil
}

// Entry returns the registered entry for an entity type.
func (r *Registry) Entry(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[name]
	if !ok {
		return Entry{}, fmt.Errorf("%s: %w", name, ErrNotRegistered)
	}

	return entry, nil
}

// Descriptor returns the view descriptor for an entity type.
func (r *Registry) Descriptor(name string) (Descriptor, error) {
	entry, err := r.Entry(name)
	if err != nil {
		return Descriptor{}, err
	}

	return entry.Descriptor, nil
}

// Has reports whether an entity type is registered and therefore visible in
// the administrative interface.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.entries[name]

	return ok
}

// Entries returns all registered entries sorted by label, for the admin
// index page.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Entry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})

	return out
}

// validateDescriptor checks every field name the descriptor references
// against the model. ListDisplay may reference computed accessors; the
// other option sets must name declared fields.
func validateDescriptor(model any, descriptor Descriptor) error {
	fields := fieldNames(model)

	for _, name := range descriptor.ListDisplay {
		if !fields[name] && !hasAccessor(model, name) {
			return fmt.Errorf("list_display %q: %w", name, ErrUnknownField)
		}
	}

	for _, name := range descriptor.SearchFields {
		if !fields[name] {
			return fmt.Errorf("search_fields %q: %w", name, ErrUnknownField)
		}
	}

	for _, name := range descriptor.Exclude {
		if !fields[name] {
			return fmt.Errorf("exclude %q: %w", name, ErrUnknownField)
		}
	}

	for _, name := range descriptor.ListFilter {
		if !fields[name] {
			return fmt.Errorf("list_filter %q: %w", name, ErrUnknownField)
		}
	}

	return nil
}

// copyDescriptor deep-copies a descriptor so registered entries cannot be
// mutated through the caller's slices.
func copyDescriptor(d Descriptor) Descriptor {
	return Descriptor{
		ListDisplay:  append([]string(nil), d.ListDisplay...),
		SearchFields: append([]string(nil), d.SearchFields...),
		Exclude:      append([]string(nil), d.Exclude...),
		ListFilter:   append([]string(nil), d.ListFilter...),
	}
}

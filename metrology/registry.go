package metrology

import "fmt"

// Registry resolves units by ID. Populate it during setup; lookups after
// that are read-only.
type Registry struct {
	byID map[string]*Unit
}

// NewRegistry creates an empty unit registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]*Unit)}
}

// Register adds a unit; duplicate IDs are rejected.
func (r *Registry) Register(unit *Unit) error {
	if _, exists := r.byID[unit.ID]; exists {
		return fmt.Errorf("unit %q is already registered", unit.ID)
	}
	r.byID[unit.ID] = unit
	return nil
}

// Resolve looks up a unit by ID.
func (r *Registry) Resolve(id string) (*Unit, error) {
	if unit, ok := r.byID[id]; ok {
		return unit, nil
	}
	return nil, fmt.Errorf("unknown unit id %q", id)
}

// StandardRegistry returns a registry holding the well-known dimensionless
// units.
func StandardRegistry() *Registry {
	r := NewRegistry()
	for _, u := range []*Unit{NumberUnit, RatioUnit, DisparityUnit} {
		if err := r.Register(u); err != nil {
			panic(err)
		}
	}
	return r
}

package scene

import (
	"fmt"

	"github.com/chazu/dioptra/pkg/optics"
)

// Defaults contains scene-wide trace settings.
type Defaults struct {
	Reach    float64 `json:"reach"`     // x distance covered by an uncontacted ray
	MaxDepth int     `json:"max_depth"` // redirection cap per light path
}

// Description is the top-level immutable structure produced by evaluating a
// scene file. It is never mutated once handed out; each evaluation produces a
// new one. Element order is registration order and decides scan order.
type Description struct {
	Elements  []*Element           `json:"elements"`
	NameIndex map[string]ElementID `json:"name_index"`
	Defaults  Defaults             `json:"defaults"`
	Version   uint64               `json:"version"`
}

// New creates an empty Description with default settings.
func New() *Description {
	return &Description{
		NameIndex: make(map[string]ElementID),
		Defaults: Defaults{
			Reach:    optics.DefaultReach,
			MaxDepth: optics.DefaultMaxDepth,
		},
	}
}

// Add appends an element. It does not check for duplicates.
func (d *Description) Add(e *Element) {
	d.Elements = append(d.Elements, e)
	if e.Name != "" {
		d.NameIndex[e.Name] = e.ID
	}
}

// Lookup returns the element with the given name, or nil.
func (d *Description) Lookup(name string) *Element {
	id, ok := d.NameIndex[name]
	if !ok {
		return nil
	}
	return d.Get(id)
}

// MustLookup returns the element with the given name, or panics.
func (d *Description) MustLookup(name string) *Element {
	e := d.Lookup(name)
	if e == nil {
		panic(fmt.Sprintf("scene: no element named %q", name))
	}
	return e
}

// Get returns the element with the given ID, or nil.
func (d *Description) Get(id ElementID) *Element {
	for _, e := range d.Elements {
		if e != nil && e.ID == id {
			return e
		}
	}
	return nil
}

// Surfaces returns mirror, lens and interface elements in order.
func (d *Description) Surfaces() []*Element {
	var out []*Element
	for _, e := range d.Elements {
		if e != nil && e.Kind.IsSurface() {
			out = append(out, e)
		}
	}
	return out
}

// Sources returns source elements in order.
func (d *Description) Sources() []*Element {
	var out []*Element
	for _, e := range d.Elements {
		if e != nil && e.Kind == ElementSource {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of elements.
func (d *Description) Len() int {
	return len(d.Elements)
}

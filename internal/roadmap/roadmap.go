package roadmap

import (
	"maps"
	"slices"
)

// Item is a single trackable unit within a roadmap.
type Item struct {
	ID           string
	Name         string
	Description  string
	ExternalLink string
	Status       Status
	Notes        string
	DueDate      string

	// Extra holds fields not known to this package. They are written back
	// on export exactly as they were read.
	Extra Fields

	// Set when the optional field was present in the decoded input, so an
	// empty value is still written back.
	hasExternalLink bool
	hasDueDate      bool
}

// Roadmap is a named curriculum made of an ordered sequence of items.
type Roadmap struct {
	Name        string
	Description string
	Items       []Item

	Extra Fields
}

// Clone returns a deep copy of the roadmap.
func (r *Roadmap) Clone() *Roadmap {
	if r == nil {
		return nil
	}
	c := &Roadmap{
		Name:        r.Name,
		Description: r.Description,
		Items:       make([]Item, len(r.Items)),
		Extra:       r.Extra.clone(),
	}
	for i, it := range r.Items {
		c.Items[i] = it.Clone()
	}
	return c
}

// Clone returns a deep copy of the item.
func (it Item) Clone() Item {
	it.Extra = it.Extra.clone()
	return it
}

// FindItem returns the first item with the given id.
func (r *Roadmap) FindItem(id string) (Item, bool) {
	for _, it := range r.Items {
		if it.ID == id {
			return it.Clone(), true
		}
	}
	return Item{}, false
}

// WithItem returns a new roadmap in which the first item whose ID equals
// item.ID is replaced by item. The receiver is not modified. The second
// result reports whether a replacement happened; when it is false the
// returned roadmap is the receiver itself.
func (r *Roadmap) WithItem(item Item) (*Roadmap, bool) {
	idx := slices.IndexFunc(r.Items, func(it Item) bool { return it.ID == item.ID })
	if idx < 0 {
		return r, false
	}
	items := slices.Clone(r.Items)
	items[idx] = item.Clone()
	return &Roadmap{
		Name:        r.Name,
		Description: r.Description,
		Items:       items,
		Extra:       r.Extra,
	}, true
}

// Equal reports whether two items hold the same values, extras included.
func (it Item) Equal(other Item) bool {
	return it.ID == other.ID &&
		it.Name == other.Name &&
		it.Description == other.Description &&
		it.ExternalLink == other.ExternalLink &&
		it.Status == other.Status &&
		it.Notes == other.Notes &&
		it.DueDate == other.DueDate &&
		it.Extra.equal(other.Extra)
}

// Equal reports whether two roadmaps hold the same values.
func (r *Roadmap) Equal(other *Roadmap) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Name == other.Name &&
		r.Description == other.Description &&
		r.Extra.equal(other.Extra) &&
		slices.EqualFunc(r.Items, other.Items, Item.Equal)
}

// Fields maps unknown JSON field names to their raw encoded values.
type Fields map[string][]byte

func (f Fields) clone() Fields {
	if f == nil {
		return nil
	}
	c := make(Fields, len(f))
	for k, v := range f {
		c[k] = slices.Clone(v)
	}
	return c
}

func (f Fields) equal(other Fields) bool {
	if len(f) != len(other) {
		return false
	}
	return maps.EqualFunc(f, other, func(a, b []byte) bool { return string(a) == string(b) })
}

// sortedKeys returns the field names in lexical order.
func (f Fields) sortedKeys() []string {
	return slices.Sorted(maps.Keys(f))
}

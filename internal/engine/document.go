package engine

import (
	"cmp"
	"slices"

	"github.com/dshills/quickcard/internal/engine/element"
)

// Document is an immutable set of canvas elements.
//
// Collection order has no meaning for painting; paint order comes from
// zIndex, with collection order breaking ties. Every method that returns
// elements returns a fresh slice, so a Document can be shared freely.
type Document struct {
	elements []element.Element
}

// NewDocument creates a document holding a copy of els.
func NewDocument(els ...element.Element) Document {
	return Document{elements: slices.Clone(els)}
}

// Len returns the number of elements.
func (d Document) Len() int {
	return len(d.elements)
}

// IsEmpty returns true if the document has no elements.
func (d Document) IsEmpty() bool {
	return len(d.elements) == 0
}

// Elements returns the elements in collection order.
func (d Document) Elements() []element.Element {
	return slices.Clone(d.elements)
}

// Ordered returns the elements in paint order: ascending zIndex, ties kept in
// collection order.
func (d Document) Ordered() []element.Element {
	sorted := slices.Clone(d.elements)
	slices.SortStableFunc(sorted, func(a, b element.Element) int {
		return cmp.Compare(element.ZIndex(a), element.ZIndex(b))
	})
	return sorted
}

// Find returns the element with the given id.
func (d Document) Find(id string) (element.Element, bool) {
	if i := d.index(id); i >= 0 {
		return d.elements[i], true
	}
	return nil, false
}

// Has reports whether an element with the given id exists.
func (d Document) Has(id string) bool {
	return d.index(id) >= 0
}

// IDs returns the element ids in collection order.
func (d Document) IDs() []string {
	ids := make([]string, len(d.elements))
	for i, el := range d.elements {
		ids[i] = element.ID(el)
	}
	return ids
}

// ZRange returns the smallest and largest zIndex. ok is false for an empty document.
func (d Document) ZRange() (lo, hi int, ok bool) {
	if len(d.elements) == 0 {
		return 0, 0, false
	}
	lo = element.ZIndex(d.elements[0])
	hi = lo
	for _, el := range d.elements[1:] {
		z := element.ZIndex(el)
		lo = min(lo, z)
		hi = max(hi, z)
	}
	return lo, hi, true
}

func (d Document) index(id string) int {
	return slices.IndexFunc(d.elements, func(el element.Element) bool {
		return element.ID(el) == id
	})
}

// with returns a new document with el appended.
func (d Document) with(el element.Element) Document {
	els := make([]element.Element, len(d.elements), len(d.elements)+1)
	copy(els, d.elements)
	return Document{elements: append(els, el)}
}

// replaced returns a new document with the element at i replaced.
func (d Document) replaced(i int, el element.Element) Document {
	els := slices.Clone(d.elements)
	els[i] = el
	return Document{elements: els}
}

// without returns a new document with the element at i removed.
func (d Document) without(i int) Document {
	els := make([]element.Element, 0, len(d.elements)-1)
	els = append(els, d.elements[:i]...)
	els = append(els, d.elements[i+1:]...)
	return Document{elements: els}
}

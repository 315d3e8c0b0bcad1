package engine

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/dshills/quickcard/internal/engine/element"
)

// Direction selects how ReorderLayer moves an element in the stack.
type Direction string

const (
	// Up swaps the element with the one directly above it.
	Up Direction = "up"
	// Down swaps the element with the one directly below it.
	Down Direction = "down"
	// Front places the element above every other element.
	Front Direction = "front"
	// Back places the element below every other element.
	Back Direction = "back"
)

// Directions lists every direction.
var Directions = []Direction{Up, Down, Front, Back}

// ParseDirection converts a name to a Direction.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Up, Down, Front, Back:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// description returns the history entry text for a reorder.
func (d Direction) description() string {
	switch d {
	case Up:
		return "Bring forward"
	case Down:
		return "Send backward"
	case Front:
		return "Bring to front"
	case Back:
		return "Send to back"
	}
	return "Reorder layer"
}

// reorder computes the document produced by moving id in direction d.
// It reports false when the move changes nothing and must not be committed.
func reorder(doc Document, id string, d Direction) (Document, bool) {
	if !doc.Has(id) {
		return doc, false
	}

	// Stable sort of collection positions by zIndex.
	order := make([]int, doc.Len())
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(element.ZIndex(doc.elements[a]), element.ZIndex(doc.elements[b]))
	})

	pos := slices.IndexFunc(order, func(i int) bool {
		return element.ID(doc.elements[i]) == id
	})
	target := order[pos]

	switch d {
	case Up, Down:
		neighbor := pos + 1
		if d == Down {
			neighbor = pos - 1
		}
		if neighbor < 0 || neighbor >= len(order) {
			return doc, false
		}
		other := order[neighbor]
		tz := element.ZIndex(doc.elements[target])
		oz := element.ZIndex(doc.elements[other])

		els := slices.Clone(doc.elements)
		els[target] = element.WithZIndex(els[target], oz)
		els[other] = element.WithZIndex(els[other], tz)
		return Document{elements: els}, true

	case Front:
		_, hi, _ := doc.ZRange()
		if hi == math.MaxInt {
			return doc, false
		}
		return doc.replaced(target, element.WithZIndex(doc.elements[target], hi+1)), true

	case Back:
		lo, _, _ := doc.ZRange()
		if lo == math.MinInt {
			return doc, false
		}
		return doc.replaced(target, element.WithZIndex(doc.elements[target], lo-1)), true
	}
	return doc, false
}

// Package scene defines the read model handed to rendering layers.
package scene

import "github.com/dshills/quickcard/internal/engine/element"

// Scene is what a renderer draws: the elements in paint order, the
// selected element and the state revision the scene reflects.
type Scene struct {
	Elements []element.Element // ascending zIndex, ties in insertion order
	Selected string            // empty when nothing is selected
	Revision uint64
}

// Source provides the latest scene.
type Source interface {
	Scene() Scene
}

// SourceFunc adapts a function to Source.
type SourceFunc func() Scene

// Scene calls f.
func (f SourceFunc) Scene() Scene {
	return f()
}

// SelectedElement returns the selected element, if any.
func (s Scene) SelectedElement() (element.Element, bool) {
	if s.Selected == "" {
		return nil, false
	}
	for _, el := range s.Elements {
		if element.ID(el) == s.Selected {
			return el, true
		}
	}
	return nil, false
}

// HitTest returns the topmost element whose unrotated box contains (x, y).
func (s Scene) HitTest(x, y float64) (element.Element, bool) {
	for i := len(s.Elements) - 1; i >= 0; i-- {
		b := s.Elements[i].Geometry()
		if x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height {
			return s.Elements[i], true
		}
	}
	return nil, false
}

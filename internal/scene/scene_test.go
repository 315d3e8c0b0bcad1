package scene

import (
	"testing"

	"github.com/dshills/quickcard/internal/engine/element"
)

func box(id string, x, y, w, h float64) element.Shape {
	return element.Shape{Base: element.Base{ID: id, X: x, Y: y, Width: w, Height: h}}
}

func TestSelectedElement(t *testing.T) {
	s := Scene{Elements: []element.Element{box("a", 0, 0, 1, 1)}, Selected: "a"}
	if el, ok := s.SelectedElement(); !ok || element.ID(el) != "a" {
		t.Errorf("SelectedElement() = %v, %v", el, ok)
	}

	s.Selected = "gone"
	if _, ok := s.SelectedElement(); ok {
		t.Error("stale selection resolved")
	}
	s.Selected = ""
	if _, ok := s.SelectedElement(); ok {
		t.Error("empty selection resolved")
	}
}

func TestHitTestPrefersTopmost(t *testing.T) {
	s := Scene{Elements: []element.Element{
		box("bottom", 0, 0, 100, 100),
		box("top", 50, 50, 100, 100),
	}}

	tests := []struct {
		x, y float64
		want string
	}{
		{10, 10, "bottom"},
		{60, 60, "top"},
		{149, 149, "top"},
		{150, 150, ""},
	}
	for _, tt := range tests {
		el, ok := s.HitTest(tt.x, tt.y)
		got := ""
		if ok {
			got = element.ID(el)
		}
		if got != tt.want {
			t.Errorf("HitTest(%v, %v) = %q, want %q", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestSourceFunc(t *testing.T) {
	src := SourceFunc(func() Scene { return Scene{Revision: 7} })
	if src.Scene().Revision != 7 {
		t.Error("SourceFunc did not delegate")
	}
}

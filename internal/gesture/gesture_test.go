package gesture

import (
	"errors"
	"math"
	"testing"

	"github.com/dshills/quickcard/internal/engine/element"
)

type recordingUpdater struct {
	calls []element.Patch
	ids   []string
}

func (u *recordingUpdater) UpdateElement(id string, p element.Patch) bool {
	u.ids = append(u.ids, id)
	u.calls = append(u.calls, p)
	return true
}

func setup(b element.Base) (*Reconciler, *VisualHandle, *recordingUpdater) {
	hm := NewHandleMap()
	vh := NewVisualHandle(b)
	hm.Set(b.ID, vh)
	u := &recordingUpdater{}
	return NewReconciler(hm, u, nil), vh, u
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMatrix_Decompose(t *testing.T) {
	tests := []struct {
		name string
		deg  float64
		want float64
	}{
		{"zero", 0, 0},
		{"quarter", 90, 90},
		{"negative", -45, -45},
		{"wraps past 180", 270, -90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Translate(10, 20).Multiply(Rotation(tt.deg))
			if !approx(m.RotationDegrees(), tt.want) {
				t.Errorf("RotationDegrees() = %v, want %v", m.RotationDegrees(), tt.want)
			}
			if x, y := m.Translation(); x != 10 || y != 20 {
				t.Errorf("Translation() = %v, %v", x, y)
			}
		})
	}
}

func TestMatrix_Identity(t *testing.T) {
	m := Rotation(30).Multiply(Identity())
	r := Rotation(30)
	if !approx(m.A, r.A) || !approx(m.B, r.B) || m.E != 0 || m.F != 0 {
		t.Errorf("m = %+v", m)
	}
}

func TestDragCommitsTranslation(t *testing.T) {
	r, vh, u := setup(element.Base{ID: "a", X: 50, Y: 50, Width: 100, Height: 40, Rotation: 30})

	g, err := r.Begin("a", Drag)
	if err != nil {
		t.Fatalf("Begin() error = %v", err)
	}
	vh.MoveBy(10, -5)
	vh.MoveBy(2.5, 0)
	if len(u.calls) != 0 {
		t.Fatal("intermediate frames reached the updater")
	}

	if committed, err := g.End(); err != nil || !committed {
		t.Fatalf("End() = %v, %v", committed, err)
	}
	if len(u.calls) != 1 {
		t.Fatalf("updates = %d, want 1", len(u.calls))
	}
	p := u.calls[0]
	if *p.X != 62.5 || *p.Y != 45 {
		t.Errorf("x, y = %v, %v", *p.X, *p.Y)
	}
	if p.Width != nil || p.Rotation != nil {
		t.Errorf("drag committed extra fields %v", p.Fields())
	}
}

func TestResizeCommitsSizeAndOrigin(t *testing.T) {
	r, vh, u := setup(element.Base{ID: "a", X: 50, Y: 50, Width: 100, Height: 100})

	g, _ := r.Begin("a", Resize)
	vh.ResizeTo(40.5, 30, 110.9, 120.2)
	g.End()

	p := u.calls[0]
	if *p.Width != 110 || *p.Height != 120 {
		t.Errorf("size = %v x %v, want 110 x 120", *p.Width, *p.Height)
	}
	if *p.X != 40.5 || *p.Y != 30 {
		t.Errorf("origin = %v, %v", *p.X, *p.Y)
	}
}

func TestRotateCommitsRoundedDegrees(t *testing.T) {
	r, vh, u := setup(element.Base{ID: "a", Width: 10, Height: 10})

	g, _ := r.Begin("a", Rotate)
	vh.RotateTo(44.6)
	g.End()

	p := u.calls[0]
	if *p.Rotation != 45 {
		t.Errorf("rotation = %v, want 45", *p.Rotation)
	}
	if len(p.Fields()) != 1 {
		t.Errorf("fields = %v", p.Fields())
	}
}

func TestCancelDoesNotCommit(t *testing.T) {
	r, vh, u := setup(element.Base{ID: "a", Width: 10, Height: 10})

	g, _ := r.Begin("a", Drag)
	vh.MoveBy(100, 100)
	if err := g.Cancel(); err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}
	if len(u.calls) != 0 {
		t.Error("cancel committed")
	}
	if _, ok := r.Active(); ok {
		t.Error("gesture still active after cancel")
	}
}

func TestGestureEndsOnce(t *testing.T) {
	r, _, u := setup(element.Base{ID: "a", Width: 10, Height: 10})

	g, _ := r.Begin("a", Drag)
	g.End()
	if _, err := g.End(); !errors.Is(err, ErrGestureEnded) {
		t.Errorf("second End() error = %v", err)
	}
	if err := g.Cancel(); !errors.Is(err, ErrGestureEnded) {
		t.Errorf("Cancel() after End error = %v", err)
	}
	if len(u.calls) != 1 {
		t.Errorf("updates = %d", len(u.calls))
	}
}

func TestBeginErrors(t *testing.T) {
	r, _, _ := setup(element.Base{ID: "a", Width: 10, Height: 10})

	if _, err := r.Begin("missing", Drag); !errors.Is(err, ErrNoHandle) {
		t.Errorf("Begin(missing) error = %v", err)
	}
	if _, err := r.Begin("a", Kind(9)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("Begin(bad kind) error = %v", err)
	}

	g, _ := r.Begin("a", Drag)
	if _, err := r.Begin("a", Rotate); !errors.Is(err, ErrGestureActive) {
		t.Errorf("overlapping Begin() error = %v", err)
	}
	g.Cancel()
	if _, err := r.Begin("a", Rotate); err != nil {
		t.Errorf("Begin() after cancel error = %v", err)
	}
}

func TestHandleMapSyncVisual(t *testing.T) {
	hm := NewHandleMap()
	hm.Set("stale", NewVisualHandle(element.Base{ID: "stale"}))

	els := []element.Element{
		element.Shape{Base: element.Base{ID: "a", X: 1, Y: 2, Width: 30, Height: 40}},
		element.QRCode{Base: element.Base{ID: "b", X: 5, Y: 6, Width: 10, Height: 10}},
	}
	hm.SyncVisual(els)

	if hm.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", hm.Len())
	}
	if _, ok := hm.Get("stale"); ok {
		t.Error("stale handle kept")
	}

	h, _ := hm.Get("a")
	vh := h.(*VisualHandle)
	vh.MoveBy(100, 100)

	hm.SyncVisual(els)
	h2, _ := hm.Get("a")
	if h2 != h {
		t.Error("SyncVisual replaced an existing handle")
	}
	if x, y := h2.Transform().Translation(); x != 1 || y != 2 {
		t.Errorf("handle not reset: %v, %v", x, y)
	}
	if s := h2.Size(); s.Width != 30 || s.Height != 40 {
		t.Errorf("size = %+v", s)
	}

	hm.Delete("a")
	if _, ok := hm.Get("a"); ok {
		t.Error("Delete() left handle")
	}
}

func TestHandleMapSyncVisualExceptHolds(t *testing.T) {
	hm := NewHandleMap()
	els := []element.Element{
		element.Shape{Base: element.Base{ID: "a", X: 1, Y: 2, Width: 30, Height: 40}},
		element.Shape{Base: element.Base{ID: "b", X: 5, Y: 6, Width: 10, Height: 10}},
	}
	hm.SyncVisual(els)
	for _, id := range []string{"a", "b"} {
		h, _ := hm.Get(id)
		h.(*VisualHandle).MoveBy(10, 10)
	}

	hm.SyncVisualExcept(els, "a")

	ha, _ := hm.Get("a")
	if x, y := ha.Transform().Translation(); x != 11 || y != 12 {
		t.Errorf("held handle = %v, %v, want 11, 12", x, y)
	}
	hb, _ := hm.Get("b")
	if x, y := hb.Transform().Translation(); x != 5 || y != 6 {
		t.Errorf("other handle = %v, %v, want 5, 6", x, y)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{Drag: "drag", Resize: "resize", Rotate: "rotate", Kind(7): "unknown"} {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q", k, k.String())
		}
	}
}

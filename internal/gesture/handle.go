package gesture

import (
	"sync"

	"github.com/dshills/quickcard/internal/engine/element"
)

// Size is a rendered width and height.
type Size struct {
	Width, Height float64
}

// Handle is the rendering layer's view of one element: its current
// rendered transform and size. During a gesture only the handle changes.
type Handle interface {
	Transform() Matrix
	Size() Size
}

// HandleMap maps element ids to their rendered handles.
// The rendering layer maintains it; the reconciler only reads it.
type HandleMap struct {
	mu      sync.RWMutex
	handles map[string]Handle
}

// NewHandleMap creates an empty handle map.
func NewHandleMap() *HandleMap {
	return &HandleMap{handles: make(map[string]Handle)}
}

// Set registers h for id, replacing any previous handle.
func (m *HandleMap) Set(id string, h Handle) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handles[id] = h
}

// Get returns the handle for id.
func (m *HandleMap) Get(id string) (Handle, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	h, ok := m.handles[id]
	return h, ok
}

// Delete removes the handle for id.
func (m *HandleMap) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.handles, id)
}

// Len returns the number of registered handles.
func (m *HandleMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.handles)
}

// SyncVisual makes the map hold exactly one VisualHandle per element,
// reset to the element's committed geometry. Handles for elements that no
// longer exist are removed.
func (m *HandleMap) SyncVisual(els []element.Element) {
	m.SyncVisualExcept(els, "")
}

// SyncVisualExcept is SyncVisual, except that an existing handle for hold
// keeps its state. Use it to resync while a gesture moves hold.
func (m *HandleMap) SyncVisualExcept(els []element.Element, hold string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	live := make(map[string]bool, len(els))
	for _, el := range els {
		id := element.ID(el)
		live[id] = true
		if vh, ok := m.handles[id].(*VisualHandle); ok {
			if id != hold {
				vh.Reset(el.Geometry())
			}
			continue
		}
		m.handles[id] = NewVisualHandle(el.Geometry())
	}
	for id := range m.handles {
		if !live[id] {
			delete(m.handles, id)
		}
	}
}

// VisualHandle is an in-memory Handle for headless front ends and tests.
// Its transform is translate(x, y) followed by rotate(rotation), matching
// how elements are positioned on the canvas.
type VisualHandle struct {
	mu       sync.Mutex
	x, y     float64
	rotation float64
	size     Size
}

// NewVisualHandle creates a handle positioned at b's geometry.
func NewVisualHandle(b element.Base) *VisualHandle {
	h := &VisualHandle{}
	h.Reset(b)
	return h
}

// Reset moves the handle back to b's geometry.
func (h *VisualHandle) Reset(b element.Base) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.x, h.y = b.X, b.Y
	h.rotation = b.Rotation
	h.size = Size{Width: b.Width, Height: b.Height}
}

// Transform returns the rendered transform.
func (h *VisualHandle) Transform() Matrix {
	h.mu.Lock()
	defer h.mu.Unlock()
	return Translate(h.x, h.y).Multiply(Rotation(h.rotation))
}

// Size returns the rendered size.
func (h *VisualHandle) Size() Size {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// MoveBy translates the handle by (dx, dy).
func (h *VisualHandle) MoveBy(dx, dy float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.x += dx
	h.y += dy
}

// ResizeTo sets the rendered size and origin. Resizing from the top or
// left edges moves the origin along with the size.
func (h *VisualHandle) ResizeTo(x, y, width, height float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.x, h.y = x, y
	h.size = Size{Width: width, Height: height}
}

// RotateTo sets the rendered rotation in degrees.
func (h *VisualHandle) RotateTo(deg float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.rotation = deg
}

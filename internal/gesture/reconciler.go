package gesture

import (
	"fmt"
	"math"
	"sync"

	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/logging"
)

// Kind identifies the type of gesture.
type Kind int

const (
	// Drag moves an element.
	Drag Kind = iota
	// Resize changes an element's size and possibly its origin.
	Resize
	// Rotate changes an element's rotation.
	Rotate
)

// String returns the string representation of the gesture kind.
func (k Kind) String() string {
	switch k {
	case Drag:
		return "drag"
	case Resize:
		return "resize"
	case Rotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Updater receives the single committed update at the end of a gesture.
type Updater interface {
	UpdateElement(id string, p element.Patch) bool
}

// Reconciler turns continuous gestures into discrete element updates.
//
// While a gesture runs the rendering layer updates the element's handle
// freely; nothing reaches the updater. End reads the final rendered state
// from the handle and issues exactly one update.
type Reconciler struct {
	mu      sync.Mutex
	handles *HandleMap
	updater Updater
	active  *Gesture
	logger  *logging.Logger
}

// NewReconciler creates a reconciler reading handles from hm and
// committing through u.
func NewReconciler(hm *HandleMap, u Updater, logger *logging.Logger) *Reconciler {
	return &Reconciler{
		handles: hm,
		updater: u,
		logger:  logging.OrNop(logger).WithComponent("gesture"),
	}
}

// Begin starts a gesture of the given kind on the element with id.
// Only one gesture may be active at a time.
func (r *Reconciler) Begin(id string, kind Kind) (*Gesture, error) {
	if kind < Drag || kind > Rotate {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	h, ok := r.handles.Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandle, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active != nil {
		return nil, fmt.Errorf("%w: %s on %s", ErrGestureActive, r.active.kind, r.active.id)
	}

	g := &Gesture{r: r, id: id, kind: kind, handle: h}
	r.active = g
	r.logger.Debug("begin %s on %s", kind, id)
	return g, nil
}

// Active returns the gesture in progress, if any.
func (r *Reconciler) Active() (*Gesture, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active, r.active != nil
}

func (r *Reconciler) finish(g *Gesture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == g {
		r.active = nil
	}
}

// Gesture is one drag, resize or rotate interaction.
type Gesture struct {
	mu     sync.Mutex
	r      *Reconciler
	id     string
	kind   Kind
	handle Handle
	ended  bool
}

// ID returns the id of the element being manipulated.
func (g *Gesture) ID() string {
	return g.id
}

// Kind returns the gesture kind.
func (g *Gesture) Kind() Kind {
	return g.kind
}

// Handle returns the rendered handle the gesture manipulates.
func (g *Gesture) Handle() Handle {
	return g.handle
}

// End commits the gesture. It reads the handle's final state and calls the
// updater once. It reports whether the updater made a commit.
func (g *Gesture) End() (bool, error) {
	if err := g.close(); err != nil {
		return false, err
	}

	p := PatchFor(g.kind, g.handle)
	committed := g.r.updater.UpdateElement(g.id, p)
	g.r.logger.WithField("id", g.id).Debug("end %s: fields %v committed=%v", g.kind, p.Fields(), committed)
	return committed, nil
}

// Cancel ends the gesture without committing anything.
func (g *Gesture) Cancel() error {
	if err := g.close(); err != nil {
		return err
	}
	g.r.logger.WithField("id", g.id).Debug("cancel %s", g.kind)
	return nil
}

func (g *Gesture) close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ended {
		return ErrGestureEnded
	}
	g.ended = true
	g.r.finish(g)
	return nil
}

// PatchFor computes the committed update for a gesture of kind k from the
// handle's rendered state.
//
//   - Drag commits the translation.
//   - Resize commits the size, truncated to whole units, and the
//     translation, since resizing from some edges moves the origin.
//   - Rotate commits the rotation rounded to whole degrees.
func PatchFor(k Kind, h Handle) element.Patch {
	m := h.Transform()
	switch k {
	case Drag:
		return element.Patch{X: element.Ptr(m.E), Y: element.Ptr(m.F)}
	case Resize:
		s := h.Size()
		return element.Patch{
			X:      element.Ptr(m.E),
			Y:      element.Ptr(m.F),
			Width:  element.Ptr(math.Trunc(s.Width)),
			Height: element.Ptr(math.Trunc(s.Height)),
		}
	case Rotate:
		return element.Patch{Rotation: element.Ptr(math.Round(m.RotationDegrees()))}
	}
	return element.Patch{}
}

package engine

import (
	"fmt"
	"sync"

	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/engine/history"
	"github.com/dshills/quickcard/internal/logging"
)

// Re-export commonly used types for convenience.
type (
	// Element is one object placed on the canvas.
	Element = element.Element

	// Patch is a partial element update.
	Patch = element.Patch

	// Kind discriminates element variants.
	Kind = element.Kind

	// HistoryEntry describes one stored snapshot.
	HistoryEntry = history.EntryInfo
)

// Engine is the document editing facade.
// It owns the undo/redo history of Document snapshots and exposes the
// editing verbs. Every verb that changes the document ends in exactly one
// history commit; verbs that change nothing commit nothing.
//
// Engine is safe for concurrent use.
type Engine struct {
	mu sync.RWMutex

	history *history.Store[Document]
	factory element.Factory
	commits int

	logger *logging.Logger

	// Configuration
	maxUndoEntries int
	initial        []element.Element
}

// New creates an engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		factory:        element.NewFactory(element.DefaultDefaults()),
		logger:         logging.Nop(),
		maxUndoEntries: DefaultMaxUndoEntries,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("engine")

	doc := NewDocument()
	for _, el := range e.initial {
		if err := validateNew(doc, el); err != nil {
			e.logger.Warn("skipping initial element: %v", err)
			continue
		}
		doc = doc.with(el)
	}
	e.initial = nil
	e.history = history.New(doc, e.maxUndoEntries)

	return e
}

// Document returns the current document snapshot.
func (e *Engine) Document() Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.history.Current()
}

// Elements returns the current elements in paint order.
func (e *Engine) Elements() []element.Element {
	return e.Document().Ordered()
}

// Find returns the current element with the given id.
func (e *Engine) Find(id string) (element.Element, bool) {
	return e.Document().Find(id)
}

// Len returns the number of elements in the current document.
func (e *Engine) Len() int {
	return e.Document().Len()
}

// commitLocked records doc as the new current snapshot.
// Caller must hold e.mu.
func (e *Engine) commitLocked(doc Document, description string) {
	e.history.Commit(doc, description)
	e.commits++
	e.logger.Debug("commit %d: %s (%d elements)", e.commits, description, doc.Len())
}

func validateNew(doc Document, el element.Element) error {
	if el == nil {
		return fmt.Errorf("%w: nil element", ErrEmptyID)
	}
	id := element.ID(el)
	if id == "" {
		return ErrEmptyID
	}
	if doc.Has(id) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	return nil
}

// AddElement appends el to the document.
// Elements with an empty or already present id are rejected without a commit.
func (e *Engine) AddElement(el element.Element) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addLocked(el)
}

func (e *Engine) addLocked(el element.Element) error {
	doc := e.history.Current()
	if err := validateNew(doc, el); err != nil {
		return err
	}
	e.commitLocked(doc.with(el), "Add "+el.Kind().String())
	return nil
}

// Add creates an element of the given kind with default content and adds it.
// Images need raster data and must go through AddImage.
func (e *Engine) Add(kind element.Kind) (element.Element, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	count := e.history.Current().Len()
	var el element.Element
	switch kind {
	case element.KindText:
		el = e.factory.Text(count)
	case element.KindShape:
		el = e.factory.Shape(count)
	case element.KindQRCode:
		el = e.factory.DefaultQRCode(count)
	case element.KindImage:
		return nil, ErrImageRequiresSource
	default:
		return nil, fmt.Errorf("%w: %q", element.ErrUnknownKind, string(kind))
	}

	if err := e.addLocked(el); err != nil {
		return nil, err
	}
	return el, nil
}

// AddQRCode adds a QR code element encoding value.
func (e *Engine) AddQRCode(value string) (element.QRCode, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	qr := e.factory.QRCode(e.history.Current().Len(), value)
	if err := e.addLocked(qr); err != nil {
		return element.QRCode{}, err
	}
	return qr, nil
}

// AddImage adds an image element referencing src, sized from its natural dimensions.
func (e *Engine) AddImage(src string, naturalWidth, naturalHeight float64) (element.Image, error) {
	if src == "" {
		return element.Image{}, ErrImageRequiresSource
	}
	if !(naturalWidth > 0) || !(naturalHeight > 0) {
		return element.Image{}, fmt.Errorf("%w: %vx%v", ErrInvalidImageSize, naturalWidth, naturalHeight)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	img := e.factory.Image(e.history.Current().Len(), src, naturalWidth, naturalHeight)
	if err := e.addLocked(img); err != nil {
		return element.Image{}, err
	}
	return img, nil
}

// UpdateElement merges p into the element with the given id.
//
// The element keeps its id, its variant and every field p does not set.
// Fields that the element's variant does not define are ignored. It reports
// whether a commit was made: an unknown id, or a patch with no field
// applicable to the element, changes nothing.
func (e *Engine) UpdateElement(id string, p element.Patch) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := e.history.Current()
	i := doc.index(id)
	if i < 0 {
		e.logger.Debug("update: no element %s", id)
		return false
	}

	updated, applied, ignored := element.Apply(doc.elements[i], p)
	if len(ignored) > 0 {
		e.logger.WithFields(map[string]any{
			"id":   id,
			"kind": updated.Kind(),
		}).Debug("update: ignoring fields %v", ignored)
	}
	if len(applied) == 0 {
		return false
	}

	e.commitLocked(doc.replaced(i, updated), "Update element")
	return true
}

// DeleteElement removes the element with the given id.
// It reports false, without a commit, when no such element exists.
func (e *Engine) DeleteElement(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc := e.history.Current()
	i := doc.index(id)
	if i < 0 {
		return false
	}

	e.commitLocked(doc.without(i), "Delete element")
	return true
}

// ReorderLayer changes the stacking position of the element with the given id.
//
// Only zIndex values change. Up and Down swap zIndex with the neighbor in
// paint order and do nothing at the top or bottom of the stack. Front sets
// zIndex to one more than the current maximum, Back to one less than the
// current minimum; neither commits when that would leave the int range.
// It reports whether a commit was made.
func (e *Engine) ReorderLayer(id string, d Direction) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, changed := reorder(e.history.Current(), id, d)
	if !changed {
		return false
	}

	e.commitLocked(doc, d.description())
	return true
}

// Undo steps back one snapshot. It reports false when there is nothing to undo.
func (e *Engine) Undo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.history.Undo()
	return ok
}

// Redo steps forward one snapshot. It reports false when there is nothing to redo.
func (e *Engine) Redo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, ok := e.history.Redo()
	return ok
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool {
	return e.history.CanUndo()
}

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool {
	return e.history.CanRedo()
}

// CommitCount returns the number of commits made since the engine was created.
func (e *Engine) CommitCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.commits
}

// History returns info about every stored snapshot, oldest first.
func (e *Engine) History() []HistoryEntry {
	return e.history.Entries()
}

// HistoryCursor returns the index of the current snapshot in History.
func (e *Engine) HistoryCursor() int {
	return e.history.Cursor()
}

// PeekUndo returns info about the edit Undo would revert.
func (e *Engine) PeekUndo() (HistoryEntry, bool) {
	return e.history.PeekUndo()
}

// PeekRedo returns info about the edit Redo would reapply.
func (e *Engine) PeekRedo() (HistoryEntry, bool) {
	return e.history.PeekRedo()
}

// SetMaxUndoEntries changes the history limit.
func (e *Engine) SetMaxUndoEntries(max int) {
	e.history.SetMaxEntries(max)
}

// MaxUndoEntries returns the history limit.
func (e *Engine) MaxUndoEntries() int {
	return e.history.MaxEntries()
}

// SetDefaults changes the style given to elements added from now on.
func (e *Engine) SetDefaults(d element.Defaults) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.factory.Defaults = d
}

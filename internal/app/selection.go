package app

import (
	"fmt"

	"github.com/dshills/quickcard/internal/event"
)

// Selected returns the id of the selected element, or "".
func (a *App) Selected() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.selected
}

// Select makes the element with id the selection.
func (a *App) Select(id string) error {
	if id == "" {
		a.ClearSelection()
		return nil
	}

	a.mu.Lock()
	if _, ok := a.engine.Find(id); !ok {
		a.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if a.selected == id {
		a.mu.Unlock()
		return nil
	}
	c := SelectionChange{Previous: a.selected, Current: id}
	a.selected = id
	a.revision++
	c.Revision = a.revision
	a.mu.Unlock()

	a.publish(event.TopicSelectionChanged, c)
	return nil
}

// ClearSelection deselects and returns the revision that reflects the
// empty selection. It implements export.Deselector.
func (a *App) ClearSelection() uint64 {
	a.mu.Lock()
	if a.selected == "" {
		rev := a.revision
		a.mu.Unlock()
		return rev
	}
	c := SelectionChange{Previous: a.selected}
	a.selected = ""
	a.revision++
	c.Revision = a.revision
	a.mu.Unlock()

	a.publish(event.TopicSelectionChanged, c)
	return c.Revision
}

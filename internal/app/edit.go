package app

import (
	"fmt"

	"github.com/dshills/quickcard/internal/engine"
	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/event"
	"github.com/dshills/quickcard/internal/event/topic"
	"github.com/dshills/quickcard/internal/imagesrc"
)

// Change is the payload of document events.
type Change struct {
	Description string // the edit committed, undone or redone
	Revision    uint64
	Elements    int
}

// SelectionChange is the payload of TopicSelectionChanged.
type SelectionChange struct {
	Previous string
	Current  string
	Revision uint64
}

// change runs fn under the app lock. When fn reports a document change the
// revision advances, a selection pointing at a vanished element is cleared,
// handles are resynced and events are published.
func (a *App) change(t topic.Topic, fn func() bool) bool {
	a.mu.Lock()
	if !fn() {
		a.mu.Unlock()
		return false
	}
	a.revision++
	var sel *SelectionChange
	if a.selected != "" {
		if _, ok := a.engine.Find(a.selected); !ok {
			sel = &SelectionChange{Previous: a.selected, Revision: a.revision}
			a.selected = ""
		}
	}
	c := Change{
		Description: a.describe(t),
		Revision:    a.revision,
		Elements:    a.engine.Len(),
	}
	a.mu.Unlock()

	a.syncHandles()
	a.logger.WithField("rev", c.Revision).Debug("%s: %s", t, c.Description)
	a.publish(t, c)
	if sel != nil {
		a.publish(event.TopicSelectionChanged, *sel)
	}
	return true
}

// syncHandles resets every handle to the document, leaving the handle of a
// gesture in progress where the user has it.
func (a *App) syncHandles() {
	var hold string
	if g, ok := a.gestures.Active(); ok {
		hold = g.ID()
	}
	a.handles.SyncVisualExcept(a.engine.Elements(), hold)
}

// describe names the edit that just moved the history cursor.
func (a *App) describe(t topic.Topic) string {
	var info engine.HistoryEntry
	if t == event.TopicDocumentUndone {
		info, _ = a.engine.PeekRedo()
	} else {
		info, _ = a.engine.PeekUndo()
	}
	return info.Description
}

// Add appends a new element of kind with default properties.
// Images need a source; use AddImage or AddImageFile.
func (a *App) Add(kind element.Kind) (element.Element, error) {
	var el element.Element
	var err error
	a.change(event.TopicDocumentCommitted, func() bool {
		el, err = a.engine.Add(kind)
		return err == nil
	})
	return el, err
}

// AddQRCode appends a QR code encoding value.
func (a *App) AddQRCode(value string) (element.QRCode, error) {
	var qr element.QRCode
	var err error
	a.change(event.TopicDocumentCommitted, func() bool {
		qr, err = a.engine.AddQRCode(value)
		return err == nil
	})
	return qr, err
}

// AddImage appends an image with the given source and natural size.
func (a *App) AddImage(src string, naturalWidth, naturalHeight float64) (element.Image, error) {
	var img element.Image
	var err error
	a.change(event.TopicDocumentCommitted, func() bool {
		img, err = a.engine.AddImage(src, naturalWidth, naturalHeight)
		return err == nil
	})
	return img, err
}

// AddImageData appends encoded image bytes, stored inline as a data URI.
func (a *App) AddImageData(data []byte) (element.Image, error) {
	uri, info, err := imagesrc.FromBytes(data)
	if err != nil {
		return element.Image{}, fmt.Errorf("add image: %w", err)
	}
	return a.AddImage(uri, float64(info.Width), float64(info.Height))
}

// AddImageFile reads an image file and appends it, stored inline as a data URI.
func (a *App) AddImageFile(path string) (element.Image, error) {
	uri, info, err := imagesrc.FromFile(path)
	if err != nil {
		return element.Image{}, fmt.Errorf("add image: %w", err)
	}
	return a.AddImage(uri, float64(info.Width), float64(info.Height))
}

// UpdateElement merges p into the element with id. It reports whether a
// commit was made. It implements gesture.Updater.
func (a *App) UpdateElement(id string, p element.Patch) bool {
	return a.change(event.TopicDocumentCommitted, func() bool {
		return a.engine.UpdateElement(id, p)
	})
}

// DeleteElement removes the element with id, deselecting it if selected.
func (a *App) DeleteElement(id string) bool {
	return a.change(event.TopicDocumentCommitted, func() bool {
		return a.engine.DeleteElement(id)
	})
}

// ReorderLayer moves the element with id in paint order.
func (a *App) ReorderLayer(id string, d engine.Direction) bool {
	return a.change(event.TopicDocumentCommitted, func() bool {
		return a.engine.ReorderLayer(id, d)
	})
}

// Undo reverts the most recent edit.
func (a *App) Undo() bool {
	return a.change(event.TopicDocumentUndone, a.engine.Undo)
}

// Redo reapplies the most recently undone edit.
func (a *App) Redo() bool {
	return a.change(event.TopicDocumentRedone, a.engine.Redo)
}

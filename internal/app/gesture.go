package app

import "github.com/dshills/quickcard/internal/gesture"

// BeginGesture starts a drag, resize or rotate on the element with id.
func (a *App) BeginGesture(id string, kind gesture.Kind) (*gesture.Gesture, error) {
	return a.gestures.Begin(id, kind)
}

// EndGesture commits g. When nothing is committed the handles snap back to
// the document.
func (a *App) EndGesture(g *gesture.Gesture) (bool, error) {
	committed, err := g.End()
	if !committed {
		a.handles.SyncVisual(a.engine.Elements())
	}
	return committed, err
}

// CancelGesture abandons g and snaps the handles back to the document.
func (a *App) CancelGesture(g *gesture.Gesture) error {
	err := g.Cancel()
	a.handles.SyncVisual(a.engine.Elements())
	return err
}

// Package gesture reconciles direct-manipulation gestures with the
// document engine.
//
// The rendering layer keeps a HandleMap from element id to Handle and
// updates handles continuously while the user drags, resizes or rotates.
// None of those intermediate frames reach the document history. When the
// gesture ends, the Reconciler decomposes the handle's final transform
// and issues exactly one UpdateElement call:
//
//	g, err := rec.Begin(id, gesture.Drag)
//	if err != nil {
//		return err
//	}
//	// ... pointer moves update the handle ...
//	committed, err := g.End()
//
// Cancel abandons a gesture without committing.
package gesture

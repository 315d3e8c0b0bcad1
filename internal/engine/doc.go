// Package engine provides the document engine for QuickCard.
//
// The engine package serves as the editing facade over a business card
// document: a flat set of elements (text, image, shape, QR code) painted in
// zIndex order on a fixed canvas.
//
// # Architecture
//
// The engine is built on two sub-packages:
//
//   - element: the closed set of element variants, their factory defaults,
//     and partial-update patches
//   - history: a generic linear undo/redo store of full snapshots
//
// A Document is an immutable value. Every editing verb computes a new
// Document and commits it to the history; the previous snapshot is never
// modified, so values returned by Document() or Elements() stay valid
// after later edits.
//
// # Thread Safety
//
// All Engine operations are thread-safe. Reads take a shared lock and
// editing verbs an exclusive one.
//
// # Basic Usage
//
//	e := engine.New()
//
//	// Add a text element with default content
//	el, _ := e.Add(element.KindText)
//
//	// Change its text and position
//	e.UpdateElement(element.ID(el), element.Patch{
//		Text: element.Ptr("Jane Doe"),
//		X:    element.Ptr(120.0),
//	})
//
//	// Undo the update
//	e.Undo()
//
// # Layering
//
// ReorderLayer moves an element within the paint order:
//
//	e.ReorderLayer(id, engine.Front) // zIndex = max + 1
//	e.ReorderLayer(id, engine.Down)  // swap with the element below
//
// Only zIndex values change. Elements with equal zIndex paint in the order
// they were added.
//
// # Updates and Variants
//
// A Patch may carry fields that the target element's variant does not
// define, such as Text on a Shape. Those fields are ignored. If nothing in
// the patch applies, UpdateElement makes no commit.
//
// # Error Handling
//
// Editing verbs addressed to an unknown id are no-ops and report false.
// Undo and Redo past the ends of the history are no-ops. Only AddElement,
// Add and AddImage return errors, for input that cannot form a valid
// element.
package engine

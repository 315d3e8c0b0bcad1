// Package app wires the Quickcard editor together.
//
// App owns the document engine and the state that lives beside it: the
// current selection and a revision counter that advances on every visible
// change. It republishes edits on the event bus, hands scenes to the
// rasterizer, keeps gesture handles in step with the document, and runs the
// export protocol.
//
// Selection is not part of undo history. Undo, redo and delete that remove
// the selected element leave nothing selected.
package app

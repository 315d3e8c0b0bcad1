// Package element defines the canvas element model.
//
// Elements form a closed sum type: Text, Image, Shape and QRCode all embed
// Base (id, position, size, rotation, zIndex) and implement Element. The
// interface carries an unexported method, so no other package can add a
// variant. Code that must handle every variant implements Visitor; adding a
// variant is then a compile error at every visitor.
//
// Elements are plain values. Copying one yields an independent element, which
// is what lets documents be treated as immutable snapshots.
//
// # Creating Elements
//
// A Factory produces elements with a fresh id and stock geometry:
//
//	f := element.NewFactory(element.DefaultDefaults())
//	t := f.Text(len(doc))          // "Your Text", 150x50 at (50,50)
//	img := f.Image(n, src, 1200, 600) // scaled to 300x150
//
// # Partial Updates
//
// A Patch carries optional fields. Apply merges it into an element, keeping the
// kind tag and id, and reports the fields that the variant does not define:
//
//	updated, applied, ignored := element.Apply(shape, element.Patch{Text: element.Ptr("Hi")})
//	// applied == nil, ignored == ["text"]; updated equals shape
package element

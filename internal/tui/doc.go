// Package tui is a terminal preview of the card.
//
// The card is rasterized at terminal resolution and painted with upper half
// block cells, two pixels per cell. Keys drive the same editor verbs as
// scripts, and arrow-key manipulation runs through the gesture reconciler
// so that a whole drag, resize or rotate commits once.
//
//	tab / shift-tab  select next / previous layer     esc     deselect or cancel gesture
//	g  r  o          begin move / resize / rotate     enter   commit gesture
//	arrows           nudge, or adjust active gesture  x, del  delete selected
//	t  s  c          add text / shape / QR code       [ ]     send backward / bring forward
//	{ }              send to back / bring to front    ctrl-z  undo   ctrl-y  redo
//	e  j             export PNG / JPEG                ctrl-c, ctrl-q  quit
package tui

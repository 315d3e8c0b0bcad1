package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/quickcard/internal/config"
	"github.com/dshills/quickcard/internal/engine"
	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/event"
	"github.com/dshills/quickcard/internal/export"
	"github.com/dshills/quickcard/internal/gesture"
)

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Canvas.Width = 90
	cfg.Canvas.Height = 50
	cfg.Export.PixelRatio = 1
	return cfg
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("el-%d", n)
	}
}

func newTestApp(t *testing.T, opts ...Option) *App {
	t.Helper()
	opts = append([]Option{WithEngineOptions(engine.WithIDGenerator(seqIDs()))}, opts...)
	a, err := New(testConfig(), opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return a
}

// recorder collects events published on the app bus.
type recorder struct {
	events []event.Event
}

func record(t *testing.T, a *App) *recorder {
	t.Helper()
	r := &recorder{}
	_, err := a.Bus().Subscribe("**", func(_ context.Context, e event.Event) error {
		r.events = append(r.events, e)
		return nil
	})
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	return r
}

func (r *recorder) topics() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = string(e.Topic)
	}
	return out
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Canvas.Width = 0
	if _, err := New(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New() error = %v, want ErrInvalidConfig", err)
	}
}

func TestAddPublishesCommit(t *testing.T) {
	a := newTestApp(t)
	rec := record(t, a)

	el, err := a.Add(element.KindText)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if element.ID(el) != "el-1" {
		t.Errorf("id = %q", element.ID(el))
	}
	if a.Revision() != 1 {
		t.Errorf("Revision() = %d, want 1", a.Revision())
	}
	if len(rec.events) != 1 || rec.events[0].Topic != event.TopicDocumentCommitted {
		t.Fatalf("events = %v", rec.topics())
	}
	c, ok := event.PayloadAs[Change](rec.events[0])
	if !ok || c.Description != "Add text" || c.Elements != 1 || c.Revision != 1 {
		t.Errorf("payload = %+v", c)
	}
	if a.Selected() != "" {
		t.Error("adding should not select")
	}
}

func TestAddImageKindFails(t *testing.T) {
	a := newTestApp(t)
	rec := record(t, a)
	if _, err := a.Add(element.KindImage); !errors.Is(err, engine.ErrImageRequiresSource) {
		t.Errorf("Add(image) error = %v", err)
	}
	if a.Revision() != 0 || len(rec.events) != 0 || a.CanUndo() {
		t.Error("failed add changed state")
	}
}

func TestSelectValidatesID(t *testing.T) {
	a := newTestApp(t)
	if err := a.Select("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Select(missing) = %v", err)
	}
	el, _ := a.Add(element.KindShape)
	rec := record(t, a)

	if err := a.Select(element.ID(el)); err != nil {
		t.Fatalf("Select() = %v", err)
	}
	if err := a.Select(element.ID(el)); err != nil {
		t.Fatalf("reselect = %v", err)
	}
	if len(rec.events) != 1 {
		t.Errorf("events = %v, want one selection change", rec.topics())
	}
	if s := a.Scene(); s.Selected != element.ID(el) || s.Revision != 2 {
		t.Errorf("scene = %+v", s)
	}
	if a.CanRedo() || a.Engine().CommitCount() != 1 {
		t.Error("selection must not touch history")
	}
}

func TestDeleteSelectedClearsSelection(t *testing.T) {
	a := newTestApp(t)
	el, _ := a.Add(element.KindText)
	id := element.ID(el)
	_ = a.Select(id)
	rec := record(t, a)

	if !a.DeleteElement(id) {
		t.Fatal("DeleteElement() = false")
	}
	if a.Selected() != "" {
		t.Errorf("Selected() = %q after delete", a.Selected())
	}
	want := []string{string(event.TopicDocumentCommitted), string(event.TopicSelectionChanged)}
	if got := rec.topics(); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	// Undo restores the element but not the selection.
	if !a.Undo() {
		t.Fatal("Undo() = false")
	}
	if _, ok := a.Find(id); !ok {
		t.Error("element not restored")
	}
	if a.Selected() != "" {
		t.Error("undo restored selection")
	}
}

func TestDeleteOtherKeepsSelection(t *testing.T) {
	a := newTestApp(t)
	keep, _ := a.Add(element.KindText)
	gone, _ := a.Add(element.KindShape)
	_ = a.Select(element.ID(keep))

	a.DeleteElement(element.ID(gone))
	if a.Selected() != element.ID(keep) {
		t.Errorf("Selected() = %q", a.Selected())
	}
}

func TestUndoOfAddClearsSelection(t *testing.T) {
	a := newTestApp(t)
	el, _ := a.Add(element.KindQRCode)
	_ = a.Select(element.ID(el))
	rec := record(t, a)

	a.Undo()
	if a.Selected() != "" {
		t.Error("selection should resolve to none")
	}
	if len(rec.events) != 2 || rec.events[0].Topic != event.TopicDocumentUndone {
		t.Fatalf("events = %v", rec.topics())
	}
	if c, _ := event.PayloadAs[Change](rec.events[0]); c.Description != "Add qrcode" {
		t.Errorf("undo description = %q", c.Description)
	}

	a.Redo()
	if c, _ := event.PayloadAs[Change](rec.events[2]); rec.events[2].Topic != event.TopicDocumentRedone || c.Description != "Add qrcode" {
		t.Errorf("redo event = %v %+v", rec.events[2].Topic, c)
	}
}

func TestNoopsDoNotAdvanceRevision(t *testing.T) {
	a := newTestApp(t)
	el, _ := a.Add(element.KindText)
	id := element.ID(el)
	rev := a.Revision()

	checks := []struct {
		name string
		fn   func() bool
	}{
		{"update missing", func() bool { return a.UpdateElement("nope", element.Patch{X: element.Ptr(1.0)}) }},
		{"delete missing", func() bool { return a.DeleteElement("nope") }},
		{"reorder missing", func() bool { return a.ReorderLayer("nope", engine.Front) }},
		{"up at top", func() bool { return a.ReorderLayer(id, engine.Up) }},
		{"foreign field", func() bool { return a.UpdateElement(id, element.Patch{Value: element.Ptr("x")}) }},
		{"redo at tail", a.Redo},
	}
	for _, c := range checks {
		t.Run(c.name, func(t *testing.T) {
			if c.fn() {
				t.Error("reported a change")
			}
			if a.Revision() != rev {
				t.Errorf("revision moved to %d", a.Revision())
			}
		})
	}
}

func TestLayersTopmostFirst(t *testing.T) {
	a := newTestApp(t)
	text, _ := a.Add(element.KindText)
	shape, _ := a.Add(element.KindShape)
	qr, _ := a.Add(element.KindQRCode)
	a.ReorderLayer(element.ID(text), engine.Front)
	_ = a.Select(element.ID(shape))

	layers := a.Layers()
	want := []string{element.ID(text), element.ID(qr), element.ID(shape)}
	for i, l := range layers {
		if l.ID != want[i] {
			t.Errorf("layer %d = %s, want %s", i, l.ID, want[i])
		}
	}
	if layers[0].Label != "Your Text" || layers[0].ZIndex != 4 {
		t.Errorf("top layer = %+v", layers[0])
	}
	if !layers[2].Selected || layers[0].Selected {
		t.Error("selection flag wrong")
	}
}

func TestAddImageData(t *testing.T) {
	a := newTestApp(t)
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 600, 200))); err != nil {
		t.Fatal(err)
	}

	img, err := a.AddImageData(buf.Bytes())
	if err != nil {
		t.Fatalf("AddImageData() error = %v", err)
	}
	if img.Width != 300 || img.Height != 100 {
		t.Errorf("size = %vx%v, want 300x100", img.Width, img.Height)
	}
	if !bytes.HasPrefix([]byte(img.Src), []byte("data:image/png;base64,")) {
		t.Errorf("src = %.30s", img.Src)
	}

	if _, err := a.AddImageData([]byte("not an image")); err == nil {
		t.Error("AddImageData(garbage) succeeded")
	}
	if a.Engine().CommitCount() != 1 {
		t.Errorf("CommitCount() = %d", a.Engine().CommitCount())
	}
}

func TestGestureDragCommitsOnce(t *testing.T) {
	a := newTestApp(t)
	el, _ := a.Add(element.KindShape)
	id := element.ID(el)

	g, err := a.BeginGesture(id, gesture.Drag)
	if err != nil {
		t.Fatalf("BeginGesture() error = %v", err)
	}
	vh := g.Handle().(*gesture.VisualHandle)
	vh.MoveBy(10, 5)
	vh.MoveBy(2, 1)

	committed, err := a.EndGesture(g)
	if err != nil || !committed {
		t.Fatalf("EndGesture() = %v, %v", committed, err)
	}
	b := mustFind(t, a, id).Geometry()
	if b.X != 62 || b.Y != 56 {
		t.Errorf("position = %v,%v, want 62,56", b.X, b.Y)
	}
	if a.Engine().CommitCount() != 2 {
		t.Errorf("CommitCount() = %d, want 2", a.Engine().CommitCount())
	}

	// Undo moves the handle back with the document.
	a.Undo()
	h, _ := a.Handles().Get(id)
	if x, y := h.Transform().Translation(); x != 50 || y != 50 {
		t.Errorf("handle after undo = %v,%v", x, y)
	}
}

func TestCommitDuringGestureKeepsHandle(t *testing.T) {
	a := newTestApp(t)
	el, _ := a.Add(element.KindShape)
	id := element.ID(el)
	other, _ := a.Add(element.KindText)

	g, err := a.BeginGesture(id, gesture.Drag)
	if err != nil {
		t.Fatalf("BeginGesture() error = %v", err)
	}
	g.Handle().(*gesture.VisualHandle).MoveBy(20, 10)

	// Edits from elsewhere reset other handles but not the one being dragged.
	a.UpdateElement(element.ID(other), element.Patch{X: element.Ptr(5.0)})
	a.Add(element.KindQRCode)
	h, ok := a.Handles().Get(element.ID(other))
	if !ok {
		t.Fatal("no handle for the edited element")
	}
	if x, _ := h.Transform().Translation(); x != 5 {
		t.Errorf("other handle x = %v, want 5", x)
	}
	if _, ok := a.Gestures().Active(); !ok {
		t.Fatal("gesture ended by an unrelated commit")
	}

	committed, err := a.EndGesture(g)
	if err != nil || !committed {
		t.Fatalf("EndGesture() = %v, %v", committed, err)
	}
	b := mustFind(t, a, id).Geometry()
	if b.X != 70 || b.Y != 60 {
		t.Errorf("position = %v,%v, want 70,60", b.X, b.Y)
	}
}

func TestGestureCancelSnapsBack(t *testing.T) {
	a := newTestApp(t)
	el, _ := a.Add(element.KindShape)
	id := element.ID(el)

	g, _ := a.BeginGesture(id, gesture.Rotate)
	g.Handle().(*gesture.VisualHandle).RotateTo(45)
	if err := a.CancelGesture(g); err != nil {
		t.Fatalf("CancelGesture() = %v", err)
	}
	h, _ := a.Handles().Get(id)
	if r := h.Transform().RotationDegrees(); r != 0 {
		t.Errorf("rotation after cancel = %v", r)
	}
	if a.Engine().CommitCount() != 1 {
		t.Error("cancel committed")
	}
	if _, ok := a.Gestures().Active(); ok {
		t.Error("gesture still active")
	}
}

func TestExportDeselectsWithoutCommit(t *testing.T) {
	a := newTestApp(t)
	el, _ := a.Add(element.KindShape)
	_ = a.Select(element.ID(el))
	commits := a.Engine().CommitCount()
	rec := record(t, a)

	res, err := a.Export(context.Background(), export.PNG)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res.Filename != "business-card.png" || res.MIMEType != "image/png" {
		t.Errorf("result = %s %s", res.Filename, res.MIMEType)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(res.Data))
	if err != nil {
		t.Fatalf("decode export: %v", err)
	}
	if cfg.Width != 90 || cfg.Height != 50 {
		t.Errorf("export size = %dx%d", cfg.Width, cfg.Height)
	}
	if a.Selected() != "" {
		t.Error("export left the selection")
	}
	if a.Engine().CommitCount() != commits || a.CanRedo() {
		t.Error("export touched history")
	}
	want := []string{string(event.TopicSelectionChanged), string(event.TopicExportCompleted)}
	if got := rec.topics(); fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("events = %v, want %v", got, want)
	}
}

func TestExportUnknownFormat(t *testing.T) {
	a := newTestApp(t)
	if _, err := a.Export(context.Background(), export.Format("gif")); !errors.Is(err, export.ErrUnknownFormat) {
		t.Errorf("Export(gif) = %v", err)
	}
}

func TestExportFile(t *testing.T) {
	a := newTestApp(t)
	a.Add(element.KindText)
	dir := t.TempDir()

	path, err := a.ExportFile(context.Background(), export.JPEG, dir)
	if err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}
	if path != filepath.Join(dir, "business-card.jpeg") {
		t.Errorf("path = %s", path)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Errorf("stat = %v, %v", info, err)
	}
}

func TestApplyConfig(t *testing.T) {
	a := newTestApp(t)
	rec := record(t, a)

	cfg := testConfig()
	cfg.Defaults.TextColor = "#FF0000"
	cfg.History.MaxEntries = 5
	if err := a.ApplyConfig(cfg); err != nil {
		t.Fatalf("ApplyConfig() = %v", err)
	}
	el, _ := a.Add(element.KindText)
	if el.(element.Text).Color != "#FF0000" {
		t.Errorf("color = %q", el.(element.Text).Color)
	}
	if a.Engine().MaxUndoEntries() != 5 {
		t.Errorf("MaxUndoEntries() = %d", a.Engine().MaxUndoEntries())
	}
	if rec.events[0].Topic != event.TopicConfigReloaded {
		t.Errorf("first event = %s", rec.events[0].Topic)
	}

	cfg.Logging.Level = "chatty"
	if err := a.ApplyConfig(cfg); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ApplyConfig(invalid) = %v", err)
	}
}

func mustFind(t *testing.T, a *App, id string) element.Element {
	t.Helper()
	el, ok := a.Find(id)
	if !ok {
		t.Fatalf("element %s not found", id)
	}
	return el
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quickcard/internal/app"
	"github.com/dshills/quickcard/internal/config"
	"github.com/dshills/quickcard/internal/engine"
	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/export"
)

type fixture struct {
	app     *app.App
	screen  tcell.SimulationScreen
	frames  *export.FrameSync
	preview *Preview
	dir     string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() = %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(90, 26)

	n := 0
	frames := export.NewFrameSync()
	cfg := config.Default()
	cfg.Export.PixelRatio = 1
	a, err := app.New(cfg,
		app.WithRenderSync(frames),
		app.WithEngineOptions(engine.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("el-%d", n)
		})),
	)
	if err != nil {
		t.Fatalf("app.New() = %v", err)
	}
	dir := t.TempDir()
	return &fixture{
		app:     a,
		screen:  screen,
		frames:  frames,
		preview: New(a, screen, frames, WithExportDir(dir)),
		dir:     dir,
	}
}

func (f *fixture) key(t *testing.T, k tcell.Key, r rune) {
	t.Helper()
	ev := tcell.NewEventKey(k, r, tcell.ModNone)
	if err := f.preview.HandleEvent(context.Background(), ev); err != nil {
		t.Fatalf("HandleEvent(%v %q) = %v", k, r, err)
	}
}

func (f *fixture) runes(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		f.key(t, tcell.KeyRune, r)
	}
}

func geometry(t *testing.T, a *app.App, id string) element.Base {
	t.Helper()
	el, ok := a.Find(id)
	if !ok {
		t.Fatalf("element %s not found", id)
	}
	return el.Geometry()
}

func TestAddSelectsNewElement(t *testing.T) {
	f := newFixture(t)
	f.runes(t, "tsc")

	if f.app.Engine().Len() != 3 {
		t.Fatalf("Len() = %d", f.app.Engine().Len())
	}
	if f.app.Selected() != "el-3" {
		t.Errorf("Selected() = %q", f.app.Selected())
	}
	if f.preview.Status() != "added QR Code" {
		t.Errorf("Status() = %q", f.preview.Status())
	}
}

func TestTabCyclesLayersTopmostFirst(t *testing.T) {
	f := newFixture(t)
	f.runes(t, "ts")
	f.key(t, tcell.KeyEscape, 0)

	want := []string{"el-2", "el-1", "el-2"}
	for _, id := range want {
		f.key(t, tcell.KeyTab, 0)
		if got := f.app.Selected(); got != id {
			t.Errorf("after tab Selected() = %q, want %q", got, id)
		}
	}
	f.key(t, tcell.KeyBacktab, 0)
	if got := f.app.Selected(); got != "el-1" {
		t.Errorf("after backtab Selected() = %q", got)
	}
}

func TestArrowNudgeCommitsEachStep(t *testing.T) {
	f := newFixture(t)
	f.runes(t, "s")
	commits := f.app.Engine().CommitCount()

	f.key(t, tcell.KeyRight, 0)
	f.key(t, tcell.KeyDown, 0)

	b := geometry(t, f.app, "el-1")
	if b.X != 50+MoveStep || b.Y != 50+MoveStep {
		t.Errorf("position = %v,%v", b.X, b.Y)
	}
	if got := f.app.Engine().CommitCount() - commits; got != 2 {
		t.Errorf("commits = %d, want 2", got)
	}
}

func TestGestureCommitsOnce(t *testing.T) {
	tests := []struct {
		name  string
		begin rune
		keys  []tcell.Key
		check func(t *testing.T, b element.Base)
	}{
		{"drag", 'g', []tcell.Key{tcell.KeyRight, tcell.KeyRight, tcell.KeyUp}, func(t *testing.T, b element.Base) {
			if b.X != 60 || b.Y != 45 {
				t.Errorf("position = %v,%v", b.X, b.Y)
			}
		}},
		{"resize", 'r', []tcell.Key{tcell.KeyRight, tcell.KeyDown, tcell.KeyDown}, func(t *testing.T, b element.Base) {
			if b.Width != 105 || b.Height != 110 || b.X != 50 {
				t.Errorf("box = %+v", b)
			}
		}},
		{"rotate", 'o', []tcell.Key{tcell.KeyRight, tcell.KeyRight, tcell.KeyRight}, func(t *testing.T, b element.Base) {
			if b.Rotation != 45 {
				t.Errorf("rotation = %v", b.Rotation)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.runes(t, "s")
			commits := f.app.Engine().CommitCount()

			f.runes(t, string(tt.begin))
			for _, k := range tt.keys {
				f.key(t, k, 0)
			}
			if f.app.Engine().CommitCount() != commits {
				t.Fatal("committed before enter")
			}
			// Other edits wait for the gesture.
			f.runes(t, "t")
			if f.app.Engine().Len() != 1 {
				t.Error("add ran during gesture")
			}

			f.key(t, tcell.KeyEnter, 0)
			if got := f.app.Engine().CommitCount() - commits; got != 1 {
				t.Errorf("commits = %d, want 1", got)
			}
			tt.check(t, geometry(t, f.app, "el-1"))
		})
	}
}

func TestEscapeCancelsGesture(t *testing.T) {
	f := newFixture(t)
	f.runes(t, "s")
	commits := f.app.Engine().CommitCount()

	f.runes(t, "g")
	f.key(t, tcell.KeyLeft, 0)
	f.key(t, tcell.KeyEscape, 0)

	if f.app.Engine().CommitCount() != commits {
		t.Error("cancel committed")
	}
	if f.app.Selected() != "el-1" {
		t.Error("first escape should only cancel the gesture")
	}
	if b := geometry(t, f.app, "el-1"); b.X != 50 {
		t.Errorf("x = %v", b.X)
	}
	f.key(t, tcell.KeyEscape, 0)
	if f.app.Selected() != "" {
		t.Error("second escape should deselect")
	}
}

func TestLayerKeysUndoRedoDelete(t *testing.T) {
	f := newFixture(t)
	f.runes(t, "ts")
	f.runes(t, "{") // el-2 to back
	if z := element.ZIndex(mustFind(t, f.app, "el-2")); z != 0 {
		t.Errorf("zIndex after back = %d, want 0", z)
	}

	f.key(t, tcell.KeyCtrlZ, 0)
	if z := element.ZIndex(mustFind(t, f.app, "el-2")); z != 2 {
		t.Errorf("zIndex after undo = %d, want 2", z)
	}
	f.key(t, tcell.KeyCtrlY, 0)

	f.runes(t, "x")
	if _, ok := f.app.Find("el-2"); ok {
		t.Error("delete did nothing")
	}
	if f.app.Selected() != "" {
		t.Error("deleted element still selected")
	}
	f.runes(t, "x")
	if f.preview.Status() != "nothing selected" {
		t.Errorf("Status() = %q", f.preview.Status())
	}
}

func TestDrawPaintsCard(t *testing.T) {
	f := newFixture(t)
	f.runes(t, "s")
	if err := f.preview.Draw(context.Background()); err != nil {
		t.Fatalf("Draw() = %v", err)
	}

	// 90 columns over a 900 unit card: one cell per 10 units. The shape
	// sits at 50..150 with the accent fill.
	r, _, style, _ := f.screen.GetContent(10, 5)
	if r != halfBlock {
		t.Errorf("cell rune = %q", r)
	}
	fg, _, _ := style.Decompose()
	if cr, cg, cb := fg.RGB(); !near(cr, 0x3B) || !near(cg, 0x82) || !near(cb, 0xF6) {
		t.Errorf("shape cell color = %02x%02x%02x", cr, cg, cb)
	}
	if f.frames.Revision() != f.app.Revision() {
		t.Errorf("frames at %d, app at %d", f.frames.Revision(), f.app.Revision())
	}

	r, _, _, _ = f.screen.GetContent(1, 25)
	if r != '2' && r != '1' {
		t.Errorf("status line starts with %q", r)
	}
}

func TestMouseSelects(t *testing.T) {
	f := newFixture(t)
	f.runes(t, "s")
	f.key(t, tcell.KeyEscape, 0)

	click := tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone)
	if err := f.preview.HandleEvent(context.Background(), click); err != nil {
		t.Fatal(err)
	}
	if f.app.Selected() != "el-1" {
		t.Errorf("Selected() = %q", f.app.Selected())
	}

	miss := tcell.NewEventMouse(80, 20, tcell.Button1, tcell.ModNone)
	_ = f.preview.HandleEvent(context.Background(), miss)
	if f.app.Selected() != "" {
		t.Error("click on empty canvas should deselect")
	}
}

func TestRunExportsAndQuits(t *testing.T) {
	f := newFixture(t)
	f.runes(t, "s")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- f.preview.Run(ctx) }()

	f.screen.InjectKey(tcell.KeyRune, 'e', tcell.ModNone)

	path := filepath.Join(f.dir, "business-card.png")
	for {
		if _, err := os.Stat(path); err == nil {
			break
		}
		if ctx.Err() != nil {
			t.Fatal("export never written")
		}
		time.Sleep(20 * time.Millisecond)
	}
	if f.app.Selected() != "" {
		t.Error("export left selection")
	}

	f.screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() = %v", err)
		}
	case <-ctx.Done():
		t.Fatal("Run did not quit")
	}
}

func TestQuitKey(t *testing.T) {
	f := newFixture(t)
	err := f.preview.HandleEvent(context.Background(), tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl))
	if !errors.Is(err, ErrQuit) {
		t.Errorf("HandleEvent(ctrl-c) = %v", err)
	}
}

func near(got, want int32) bool {
	d := got - want
	return d >= -2 && d <= 2
}

func mustFind(t *testing.T, a *app.App, id string) element.Element {
	t.Helper()
	el, ok := a.Find(id)
	if !ok {
		t.Fatalf("element %s not found", id)
	}
	return el
}

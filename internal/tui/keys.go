package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quickcard/internal/engine"
	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/export"
	"github.com/dshills/quickcard/internal/gesture"
)

// keyOf folds ctrl+letter reported as a rune into the matching control key.
func keyOf(e *tcell.EventKey) tcell.Key {
	if e.Key() == tcell.KeyRune && e.Modifiers()&tcell.ModCtrl != 0 {
		if r := e.Rune() | 0x20; r >= 'a' && r <= 'z' {
			return tcell.KeyCtrlA + tcell.Key(r-'a')
		}
	}
	return e.Key()
}

func (p *Preview) handleKey(ctx context.Context, e *tcell.EventKey) error {
	key := keyOf(e)
	switch key {
	case tcell.KeyCtrlC, tcell.KeyCtrlQ:
		p.cancelGesture()
		return ErrQuit
	case tcell.KeyEscape:
		if !p.cancelGesture() {
			p.app.ClearSelection()
		}
		return nil
	case tcell.KeyEnter:
		p.endGesture()
		return nil
	case tcell.KeyUp:
		p.arrow(0, -1)
		return nil
	case tcell.KeyDown:
		p.arrow(0, 1)
		return nil
	case tcell.KeyLeft:
		p.arrow(-1, 0)
		return nil
	case tcell.KeyRight:
		p.arrow(1, 0)
		return nil
	}

	if p.activeGesture() != nil {
		p.setStatus("finish the %s first (enter commits, esc cancels)", p.activeGesture().Kind())
		return nil
	}

	switch key {
	case tcell.KeyTab:
		p.cycle(1)
	case tcell.KeyBacktab:
		p.cycle(-1)
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		p.deleteSelected()
	case tcell.KeyCtrlZ:
		if !p.app.Undo() {
			p.setStatus("nothing to undo")
		}
	case tcell.KeyCtrlY:
		if !p.app.Redo() {
			p.setStatus("nothing to redo")
		}
	case tcell.KeyRune:
		p.handleRune(ctx, e.Rune())
	}
	return nil
}

func (p *Preview) handleRune(ctx context.Context, r rune) {
	switch r {
	case 't':
		p.add(element.KindText)
	case 's':
		p.add(element.KindShape)
	case 'c':
		p.add(element.KindQRCode)
	case 'x':
		p.deleteSelected()
	case 'g':
		p.beginGesture(gesture.Drag)
	case 'r':
		p.beginGesture(gesture.Resize)
	case 'o':
		p.beginGesture(gesture.Rotate)
	case ']':
		p.reorder(engine.Up)
	case '[':
		p.reorder(engine.Down)
	case '}':
		p.reorder(engine.Front)
	case '{':
		p.reorder(engine.Back)
	case 'e':
		p.export(ctx, export.PNG)
	case 'j':
		p.export(ctx, export.JPEG)
	}
}

func (p *Preview) add(kind element.Kind) {
	el, err := p.app.Add(kind)
	if err != nil {
		p.setStatus("add %s: %v", kind, err)
		return
	}
	_ = p.app.Select(element.ID(el))
	p.setStatus("added %s", element.Label(el))
}

func (p *Preview) deleteSelected() {
	id := p.app.Selected()
	if id == "" {
		p.setStatus("nothing selected")
		return
	}
	p.app.DeleteElement(id)
	p.setStatus("deleted")
}

func (p *Preview) reorder(d engine.Direction) {
	id := p.app.Selected()
	if id == "" {
		p.setStatus("nothing selected")
		return
	}
	if !p.app.ReorderLayer(id, d) {
		p.setStatus("already there")
	}
}

// cycle moves the selection through the layers, topmost first.
func (p *Preview) cycle(dir int) {
	layers := p.app.Layers()
	if len(layers) == 0 {
		return
	}
	next := 0
	if dir < 0 {
		next = len(layers) - 1
	}
	for i, l := range layers {
		if l.Selected {
			next = (i + dir + len(layers)) % len(layers)
			break
		}
	}
	_ = p.app.Select(layers[next].ID)
	p.setStatus("%s", layers[next].Label)
}

func (p *Preview) export(ctx context.Context, format export.Format) {
	p.setStatus("exporting %s...", format)
	go func() {
		path, err := p.app.ExportFile(ctx, format, p.exportDir)
		if err != nil {
			p.setStatus("export failed: %v", err)
		} else {
			p.setStatus("saved %s", path)
		}
		p.wake()
	}()
}

func (p *Preview) activeGesture() *gesture.Gesture {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gesture
}

func (p *Preview) beginGesture(kind gesture.Kind) {
	id := p.app.Selected()
	if id == "" {
		p.setStatus("nothing selected")
		return
	}
	g, err := p.app.BeginGesture(id, kind)
	if err != nil {
		p.setStatus("%v", err)
		return
	}
	p.mu.Lock()
	p.gesture = g
	p.mu.Unlock()
	p.setStatus("%s: arrows adjust, enter commits, esc cancels", kind)
}

func (p *Preview) endGesture() {
	p.mu.Lock()
	g := p.gesture
	p.gesture = nil
	p.mu.Unlock()
	if g == nil {
		return
	}
	committed, err := p.app.EndGesture(g)
	switch {
	case err != nil:
		p.setStatus("%v", err)
	case committed:
		p.setStatus("%s committed", g.Kind())
	default:
		p.setStatus("%s left nothing to commit", g.Kind())
	}
}

// cancelGesture abandons the active gesture and reports whether there was one.
func (p *Preview) cancelGesture() bool {
	p.mu.Lock()
	g := p.gesture
	p.gesture = nil
	p.mu.Unlock()
	if g == nil {
		return false
	}
	_ = p.app.CancelGesture(g)
	p.setStatus("%s cancelled", g.Kind())
	return true
}

// arrow adjusts the active gesture, or nudges the selection as a complete
// drag when no gesture is active.
func (p *Preview) arrow(dx, dy float64) {
	if g := p.activeGesture(); g != nil {
		adjust(g, dx, dy)
		return
	}

	id := p.app.Selected()
	if id == "" {
		return
	}
	g, err := p.app.BeginGesture(id, gesture.Drag)
	if err != nil {
		p.setStatus("%v", err)
		return
	}
	adjust(g, dx, dy)
	if _, err := p.app.EndGesture(g); err != nil {
		p.setStatus("%v", err)
	}
}

// adjust moves the gesture's handle one step.
func adjust(g *gesture.Gesture, dx, dy float64) {
	vh, ok := g.Handle().(*gesture.VisualHandle)
	if !ok {
		return
	}
	switch g.Kind() {
	case gesture.Drag:
		vh.MoveBy(dx*MoveStep, dy*MoveStep)
	case gesture.Resize:
		x, y := vh.Transform().Translation()
		sz := vh.Size()
		vh.ResizeTo(x, y, sz.Width+dx*ResizeStep, sz.Height+dy*ResizeStep)
	case gesture.Rotate:
		vh.RotateTo(vh.Transform().RotationDegrees() + dx*RotateStep)
	}
}

package tui

import (
	"context"
	"fmt"
	"image"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/gesture"
	"github.com/dshills/quickcard/internal/scene"
)

// halfBlock paints the top pixel as foreground and the bottom as background.
const halfBlock = '▀'

var statusStyle = tcell.StyleDefault.Reverse(true)

// Draw paints the current scene and status line, then reports the painted
// revision to the frame sync.
func (p *Preview) Draw(ctx context.Context) error {
	s := p.app.Scene()
	s = p.withGesture(s)

	w, h := p.screen.Size()
	rows := h - 1
	p.screen.Clear()

	if w > 0 && rows > 0 {
		if err := p.paint(ctx, s, w, rows); err != nil {
			return err
		}
	}
	p.drawStatus(s, w, h)
	p.screen.Show()
	if p.frames != nil {
		p.frames.Rendered(s.Revision)
	}
	return nil
}

// scale returns the canvas-to-pixel ratio that fits the card into a
// cols x rows cell area, at two pixels per row.
func (p *Preview) scale(cols, rows int) float64 {
	opts := p.app.Renderer().Options()
	return min(float64(cols)/float64(opts.Width), float64(2*rows)/float64(opts.Height))
}

func (p *Preview) paint(ctx context.Context, s scene.Scene, cols, rows int) error {
	img, err := p.app.Renderer().RenderScene(ctx, s, p.scale(cols, rows))
	if err != nil {
		return err
	}
	b := img.Bounds()
	for y := 0; y < rows && 2*y < b.Dy(); y++ {
		for x := 0; x < cols && x < b.Dx(); x++ {
			top := cellColor(img, x, 2*y)
			bottom := top
			if 2*y+1 < b.Dy() {
				bottom = cellColor(img, x, 2*y+1)
			}
			style := tcell.StyleDefault.Foreground(top).Background(bottom)
			p.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	return nil
}

func cellColor(img *image.RGBA, x, y int) tcell.Color {
	c := img.RGBAAt(x, y)
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// withGesture shows the in-flight state of the active gesture in place of
// the committed geometry.
func (p *Preview) withGesture(s scene.Scene) scene.Scene {
	g := p.activeGesture()
	if g == nil {
		return s
	}
	patch := gesture.PatchFor(g.Kind(), g.Handle())
	els := make([]element.Element, len(s.Elements))
	for i, el := range s.Elements {
		if element.ID(el) == g.ID() {
			el, _, _ = element.Apply(el, patch)
		}
		els[i] = el
	}
	s.Elements = els
	return s
}

func (p *Preview) drawStatus(s scene.Scene, w, h int) {
	if h <= 0 {
		return
	}
	left := fmt.Sprintf(" %d layers | no selection", len(s.Elements))
	if el, ok := s.SelectedElement(); ok {
		b := el.Geometry()
		left = fmt.Sprintf(" %d layers | %s  %.0f,%.0f  %.0fx%.0f  %.0f°",
			len(s.Elements), element.Label(el), b.X, b.Y, b.Width, b.Height, b.Rotation)
	}
	line := []rune(left + " | " + p.Status())
	for x := 0; x < w; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		p.screen.SetContent(x, h-1, r, nil, statusStyle)
	}
}

func (p *Preview) handleMouse(e *tcell.EventMouse) {
	if e.Buttons()&tcell.Button1 == 0 || p.activeGesture() != nil {
		return
	}
	w, h := p.screen.Size()
	x, y := e.Position()
	if y >= h-1 {
		return
	}
	ratio := p.scale(w, h-1)
	if !(ratio > 0) {
		return
	}
	s := p.app.Scene()
	if el, ok := s.HitTest(float64(x)/ratio, float64(2*y)/ratio); ok {
		_ = p.app.Select(element.ID(el))
		return
	}
	p.app.ClearSelection()
}

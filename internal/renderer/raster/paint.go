package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strings"
	"unicode"

	"github.com/skip2/go-qrcode"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/dshills/quickcard/internal/engine/element"
)

var placeholder = color.RGBA{R: 226, G: 232, B: 240, A: 255}

// painter draws one element into its local buffer.
// It implements element.Visitor so every variant must be handled.
type painter struct {
	r     *Renderer
	dst   *image.RGBA
	ratio float64
	err   error
}

func (p *painter) VisitText(t element.Text) {
	face, err := p.r.faces.face(t.FontWeight == element.FontWeightBold, t.FontStyle == element.FontStyleItalic, t.FontSize*p.ratio)
	if err != nil {
		p.err = err
		return
	}

	d := &font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(p.r.colorOr(t.Color, color.RGBA{A: 255})),
		Face: face,
	}
	m := face.Metrics()
	lineHeight := m.Height
	y := m.Ascent
	for _, line := range wrapText(face, t.Text, fixed.I(p.dst.Bounds().Dx())) {
		if y.Ceil()-m.Ascent.Ceil() >= p.dst.Bounds().Dy() {
			break
		}
		d.Dot = fixed.Point26_6{X: 0, Y: y}
		d.DrawString(line)
		y += lineHeight
	}
}

func (p *painter) VisitImage(img element.Image) {
	src, err := p.r.images.open(img.Src)
	if err != nil {
		p.r.logger.WithField("id", img.ID).Warn("image unavailable: %v", err)
		draw.Draw(p.dst, p.dst.Bounds(), image.NewUniform(placeholder), image.Point{}, draw.Src)
		return
	}
	xdraw.CatmullRom.Scale(p.dst, p.dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
}

func (p *painter) VisitShape(s element.Shape) {
	fill := image.NewUniform(p.r.colorOr(s.BackgroundColor, placeholder))
	b := p.dst.Bounds()
	switch s.ShapeType {
	case element.ShapeEllipse:
		z := vector.NewRasterizer(b.Dx(), b.Dy())
		ellipse(z, float32(b.Dx())/2, float32(b.Dy())/2, float32(b.Dx())/2, float32(b.Dy())/2)
		z.Draw(p.dst, b, fill, image.Point{})
	default:
		draw.Draw(p.dst, b, fill, image.Point{}, draw.Src)
	}
}

func (p *painter) VisitQRCode(q element.QRCode) {
	b := p.dst.Bounds()
	code, err := qrcode.New(q.Value, qrcode.Medium)
	if err != nil {
		// Empty values cannot be encoded; draw a blank code.
		draw.Draw(p.dst, b, image.White, image.Point{}, draw.Src)
		outline(p.dst, placeholder)
		return
	}
	side := min(b.Dx(), b.Dy())
	bitmap := code.Image(side)
	xdraw.NearestNeighbor.Scale(p.dst, b, bitmap, bitmap.Bounds(), xdraw.Src, nil)
}

// ellipse adds an ellipse centered at (cx, cy) to z using four cubic arcs.
func ellipse(z *vector.Rasterizer, cx, cy, rx, ry float32) {
	const k = 0.5522847498
	z.MoveTo(cx+rx, cy)
	z.CubeTo(cx+rx, cy+k*ry, cx+k*rx, cy+ry, cx, cy+ry)
	z.CubeTo(cx-k*rx, cy+ry, cx-rx, cy+k*ry, cx-rx, cy)
	z.CubeTo(cx-rx, cy-k*ry, cx-k*rx, cy-ry, cx, cy-ry)
	z.CubeTo(cx+k*rx, cy-ry, cx+rx, cy-k*ry, cx+rx, cy)
	z.ClosePath()
}

// outline strokes a one pixel border inside dst.
func outline(dst *image.RGBA, c color.RGBA) {
	b := dst.Bounds()
	for x := b.Min.X; x < b.Max.X; x++ {
		dst.SetRGBA(x, b.Min.Y, c)
		dst.SetRGBA(x, b.Max.Y-1, c)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		dst.SetRGBA(b.Min.X, y, c)
		dst.SetRGBA(b.Max.X-1, y, c)
	}
}

// wrapText breaks s into lines no wider than width, splitting at spaces.
// Explicit newlines always break. A single word wider than width gets its
// own line.
func wrapText(face font.Face, s string, width fixed.Int26_6) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.FieldsFunc(para, unicode.IsSpace)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if font.MeasureString(face, candidate) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// maxBufferSide bounds each side of an element buffer, in pixels.
const maxBufferSide = 4096

// localSize returns the pixel size of an element buffer and the ratio to
// paint it at. An element larger than maxBufferSide is painted at a lower
// ratio and scaled up when composited.
func localSize(b element.Base, ratio float64) (w, h int, local float64) {
	local = ratio
	if side := max(b.Width, b.Height) * ratio; side > maxBufferSide {
		local = ratio * maxBufferSide / side
	}
	w = min(maxBufferSide, max(1, int(math.Ceil(b.Width*local))))
	h = min(maxBufferSide, max(1, int(math.Ceil(b.Height*local))))
	return w, h, local
}

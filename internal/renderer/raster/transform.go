package raster

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/math/f64"

	"github.com/dshills/quickcard/internal/engine/element"
)

// placement maps an element's local buffer (w x h pixels) onto the canvas:
// the buffer center lands on the element center, scaled by scale and
// rotated by the element's rotation.
func placement(b element.Base, w, h int, ratio, scale float64) f64.Aff3 {
	sin, cos := math.Sincos(b.Rotation * math.Pi / 180)
	sin, cos = sin*scale, cos*scale
	cx := (b.X + b.Width/2) * ratio
	cy := (b.Y + b.Height/2) * ratio
	hw, hh := float64(w)/2, float64(h)/2
	return f64.Aff3{
		cos, -sin, cx - cos*hw + sin*hh,
		sin, cos, cy - sin*hw - cos*hh,
	}
}

func apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// dashedOutline strokes the transformed border of a w x h buffer.
func dashedOutline(dst *image.RGBA, m f64.Aff3, w, h int, c color.RGBA, ratio float64) {
	dash := max(2, math.Round(4*ratio))
	thick := max(1, int(math.Round(ratio)))
	fw, fh := float64(w), float64(h)
	corners := [][2]float64{{0, 0}, {fw, 0}, {fw, fh}, {0, fh}}

	for i := range corners {
		x0, y0 := apply(m, corners[i][0], corners[i][1])
		next := corners[(i+1)%len(corners)]
		x1, y1 := apply(m, next[0], next[1])

		length := math.Hypot(x1-x0, y1-y0)
		for s := 0.0; s <= length; s++ {
			if int(s/dash)%2 == 1 {
				continue
			}
			t := s / max(length, 1)
			px := int(math.Round(x0 + (x1-x0)*t))
			py := int(math.Round(y0 + (y1-y0)*t))
			for dx := 0; dx < thick; dx++ {
				for dy := 0; dy < thick; dy++ {
					if (image.Point{X: px + dx, Y: py + dy}).In(dst.Bounds()) {
						dst.SetRGBA(px+dx, py+dy, c)
					}
				}
			}
		}
	}
}

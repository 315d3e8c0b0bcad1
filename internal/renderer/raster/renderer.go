package raster

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/export"
	"github.com/dshills/quickcard/internal/imagesrc"
	"github.com/dshills/quickcard/internal/logging"
	"github.com/dshills/quickcard/internal/scene"
)

// maxCachedImages bounds the decoded image cache.
const maxCachedImages = 32

// imageCache keeps decoded images keyed by source reference.
type imageCache struct {
	mu     sync.Mutex
	images map[string]image.Image
}

func (c *imageCache) open(ref string) (image.Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if img, ok := c.images[ref]; ok {
		return img, nil
	}
	img, err := imagesrc.Open(ref)
	if err != nil {
		return nil, err
	}
	if c.images == nil || len(c.images) >= maxCachedImages {
		c.images = make(map[string]image.Image)
	}
	c.images[ref] = img
	return img, nil
}

// Renderer paints scenes into RGBA images.
// It is safe for concurrent use.
type Renderer struct {
	src    scene.Source
	opts   Options
	faces  *faceCache
	images imageCache
	logger *logging.Logger

	mu      sync.Mutex
	onFrame func(revision uint64)
}

// New creates a renderer drawing scenes from src.
func New(src scene.Source, opts Options, logger *logging.Logger) *Renderer {
	return &Renderer{
		src:    src,
		opts:   opts.normalized(),
		faces:  newFaceCache(),
		logger: logging.OrNop(logger).WithComponent("raster"),
	}
}

// Options returns the effective options.
func (r *Renderer) Options() Options {
	return r.opts
}

// OnFrame registers fn to be called with the scene revision after each Render.
func (r *Renderer) OnFrame(fn func(revision uint64)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onFrame = fn
}

// Render draws the current scene at the configured pixel ratio.
func (r *Renderer) Render(ctx context.Context) (*image.RGBA, error) {
	s := r.src.Scene()
	img, err := r.RenderScene(ctx, s, r.opts.PixelRatio)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	fn := r.onFrame
	r.mu.Unlock()
	if fn != nil {
		fn(s.Revision)
	}
	return img, nil
}

// RenderScene draws s at the given pixel ratio.
func (r *Renderer) RenderScene(ctx context.Context, s scene.Scene, ratio float64) (*image.RGBA, error) {
	if !(ratio > 0) {
		ratio = r.opts.PixelRatio
	}
	w := max(1, int(float64(r.opts.Width)*ratio+0.5))
	h := max(1, int(float64(r.opts.Height)*ratio+0.5))
	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	bg := r.colorOr(r.opts.Background, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	for _, el := range s.Elements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.drawElement(canvas, el, ratio, element.ID(el) == s.Selected); err != nil {
			return nil, fmt.Errorf("draw %s %s: %w", el.Kind(), element.ID(el), err)
		}
	}

	r.logger.Debug("rendered revision %d: %d elements at %dx%d", s.Revision, len(s.Elements), w, h)
	return canvas, nil
}

func (r *Renderer) drawElement(canvas *image.RGBA, el element.Element, ratio float64, selected bool) error {
	b := el.Geometry()
	if math.IsInf(b.Width, 0) || math.IsInf(b.Height, 0) {
		r.logger.Warn("skipping %s %s: unbounded size", el.Kind(), b.ID)
		return nil
	}
	lw, lh, localRatio := localSize(b, ratio)
	local := image.NewRGBA(image.Rect(0, 0, lw, lh))

	p := &painter{r: r, dst: local, ratio: localRatio}
	el.Accept(p)
	if p.err != nil {
		return p.err
	}

	m := placement(b, lw, lh, ratio, ratio/localRatio)
	xdraw.BiLinear.Transform(canvas, m, local, local.Bounds(), xdraw.Over, nil)

	if selected {
		dashedOutline(canvas, m, lw, lh, r.colorOr(r.opts.Accent, color.RGBA{R: 59, G: 130, B: 246, A: 255}), ratio)
	}
	return nil
}

// Rasterize renders the current scene and encodes it.
// It implements export.Rasterizer.
func (r *Renderer) Rasterize(ctx context.Context, format export.Format) ([]byte, error) {
	img, err := r.Render(ctx)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, r.opts.JPEGQuality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes img in the given format. Quality applies to JPEG only.
func Encode(w io.Writer, img image.Image, format export.Format, quality int) error {
	switch format {
	case export.PNG:
		return png.Encode(w, img)
	case export.JPEG:
		if quality <= 0 || quality > 100 {
			quality = 90
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: quality})
	}
	return fmt.Errorf("%w: %q", export.ErrUnknownFormat, string(format))
}

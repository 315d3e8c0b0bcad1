package export

import (
	"context"
	"fmt"

	"github.com/dshills/quickcard/internal/logging"
)

// DefaultBaseName is the file name, without extension, of exported images.
const DefaultBaseName = "business-card"

// Rasterizer captures the rendered document as encoded image bytes.
type Rasterizer interface {
	Rasterize(ctx context.Context, format Format) ([]byte, error)
}

// Deselector clears the active selection and returns the state revision
// at which the selection is cleared.
type Deselector interface {
	ClearSelection() uint64
}

// Result is an exported image.
type Result struct {
	Data     []byte
	Format   Format
	Filename string
	MIMEType string
}

// Exporter runs the capture protocol: clear the selection so selection
// affordances are not baked into the image, wait for rendering to reflect
// that, then rasterize.
type Exporter struct {
	deselector Deselector
	sync       RenderSync
	rasterizer Rasterizer
	baseName   string
	logger     *logging.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithBaseName sets the exported file name without extension.
func WithBaseName(name string) Option {
	return func(e *Exporter) {
		if name != "" {
			e.baseName = name
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Exporter) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExporter creates an exporter. A nil sync selects Immediate.
func NewExporter(d Deselector, s RenderSync, r Rasterizer, opts ...Option) *Exporter {
	if s == nil {
		s = Immediate{}
	}
	e := &Exporter{
		deselector: d,
		sync:       s,
		rasterizer: r,
		baseName:   DefaultBaseName,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.WithComponent("export")
	return e
}

// Export captures the document in the given format.
// Failures wrap ErrRasterize; the document is never modified.
func (e *Exporter) Export(ctx context.Context, format Format) (Result, error) {
	if format != PNG && format != JPEG {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}

	rev := e.deselector.ClearSelection()
	if err := e.sync.WaitRendered(ctx, rev); err != nil {
		return Result{}, fmt.Errorf("%w: waiting for revision %d: %w", ErrRasterize, rev, err)
	}

	data, err := e.rasterizer.Rasterize(ctx, format)
	if err != nil {
		e.logger.Error("rasterize %s: %v", format, err)
		return Result{}, fmt.Errorf("%w: %w", ErrRasterize, err)
	}

	res := Result{
		Data:     data,
		Format:   format,
		Filename: format.Filename(e.baseName),
		MIMEType: format.MIMEType(),
	}
	e.logger.WithField("bytes", len(data)).Info("exported %s", res.Filename)
	return res, nil
}

package export

import "errors"

// Errors returned by export operations.
var (
	// ErrUnknownFormat indicates an unsupported image format.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrRasterize indicates the rendered document could not be captured.
	ErrRasterize = errors.New("rasterize failed")
)

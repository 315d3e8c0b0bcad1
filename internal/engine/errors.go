package engine

import "errors"

// Errors returned by engine operations.
var (
	// ErrEmptyID indicates an element without an id was added.
	ErrEmptyID = errors.New("element id is empty")

	// ErrDuplicateID indicates an element id already exists in the document.
	ErrDuplicateID = errors.New("duplicate element id")

	// ErrImageRequiresSource indicates Add was asked for an image without raster data.
	ErrImageRequiresSource = errors.New("image elements require a source; use AddImage")

	// ErrInvalidImageSize indicates non-positive natural image dimensions.
	ErrInvalidImageSize = errors.New("image dimensions must be positive")

	// ErrUnknownDirection indicates an unrecognized layer direction.
	ErrUnknownDirection = errors.New("unknown layer direction")
)

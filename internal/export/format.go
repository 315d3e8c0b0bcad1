package export

import (
	"fmt"
	"strings"
)

// Format is a raster image format.
type Format string

const (
	// PNG is lossless PNG output.
	PNG Format = "png"
	// JPEG is lossy JPEG output.
	JPEG Format = "jpeg"
)

// ParseFormat converts a name such as "png", "jpeg" or "jpg" to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return PNG, nil
	case "jpeg", "jpg":
		return JPEG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// MIMEType returns the media type for the format.
func (f Format) MIMEType() string {
	switch f {
	case PNG:
		return "image/png"
	case JPEG:
		return "image/jpeg"
	}
	return "application/octet-stream"
}

// Filename returns base with the format's extension.
func (f Format) Filename(base string) string {
	return base + "." + string(f)
}

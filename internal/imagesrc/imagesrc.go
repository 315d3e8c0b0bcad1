// Package imagesrc resolves image source references into raster data.
//
// A reference is either a data URI ("data:image/png;base64,...") or a
// file path, optionally with a file:// scheme. Supported formats are PNG,
// JPEG, GIF, WebP and BMP.
package imagesrc

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"net/url"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Errors returned when resolving references.
var (
	// ErrDecode indicates the referenced data is not a decodable image.
	ErrDecode = errors.New("image decode failed")

	// ErrUnsupportedRef indicates a reference that is neither a data URI nor a file.
	ErrUnsupportedRef = errors.New("unsupported image reference")
)

// Info describes a decoded image.
type Info struct {
	Format string // "png", "jpeg", "gif", "webp" or "bmp"
	Width  int    // natural width in pixels
	Height int    // natural height in pixels
}

// MIMEType returns the media type of the image format.
func (i Info) MIMEType() string {
	return mimeType(i.Format)
}

func mimeType(format string) string {
	switch format {
	case "png", "jpeg", "gif", "webp", "bmp":
		return "image/" + format
	}
	return "application/octet-stream"
}

// Decode reads the image header behind ref and returns its natural size.
func Decode(ref string) (Info, error) {
	data, err := Read(ref)
	if err != nil {
		return Info{}, err
	}
	return DecodeBytes(data)
}

// DecodeBytes returns the format and natural size of encoded image data.
func DecodeBytes(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("%w: empty %s image", ErrDecode, format)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Open fully decodes the image behind ref.
func Open(ref string) (image.Image, error) {
	data, err := Read(ref)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return img, nil
}

// Read returns the raw bytes behind ref.
func Read(ref string) ([]byte, error) {
	switch {
	case strings.HasPrefix(ref, "data:"):
		return parseDataURI(ref)
	case strings.HasPrefix(ref, "file://"):
		u, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedRef, err)
		}
		return readFile(u.Path)
	case strings.Contains(ref, "://"):
		return nil, fmt.Errorf("%w: %.40q", ErrUnsupportedRef, ref)
	case ref == "":
		return nil, fmt.Errorf("%w: empty reference", ErrUnsupportedRef)
	default:
		return readFile(ref)
	}
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

// parseDataURI decodes "data:[<mediatype>][;base64],<data>".
func parseDataURI(ref string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("%w: data URI without payload", ErrUnsupportedRef)
	}
	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return []byte(s), nil
}

// DataURI encodes data as a base64 data URI with the given media type.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// FromBytes validates encoded image data and returns it as a data URI.
func FromBytes(data []byte) (string, Info, error) {
	info, err := DecodeBytes(data)
	if err != nil {
		return "", Info{}, err
	}
	return DataURI(info.MIMEType(), data), info, nil
}

// FromFile reads an image file and returns it as a data URI.
func FromFile(path string) (string, Info, error) {
	data, err := readFile(path)
	if err != nil {
		return "", Info{}, err
	}
	return FromBytes(data)
}

package raster

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type faceKey struct {
	bold, italic bool
	size         float64 // pixels, rounded to a quarter
}

// faceCache hands out sized faces for the four Go font styles.
type faceCache struct {
	mu    sync.Mutex
	fonts map[[2]bool]*opentype.Font
	faces map[faceKey]font.Face
}

func newFaceCache() *faceCache {
	return &faceCache{faces: make(map[faceKey]font.Face)}
}

func (c *faceCache) load() error {
	if c.fonts != nil {
		return nil
	}
	sources := map[[2]bool][]byte{
		{false, false}: goregular.TTF,
		{true, false}:  gobold.TTF,
		{false, true}:  goitalic.TTF,
		{true, true}:   gobolditalic.TTF,
	}
	fonts := make(map[[2]bool]*opentype.Font, len(sources))
	for k, ttf := range sources {
		f, err := opentype.Parse(ttf)
		if err != nil {
			return fmt.Errorf("parse font: %w", err)
		}
		fonts[k] = f
	}
	c.fonts = fonts
	return nil
}

// face returns a face of the given pixel size.
func (c *faceCache) face(bold, italic bool, size float64) (font.Face, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.load(); err != nil {
		return nil, err
	}

	key := faceKey{bold: bold, italic: italic, size: math.Max(1, math.Round(size*4)/4)}
	if f, ok := c.faces[key]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(c.fonts[[2]bool{bold, italic}], &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	c.faces[key] = f
	return f, nil
}

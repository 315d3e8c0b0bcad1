package raster

// Options configures the renderer.
type Options struct {
	// Canvas
	Width      int     // Canvas width in canvas units
	Height     int     // Canvas height in canvas units
	PixelRatio float64 // Output pixels per canvas unit
	Background string  // Canvas fill color

	// Selection
	Accent string // Selection outline color

	// Encoding
	JPEGQuality int // 1-100
}

// DefaultOptions returns the stock canvas settings.
func DefaultOptions() Options {
	return Options{
		Width:       900,
		Height:      500,
		PixelRatio:  3,
		Background:  "#FFFFFF",
		Accent:      "#3B82F6",
		JPEGQuality: 100,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if !(o.PixelRatio > 0) {
		o.PixelRatio = d.PixelRatio
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	if o.Accent == "" {
		o.Accent = d.Accent
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = d.JPEGQuality
	}
	return o
}

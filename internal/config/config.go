package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/export"
	"github.com/dshills/quickcard/internal/logging"
	"github.com/dshills/quickcard/internal/renderer/raster"
)

// Config holds every Quickcard setting.
type Config struct {
	Canvas   CanvasConfig   `toml:"canvas" yaml:"canvas" envPrefix:"CANVAS_"`
	History  HistoryConfig  `toml:"history" yaml:"history" envPrefix:"HISTORY_"`
	Defaults DefaultsConfig `toml:"defaults" yaml:"defaults" envPrefix:"DEFAULTS_"`
	Export   ExportConfig   `toml:"export" yaml:"export" envPrefix:"EXPORT_"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging" envPrefix:"LOG_"`
}

// CanvasConfig sets the card size in canvas units.
type CanvasConfig struct {
	Width  int `toml:"width" yaml:"width" env:"WIDTH"`
	Height int `toml:"height" yaml:"height" env:"HEIGHT"`
}

// HistoryConfig bounds the undo history.
type HistoryConfig struct {
	MaxEntries int `toml:"max_entries" yaml:"max_entries" env:"MAX_ENTRIES"`
}

// DefaultsConfig is the style given to newly added elements.
type DefaultsConfig struct {
	FontFamily string  `toml:"font_family" yaml:"font_family" env:"FONT_FAMILY"`
	FontSize   float64 `toml:"font_size" yaml:"font_size" env:"FONT_SIZE"`
	TextColor  string  `toml:"text_color" yaml:"text_color" env:"TEXT_COLOR"`
	ShapeColor string  `toml:"shape_color" yaml:"shape_color" env:"SHAPE_COLOR"`
	QRValue    string  `toml:"qr_value" yaml:"qr_value" env:"QR_VALUE"`
}

// ExportConfig controls rasterized output.
type ExportConfig struct {
	Format      string  `toml:"format" yaml:"format" env:"FORMAT"`
	PixelRatio  float64 `toml:"pixel_ratio" yaml:"pixel_ratio" env:"PIXEL_RATIO"`
	JPEGQuality int     `toml:"jpeg_quality" yaml:"jpeg_quality" env:"JPEG_QUALITY"`
	Background  string  `toml:"background" yaml:"background" env:"BACKGROUND"`
	Accent      string  `toml:"accent" yaml:"accent" env:"ACCENT"`
	BaseName    string  `toml:"base_name" yaml:"base_name" env:"BASE_NAME"`
}

// LoggingConfig controls the logger.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level" env:"LEVEL"`
}

// Default returns the built-in settings.
func Default() Config {
	d := element.DefaultDefaults()
	r := raster.DefaultOptions()
	return Config{
		Canvas: CanvasConfig{
			Width:  r.Width,
			Height: r.Height,
		},
		History: HistoryConfig{
			MaxEntries: 1000,
		},
		Defaults: DefaultsConfig{
			FontFamily: d.FontFamily,
			FontSize:   element.DefaultFontSize,
			TextColor:  d.TextColor,
			ShapeColor: d.ShapeColor,
			QRValue:    d.QRValue,
		},
		Export: ExportConfig{
			Format:      string(export.PNG),
			PixelRatio:  r.PixelRatio,
			JPEGQuality: r.JPEGQuality,
			Background:  r.Background,
			Accent:      r.Accent,
			BaseName:    export.DefaultBaseName,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks the settings and returns every problem found.
func (c Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, c.Canvas.Width, c.Canvas.Height))
	}
	if c.History.MaxEntries <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidHistory, c.History.MaxEntries))
	}
	if !(c.Defaults.FontSize > 0) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidFontSize, c.Defaults.FontSize))
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidFormat, c.Export.Format))
	}
	if !(c.Export.PixelRatio > 0) {
		errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidPixelRatio, c.Export.PixelRatio))
	}
	if c.Export.JPEGQuality < 1 || c.Export.JPEGQuality > 100 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidJPEGQuality, c.Export.JPEGQuality))
	}
	if strings.TrimSpace(c.Export.BaseName) == "" {
		errs = append(errs, ErrEmptyBaseName)
	}
	if !logging.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level))
	}
	return errors.Join(errs...)
}

// ElementDefaults converts the defaults section for the element factory.
func (c Config) ElementDefaults() element.Defaults {
	return element.Defaults{
		FontFamily: c.Defaults.FontFamily,
		FontSize:   c.Defaults.FontSize,
		TextColor:  c.Defaults.TextColor,
		ShapeColor: c.Defaults.ShapeColor,
		QRValue:    c.Defaults.QRValue,
	}
}

// RasterOptions converts the canvas and export sections for the renderer.
func (c Config) RasterOptions() raster.Options {
	return raster.Options{
		Width:       c.Canvas.Width,
		Height:      c.Canvas.Height,
		PixelRatio:  c.Export.PixelRatio,
		Background:  c.Export.Background,
		Accent:      c.Export.Accent,
		JPEGQuality: c.Export.JPEGQuality,
	}
}

// ExportFormat returns the configured export format, PNG when invalid.
func (c Config) ExportFormat() export.Format {
	f, err := export.ParseFormat(c.Export.Format)
	if err != nil {
		return export.PNG
	}
	return f
}

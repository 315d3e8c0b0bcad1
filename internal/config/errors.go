package config

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidCanvas      = errors.New("canvas size must be positive")
	ErrInvalidHistory     = errors.New("history max entries must be positive")
	ErrInvalidPixelRatio  = errors.New("export pixel ratio must be positive")
	ErrInvalidJPEGQuality = errors.New("export jpeg quality must be between 1 and 100")
	ErrInvalidFormat      = errors.New("export format must be png or jpeg")
	ErrInvalidLogLevel    = errors.New("unknown log level")
	ErrInvalidFontSize    = errors.New("default font size must be positive")
	ErrEmptyBaseName      = errors.New("export base name is empty")
)

// ErrUnsupportedExtension is returned for config files that are neither TOML nor YAML.
var ErrUnsupportedExtension = errors.New("unsupported config file extension")

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

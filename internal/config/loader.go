package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileSystem is an abstraction for reading config files.
// fstest.MapFS satisfies it, which keeps loader tests off the disk.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS implements FileSystem using the real OS file system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Loader reads config files and layers environment overrides on top.
type Loader struct {
	fs      FileSystem
	environ map[string]string
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem sets the file system files are read from.
func WithFileSystem(fsys FileSystem) LoaderOption {
	return func(l *Loader) {
		if fsys != nil {
			l.fs = fsys
		}
	}
}

// WithEnviron replaces the process environment used for overrides.
func WithEnviron(environ map[string]string) LoaderOption {
	return func(l *Loader) {
		l.environ = environ
	}
}

// NewLoader creates a loader reading from the OS file system.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{fs: OSFS{}}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads settings from path with environment overrides applied and
// validates the result. An empty path or a missing file yields the defaults.
func Load(path string) (Config, error) {
	return NewLoader().Load(path)
}

// Load reads settings from path. See the package-level Load.
func (l *Loader) Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := l.decodeFile(path, &cfg); err != nil {
			return Default(), err
		}
	}
	if err := ApplyEnv(&cfg, l.environ); err != nil {
		return Default(), err
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("invalid config %s: %w", displayPath(path), err)
	}
	return cfg, nil
}

// decodeFile overlays the file at path onto cfg. Keys missing from the file
// keep their current values; unknown keys are an error.
func (l *Loader) decodeFile(path string, cfg *Config) error {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return decodeTOML(path, data, cfg)
	case ".yaml", ".yml":
		return decodeYAML(path, data, cfg)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedExtension, path)
	}
}

func decodeTOML(path string, data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		perr := &ParseError{Path: path, Message: err.Error(), Err: err}

		var derr *toml.DecodeError
		var serr *toml.StrictMissingError
		switch {
		case errors.As(err, &derr):
			perr.Line, perr.Column = derr.Position()
		case errors.As(err, &serr) && len(serr.Errors) > 0:
			perr.Line, perr.Column = serr.Errors[0].Position()
			perr.Message = "unknown key " + strings.Join(serr.Errors[0].Key(), ".")
		}
		return perr
	}
	return nil
}

func decodeYAML(path string, data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return &ParseError{Path: path, Message: err.Error(), Err: err}
	}
	return nil
}

// Marshal encodes cfg as TOML or YAML, chosen by the extension of path.
func Marshal(path string, cfg Config) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Marshal(cfg)
	case ".yaml", ".yml":
		return yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExtension, path)
	}
}

func displayPath(path string) string {
	if path == "" {
		return "(defaults)"
	}
	return path
}

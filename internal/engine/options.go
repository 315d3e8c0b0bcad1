package engine

import (
	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/engine/history"
	"github.com/dshills/quickcard/internal/logging"
)

// DefaultMaxUndoEntries is the default number of stored snapshots.
const DefaultMaxUndoEntries = history.DefaultMaxEntries

// Option configures an Engine during creation.
type Option func(*Engine)

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithDefaults sets the style new elements are created with.
func WithDefaults(d element.Defaults) Option {
	return func(e *Engine) {
		e.factory.Defaults = d
	}
}

// WithIDGenerator replaces the id generator used by the element factory.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) {
		if newID != nil {
			e.factory.NewID = newID
		}
	}
}

// WithElements sets the initial document content.
// The initial document is the first history entry and cannot be undone.
func WithElements(els ...element.Element) Option {
	return func(e *Engine) {
		e.initial = els
	}
}

// WithLogger sets the logger used for engine diagnostics.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

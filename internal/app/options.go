package app

import (
	"github.com/dshills/quickcard/internal/engine"
	"github.com/dshills/quickcard/internal/event"
	"github.com/dshills/quickcard/internal/export"
	"github.com/dshills/quickcard/internal/logging"
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithBus publishes events on b instead of a private bus.
func WithBus(b *event.Bus) Option {
	return func(a *App) {
		if b != nil {
			a.bus = b
		}
	}
}

// WithEngineOptions passes extra options to the document engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(a *App) {
		a.engineOpts = append(a.engineOpts, opts...)
	}
}

// WithRenderSync sets how exports wait for the deselected frame.
// Front ends that paint on their own loop pass the FrameSync their
// renderer reports to. The default renders on demand.
func WithRenderSync(s export.RenderSync) Option {
	return func(a *App) {
		a.renderSync = s
	}
}

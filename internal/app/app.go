package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/dshills/quickcard/internal/config"
	"github.com/dshills/quickcard/internal/engine"
	"github.com/dshills/quickcard/internal/engine/element"
	"github.com/dshills/quickcard/internal/event"
	"github.com/dshills/quickcard/internal/event/topic"
	"github.com/dshills/quickcard/internal/export"
	"github.com/dshills/quickcard/internal/gesture"
	"github.com/dshills/quickcard/internal/logging"
	"github.com/dshills/quickcard/internal/renderer/raster"
	"github.com/dshills/quickcard/internal/scene"
)

// eventSource tags events published by the app.
const eventSource = "app"

// App is the editor: document engine, selection, gestures and export.
// It is safe for concurrent use.
type App struct {
	mu sync.RWMutex

	cfg    config.Config
	engine *engine.Engine

	// Presentation state, outside undo history
	selected string
	revision uint64

	handles  *gesture.HandleMap
	gestures *gesture.Reconciler

	renderer   *raster.Renderer
	exporter   *export.Exporter
	renderSync export.RenderSync

	bus    *event.Bus
	logger *logging.Logger

	engineOpts []engine.Option
}

// New creates an editor configured by cfg.
func New(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	a := &App{cfg: cfg}
	for _, opt := range opts {
		opt(a)
	}
	base := logging.OrNop(a.logger)
	a.logger = base.WithComponent("app")
	if a.bus == nil {
		a.bus = event.NewBus(base)
	}
	if a.renderSync == nil {
		a.renderSync = export.Immediate{}
	}

	engineOpts := []engine.Option{
		engine.WithMaxUndoEntries(cfg.History.MaxEntries),
		engine.WithDefaults(cfg.ElementDefaults()),
		engine.WithLogger(base),
	}
	a.engine = engine.New(append(engineOpts, a.engineOpts...)...)
	a.engineOpts = nil

	a.handles = gesture.NewHandleMap()
	a.handles.SyncVisual(a.engine.Elements())
	a.gestures = gesture.NewReconciler(a.handles, a, base)

	a.renderer = raster.New(a, cfg.RasterOptions(), base)
	a.exporter = export.NewExporter(a, a.renderSync, a.renderer,
		export.WithBaseName(cfg.Export.BaseName),
		export.WithLogger(base),
	)
	return a, nil
}

// Config returns the active configuration.
func (a *App) Config() config.Config {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.cfg
}

// Bus returns the event bus the app publishes on.
func (a *App) Bus() *event.Bus {
	return a.bus
}

// Engine returns the document engine.
// Edits made directly on the engine bypass selection upkeep and events.
func (a *App) Engine() *engine.Engine {
	return a.engine
}

// Renderer returns the rasterizer drawing the app's scene.
func (a *App) Renderer() *raster.Renderer {
	return a.renderer
}

// Gestures returns the reconciler for drag, resize and rotate interactions.
func (a *App) Gestures() *gesture.Reconciler {
	return a.gestures
}

// Handles returns the gesture handles, one per element.
func (a *App) Handles() *gesture.HandleMap {
	return a.handles
}

// Revision returns the current state revision.
func (a *App) Revision() uint64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.revision
}

// Scene returns the current elements in paint order with the selection.
func (a *App) Scene() scene.Scene {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return scene.Scene{
		Elements: a.engine.Elements(),
		Selected: a.selected,
		Revision: a.revision,
	}
}

// Elements returns the current elements in paint order.
func (a *App) Elements() []element.Element {
	return a.engine.Elements()
}

// Find returns the current element with the given id.
func (a *App) Find(id string) (element.Element, bool) {
	return a.engine.Find(id)
}

// Layer is one row of the layers panel.
type Layer struct {
	ID       string
	Label    string
	Kind     element.Kind
	ZIndex   int
	Selected bool
}

// Layers lists the elements topmost first.
func (a *App) Layers() []Layer {
	s := a.Scene()
	layers := make([]Layer, 0, len(s.Elements))
	for i := len(s.Elements) - 1; i >= 0; i-- {
		el := s.Elements[i]
		id := element.ID(el)
		layers = append(layers, Layer{
			ID:       id,
			Label:    element.Label(el),
			Kind:     el.Kind(),
			ZIndex:   element.ZIndex(el),
			Selected: id == s.Selected,
		})
	}
	return layers
}

// CanUndo reports whether there is an edit to undo.
func (a *App) CanUndo() bool {
	return a.engine.CanUndo()
}

// CanRedo reports whether there is an edit to redo.
func (a *App) CanRedo() bool {
	return a.engine.CanRedo()
}

// History returns the stored snapshots, oldest first, and the cursor.
func (a *App) History() ([]engine.HistoryEntry, int) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.engine.History(), a.engine.HistoryCursor()
}

// ApplyConfig switches to cfg. Element defaults and the history limit take
// effect immediately; canvas and export settings apply to new apps only.
func (a *App) ApplyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	a.mu.Lock()
	a.cfg = cfg
	a.engine.SetDefaults(cfg.ElementDefaults())
	a.engine.SetMaxUndoEntries(cfg.History.MaxEntries)
	a.mu.Unlock()

	a.logger.Info("configuration applied")
	a.publish(event.TopicConfigReloaded, cfg)
	return nil
}

// publish sends an event and logs handler failures.
func (a *App) publish(t topic.Topic, payload any) {
	if err := a.bus.Publish(context.Background(), event.New(t, payload, eventSource)); err != nil {
		a.logger.Warn("publish %s: %v", t, err)
	}
}

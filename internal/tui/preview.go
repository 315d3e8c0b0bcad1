package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/quickcard/internal/app"
	"github.com/dshills/quickcard/internal/event"
	"github.com/dshills/quickcard/internal/export"
	"github.com/dshills/quickcard/internal/gesture"
	"github.com/dshills/quickcard/internal/logging"
)

// Step sizes for keyboard manipulation, in canvas units and degrees.
const (
	MoveStep   = 5.0
	ResizeStep = 5.0
	RotateStep = 15.0
)

// ErrQuit is returned by HandleEvent when the user asks to leave.
var ErrQuit = errors.New("quit requested")

// Preview runs the terminal front end for an App.
type Preview struct {
	app    *app.App
	screen tcell.Screen
	frames *export.FrameSync
	logger *logging.Logger

	exportDir string

	mu      sync.Mutex
	status  string
	gesture *gesture.Gesture
}

// Option configures a Preview.
type Option func(*Preview)

// WithExportDir sets the directory exports are written to.
func WithExportDir(dir string) Option {
	return func(p *Preview) {
		p.exportDir = dir
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(p *Preview) {
		p.logger = l
	}
}

// New creates a preview painting on screen, which must be initialized.
// frames must be the RenderSync the app was created with; the preview
// reports every painted revision to it.
func New(a *app.App, screen tcell.Screen, frames *export.FrameSync, opts ...Option) *Preview {
	p := &Preview{
		app:       a,
		screen:    screen,
		frames:    frames,
		exportDir: ".",
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.OrNop(p.logger).WithComponent("tui")
	return p
}

// OpenTerminal creates and initializes a terminal screen with mouse support.
func OpenTerminal() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	return screen, nil
}

// Status returns the status line message.
func (p *Preview) Status() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

func (p *Preview) setStatus(format string, args ...any) {
	p.mu.Lock()
	p.status = fmt.Sprintf(format, args...)
	p.mu.Unlock()
}

// Run paints and handles input until ctx is done or the user quits.
func (p *Preview) Run(ctx context.Context) error {
	// Any state change wakes the loop for a repaint.
	sub, err := p.app.Bus().Subscribe("**", func(context.Context, event.Event) error {
		p.wake()
		return nil
	})
	if err != nil {
		return err
	}
	defer sub.Cancel()

	go func() {
		<-ctx.Done()
		p.wake()
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := p.Draw(ctx); err != nil {
			p.logger.Warn("draw: %v", err)
		}

		ev := p.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := p.HandleEvent(ctx, ev); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}

func (p *Preview) wake() {
	_ = p.screen.PostEvent(tcell.NewEventInterrupt(nil)) // best-effort; queue may be full
}

// HandleEvent applies one terminal event.
func (p *Preview) HandleEvent(ctx context.Context, ev tcell.Event) error {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return p.handleKey(ctx, e)
	case *tcell.EventMouse:
		p.handleMouse(e)
	case *tcell.EventResize:
		p.screen.Sync()
	}
	return nil
}

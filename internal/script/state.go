package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quickcard/internal/logging"
)

// DefaultTimeout bounds a single script run.
const DefaultTimeout = 5 * time.Second

// Runner executes card scripts.
//
// gopher-lua's LState is not goroutine-safe; Runner serializes runs with
// its mutex.
type Runner struct {
	mu sync.Mutex
	L  *lua.LState

	editor  Editor
	logger  *logging.Logger
	out     io.Writer
	timeout time.Duration

	closed bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout sets the per-run timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// WithOutput sends print output to w instead of the logger.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// NewRunner creates a sandboxed Lua state bound to ed.
func NewRunner(ed Editor, opts ...Option) *Runner {
	r := &Runner{
		editor:  ed,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = logging.OrNop(r.logger).WithComponent("script")

	r.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(r.L)
	r.installSandbox()
	r.installCard()
	return r
}

// openSafeLibraries opens only safe Lua standard libraries.
// io, os, debug and package are never opened.
func openSafeLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// installSandbox removes loaders and redirects print.
func (r *Runner) installSandbox() {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		r.L.SetGlobal(name, lua.LNil)
	}
	r.L.SetGlobal("print", r.L.NewFunction(r.print))
}

func (r *Runner) print(L *lua.LState) int {
	n := L.GetTop()
	parts := make([]string, n)
	for i := 1; i <= n; i++ {
		parts[i-1] = L.ToStringMeta(L.Get(i)).String()
	}
	line := strings.Join(parts, "\t")
	if r.out != nil {
		fmt.Fprintln(r.out, line)
	} else {
		r.logger.Info("%s", line)
	}
	return 0
}

// Run executes code. name labels the chunk in error messages.
func (r *Runner) Run(ctx context.Context, name, code string) error {
	return r.do(ctx, func(L *lua.LState) error {
		fn, err := L.Load(strings.NewReader(code), name)
		if err != nil {
			return err
		}
		L.Push(fn)
		return L.PCall(0, lua.MultRet, nil)
	})
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}
	return r.Run(ctx, path, string(data))
}

func (r *Runner) do(ctx context.Context, fn func(L *lua.LState) error) (err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	r.L.SetContext(ctx)
	defer r.L.RemoveContext()

	top := r.L.GetTop()
	defer r.L.SetTop(top)

	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: lua panic: %v", ErrScript, rec)
		}
	}()

	if err := fn(r.L); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return fmt.Errorf("%w: %w", ErrTimeout, ctxErr)
			}
			return ctxErr
		}
		return fmt.Errorf("%w: %w", ErrScript, err)
	}
	return nil
}

// Global returns a global value converted to Go. Used by tests and callers
// that read results a script left behind.
func (r *Runner) Global(name string) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	return toGoValue(r.L.GetGlobal(name))
}

// Close releases the Lua state. Further runs return ErrClosed.
func (r *Runner) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil
	}
	r.L.Close()
	r.closed = true
	return nil
}

package export

import (
	"context"
	"sync"
)

// RenderSync lets the exporter wait until the rendering layer has drawn a
// given state revision.
type RenderSync interface {
	WaitRendered(ctx context.Context, revision uint64) error
}

// Immediate is a RenderSync for renderers that read the latest state at
// capture time and so never lag behind.
type Immediate struct{}

// WaitRendered returns at once unless ctx is already done.
func (Immediate) WaitRendered(ctx context.Context, _ uint64) error {
	return ctx.Err()
}

// FrameSync is a RenderSync the rendering layer signals after each frame.
type FrameSync struct {
	mu       sync.Mutex
	rendered uint64
	waiters  map[chan struct{}]uint64
}

// NewFrameSync creates a FrameSync that has rendered nothing yet.
func NewFrameSync() *FrameSync {
	return &FrameSync{waiters: make(map[chan struct{}]uint64)}
}

// Rendered records that every revision up to revision is on screen.
// Revisions never move backwards.
func (s *FrameSync) Rendered(revision uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if revision <= s.rendered {
		return
	}
	s.rendered = revision
	for ch, want := range s.waiters {
		if want <= revision {
			close(ch)
			delete(s.waiters, ch)
		}
	}
}

// Revision returns the latest rendered revision.
func (s *FrameSync) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rendered
}

// WaitRendered blocks until revision has been rendered or ctx is done.
func (s *FrameSync) WaitRendered(ctx context.Context, revision uint64) error {
	s.mu.Lock()
	if revision <= s.rendered {
		s.mu.Unlock()
		return nil
	}
	ch := make(chan struct{})
	s.waiters[ch] = revision
	s.mu.Unlock()

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		delete(s.waiters, ch)
		s.mu.Unlock()
		return ctx.Err()
	}
}

package event

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/dshills/quickcard/internal/event/topic"
	"github.com/dshills/quickcard/internal/logging"
)

// Priority determines handler execution order.
// Lower values execute first.
type Priority int

const (
	// PriorityCritical is for renderer handlers that must observe state first.
	PriorityCritical Priority = 0

	// PriorityNormal is the default priority.
	PriorityNormal Priority = 200

	// PriorityLow is for logging handlers that run last.
	PriorityLow Priority = 300
)

// Handler processes an event.
type Handler func(ctx context.Context, e Event) error

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*subscription)

// WithPriority sets the handler priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(s *subscription) {
		s.priority = p
	}
}

// WithOnce removes the subscription after its first successful delivery.
func WithOnce() SubscriptionOption {
	return func(s *subscription) {
		s.once = true
	}
}

type subscription struct {
	id       uint64
	pattern  topic.Topic
	handler  Handler
	priority Priority
	once     bool
}

// Subscription is a handle for removing a handler from the bus.
type Subscription struct {
	bus *Bus
	id  uint64
}

// Cancel removes the subscription. It is safe to call more than once.
func (s Subscription) Cancel() {
	if s.bus != nil {
		s.bus.remove(s.id)
	}
}

// Stats holds delivery counters.
type Stats struct {
	EventsPublished  uint64
	HandlersExecuted uint64
	HandlerErrors    uint64
	HandlerPanics    uint64
}

// Bus delivers events synchronously to subscribers whose pattern matches
// the event topic, in priority order. Handlers run in the publisher's
// goroutine; a failing or panicking handler does not stop delivery to the
// others.
//
// Bus is safe for concurrent use. The zero value is not usable; use NewBus.
type Bus struct {
	mu     sync.RWMutex
	subs   []*subscription
	nextID uint64

	logger *logging.Logger

	eventsPublished  atomic.Uint64
	handlersExecuted atomic.Uint64
	handlerErrors    atomic.Uint64
	handlerPanics    atomic.Uint64
}

// NewBus creates an event bus. A nil logger discards diagnostics.
func NewBus(logger *logging.Logger) *Bus {
	return &Bus{logger: logging.OrNop(logger).WithComponent("event")}
}

// Subscribe registers h for events whose topic matches pattern.
func (b *Bus) Subscribe(pattern topic.Topic, h Handler, opts ...SubscriptionOption) (Subscription, error) {
	if !pattern.IsValid() {
		return Subscription{}, fmt.Errorf("%w: %q", ErrInvalidTopic, pattern)
	}
	if h == nil {
		return Subscription{}, ErrNilHandler
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{
		id:       b.nextID,
		pattern:  pattern,
		handler:  h,
		priority: PriorityNormal,
	}
	for _, opt := range opts {
		opt(sub)
	}

	b.subs = append(b.subs, sub)
	slices.SortStableFunc(b.subs, func(a, c *subscription) int {
		return int(a.priority) - int(c.priority)
	})

	return Subscription{bus: b, id: sub.id}, nil
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = slices.DeleteFunc(b.subs, func(s *subscription) bool {
		return s.id == id
	})
}

// Len returns the number of active subscriptions.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Publish delivers e to every matching handler and returns their errors joined.
func (b *Bus) Publish(ctx context.Context, e Event) error {
	if !e.Topic.IsValid() || e.Topic.IsWildcard() {
		return fmt.Errorf("%w: %q", ErrInvalidTopic, e.Topic)
	}

	b.mu.RLock()
	var matched []*subscription
	for _, s := range b.subs {
		if e.Topic.Matches(s.pattern) {
			matched = append(matched, s)
		}
	}
	b.mu.RUnlock()

	b.eventsPublished.Add(1)

	var errs []error
	for _, s := range matched {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		err := b.dispatch(ctx, s, e)
		b.handlersExecuted.Add(1)
		if err != nil {
			b.handlerErrors.Add(1)
			b.logger.WithField("topic", e.Topic).Warn("handler failed: %v", err)
			errs = append(errs, err)
			continue
		}
		if s.once {
			b.remove(s.id)
		}
	}
	return errors.Join(errs...)
}

func (b *Bus) dispatch(ctx context.Context, s *subscription, e Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.handlerPanics.Add(1)
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, r)
		}
	}()
	return s.handler(ctx, e)
}

// Stats returns a snapshot of the delivery counters.
func (b *Bus) Stats() Stats {
	return Stats{
		EventsPublished:  b.eventsPublished.Load(),
		HandlersExecuted: b.handlersExecuted.Load(),
		HandlerErrors:    b.handlerErrors.Load(),
		HandlerPanics:    b.handlerPanics.Load(),
	}
}

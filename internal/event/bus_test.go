package event

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/dshills/quickcard/internal/event/topic"
)

func TestBus_PublishMatchesPatterns(t *testing.T) {
	bus := NewBus(nil)
	var got []string

	record := func(name string) Handler {
		return func(ctx context.Context, e Event) error {
			got = append(got, name)
			return nil
		}
	}
	bus.Subscribe("document.*", record("document"))
	bus.Subscribe("selection.changed", record("selection"))
	bus.Subscribe("**", record("all"))

	if err := bus.Publish(context.Background(), New(TopicDocumentCommitted, nil, "test")); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"document", "all"}) {
		t.Errorf("delivered to %v", got)
	}
}

func TestBus_PriorityOrder(t *testing.T) {
	bus := NewBus(nil)
	var got []Priority

	for _, p := range []Priority{PriorityLow, PriorityNormal, PriorityCritical} {
		p := p
		bus.Subscribe("**", func(ctx context.Context, e Event) error {
			got = append(got, p)
			return nil
		}, WithPriority(p))
	}

	bus.Publish(context.Background(), New(TopicSelectionChanged, nil, "test"))
	want := []Priority{PriorityCritical, PriorityNormal, PriorityLow}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestBus_ErrorsAndPanicsDoNotStopDelivery(t *testing.T) {
	bus := NewBus(nil)
	errBoom := errors.New("boom")
	delivered := false

	bus.Subscribe("**", func(ctx context.Context, e Event) error { return errBoom })
	bus.Subscribe("**", func(ctx context.Context, e Event) error { panic("bad handler") })
	bus.Subscribe("**", func(ctx context.Context, e Event) error {
		delivered = true
		return nil
	})

	err := bus.Publish(context.Background(), New(TopicDocumentUndone, nil, "test"))
	if !errors.Is(err, errBoom) || !errors.Is(err, ErrHandlerPanic) {
		t.Errorf("Publish() error = %v", err)
	}
	if !delivered {
		t.Error("later handler was skipped")
	}

	stats := bus.Stats()
	if stats.HandlersExecuted != 3 || stats.HandlerErrors != 2 || stats.HandlerPanics != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestBus_OnceAndCancel(t *testing.T) {
	bus := NewBus(nil)
	count := 0
	h := func(ctx context.Context, e Event) error {
		count++
		return nil
	}

	bus.Subscribe(TopicExportCompleted, h, WithOnce())
	sub, _ := bus.Subscribe(TopicExportCompleted, h)

	ev := New(TopicExportCompleted, nil, "test")
	bus.Publish(context.Background(), ev)
	bus.Publish(context.Background(), ev)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	sub.Cancel()
	sub.Cancel()
	if bus.Len() != 0 {
		t.Errorf("Len() = %d", bus.Len())
	}
}

func TestBus_InvalidInput(t *testing.T) {
	bus := NewBus(nil)
	h := func(ctx context.Context, e Event) error { return nil }

	if _, err := bus.Subscribe("", h); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Subscribe(\"\") error = %v", err)
	}
	if _, err := bus.Subscribe("document.*", nil); !errors.Is(err, ErrNilHandler) {
		t.Errorf("Subscribe(nil) error = %v", err)
	}
	if err := bus.Publish(context.Background(), Event{Topic: topic.Topic("document.*")}); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("Publish(wildcard) error = %v", err)
	}
}

func TestBus_CancelledContext(t *testing.T) {
	bus := NewBus(nil)
	called := false
	bus.Subscribe("**", func(ctx context.Context, e Event) error {
		called = true
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := bus.Publish(ctx, New(TopicConfigReloaded, nil, "test")); !errors.Is(err, context.Canceled) {
		t.Errorf("Publish() error = %v", err)
	}
	if called {
		t.Error("handler ran with cancelled context")
	}
}

func TestNewAndPayloadAs(t *testing.T) {
	e := New(TopicSelectionChanged, "el-1", "app")
	if e.Metadata.ID == "" || e.Metadata.Timestamp.IsZero() || e.Metadata.Source != "app" {
		t.Errorf("metadata = %+v", e.Metadata)
	}
	if id, ok := PayloadAs[string](e); !ok || id != "el-1" {
		t.Errorf("PayloadAs[string] = %q, %v", id, ok)
	}
	if _, ok := PayloadAs[int](e); ok {
		t.Error("PayloadAs[int] succeeded on a string payload")
	}
}

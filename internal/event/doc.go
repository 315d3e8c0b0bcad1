// Package event provides the publish/subscribe bus that connects the
// editor core to its observers.
//
// The bus is synchronous: Publish returns only after every matching
// handler has run. Renderers subscribe at PriorityCritical so they observe
// a new snapshot before anything else reacts to it.
//
// # Topics
//
// Topics are dot-separated and subscriptions may use wildcards:
//
//	bus.Subscribe("document.*", h)    // committed, undone, redone
//	bus.Subscribe("**", h)            // everything
//
// # Example
//
//	bus := event.NewBus(logger)
//	sub, _ := bus.Subscribe(event.TopicSelectionChanged, func(ctx context.Context, e event.Event) error {
//		fmt.Println("selected", e.Payload)
//		return nil
//	})
//	defer sub.Cancel()
//
//	_ = bus.Publish(ctx, event.New(event.TopicSelectionChanged, "el-1", "app"))
package event

package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/dshills/quickcard/internal/event/topic"
)

// Topics published by the editor.
const (
	// TopicDocumentCommitted fires after an edit commits a new snapshot.
	TopicDocumentCommitted topic.Topic = "document.committed"

	// TopicDocumentUndone fires after undo moves to an earlier snapshot.
	TopicDocumentUndone topic.Topic = "document.undone"

	// TopicDocumentRedone fires after redo moves to a later snapshot.
	TopicDocumentRedone topic.Topic = "document.redone"

	// TopicSelectionChanged fires when the selected element changes.
	TopicSelectionChanged topic.Topic = "selection.changed"

	// TopicExportCompleted fires after a successful export.
	TopicExportCompleted topic.Topic = "export.completed"

	// TopicConfigReloaded fires after the configuration file is reloaded.
	TopicConfigReloaded topic.Topic = "config.reloaded"
)

// Event represents an event in the system.
// Events are immutable once created.
type Event struct {
	// Topic is the hierarchical event type (e.g., "document.committed").
	Topic topic.Topic

	// Payload contains the event-specific data.
	Payload any

	// Metadata contains standard event information.
	Metadata Metadata
}

// Metadata contains standard information attached to every event.
type Metadata struct {
	// ID is a unique identifier for this event instance.
	ID string

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Source identifies the component that published the event.
	Source string
}

// New creates an event with a fresh id and the current time.
func New(t topic.Topic, payload any, source string) Event {
	return Event{
		Topic:   t,
		Payload: payload,
		Metadata: Metadata{
			ID:        uuid.NewString(),
			Timestamp: time.Now(),
			Source:    source,
		},
	}
}

// PayloadAs returns the event payload as T.
func PayloadAs[T any](e Event) (T, bool) {
	v, ok := e.Payload.(T)
	return v, ok
}

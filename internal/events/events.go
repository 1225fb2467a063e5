// Package events decouples request handling from background work. Services
// emit task request events without knowing which handlers consume them; the
// task layer registers a handler that turns events into queued jobs.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventTypeCommentaryGeneration requests commentary generation for a newly
// submitted answer.
const EventTypeCommentaryGeneration = "commentary_generation"

// TaskRequestEvent represents a request to run a background task. It carries
// only serialized data so emitters need no dependency on the task package.
type TaskRequestEvent struct {
	// ID is a unique identifier for this event.
	ID uuid.UUID `json:"id"`

	// Type names the task type that should be created.
	Type string `json:"type"`

	// Payload contains the task-specific data serialized as JSON.
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created.
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskRequestEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent creates a TaskRequestEvent with the specified type and
// payload. The payload is serialized to JSON at construction time.
func NewTaskRequestEvent(eventType string, payload interface{}) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   payloadBytes,
		CreatedAt: time.Now(),
	}, nil
}

// EventHandler is implemented by components that process emitted events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter is implemented by components that publish events to
// registered handlers.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}

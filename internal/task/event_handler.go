package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ohgiri-live/ohgiri-api/internal/events"
)

// CommentaryEventHandler turns commentary generation events into queued
// tasks. Registering it with the event emitter connects the submission path
// to the worker pool without a direct dependency between them.
type CommentaryEventHandler struct {
	factory *CommentaryGenerationTaskFactory
	queue   TaskQueueWriter
	logger  *slog.Logger
}

var _ events.EventHandler = (*CommentaryEventHandler)(nil)

// NewCommentaryEventHandler creates an event handler that builds tasks with
// the given factory and submits them to the queue.
func NewCommentaryEventHandler(
	factory *CommentaryGenerationTaskFactory,
	queue TaskQueueWriter,
	logger *slog.Logger,
) *CommentaryEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentaryEventHandler{
		factory: factory,
		queue:   queue,
		logger:  logger.With("component", "commentary_event_handler"),
	}
}

// HandleEvent processes commentary generation events by creating a task and
// enqueueing it. Events of other types are ignored. A full or closed queue
// is reported to the caller; the answer stays pending and keeps showing its
// placeholder.
func (h *CommentaryEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != events.EventTypeCommentaryGeneration {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload commentaryGenerationPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	if payload.AnswerID == uuid.Nil {
		h.logger.Error("event payload missing answer ID", "event_id", event.ID)
		return fmt.Errorf("event payload missing answer ID")
	}

	t, err := h.factory.CreateTask(payload.AnswerID, payload.TopicPrompt, payload.AnswerText)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"answer_id", payload.AnswerID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.queue.Enqueue(t); err != nil {
		h.logger.Error("failed to enqueue task",
			"error", err,
			"task_id", t.ID(),
			"answer_id", payload.AnswerID,
			"event_id", event.ID)
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	h.logger.Info("commentary task enqueued",
		"task_id", t.ID(),
		"answer_id", payload.AnswerID,
		"event_id", event.ID)
	return nil
}

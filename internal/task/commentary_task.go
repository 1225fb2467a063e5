package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ohgiri-live/ohgiri-api/internal/domain"
)

// Common errors returned when constructing a CommentaryGenerationTask.
var (
	ErrNilResolver    = errors.New("commentary resolver cannot be nil")
	ErrNilAnswerStore = errors.New("answer store cannot be nil")
	ErrNilNotifier    = errors.New("notifier cannot be nil")
	ErrEmptyAnswerID  = errors.New("answer ID cannot be empty")
)

// CommentaryResolver produces a terminal commentary for an answer. It owns
// the retry policy and never fails: every run resolves to Ready or Failed.
type CommentaryResolver interface {
	Run(ctx context.Context, topicPrompt, answerText string) domain.Commentary
}

// AnswerUpdater persists a terminal commentary. The returned bool reports
// whether the row actually transitioned out of the pending state.
type AnswerUpdater interface {
	UpdateCommentary(ctx context.Context, id uuid.UUID, commentary domain.Commentary) (bool, error)
}

// CommentaryNotifier broadcasts a resolved commentary to connected clients.
type CommentaryNotifier interface {
	NotifyCommentaryUpdated(answerID uuid.UUID, commentary string)
}

// commentaryGenerationPayload is the serialized data carried by the task and
// its triggering event.
type commentaryGenerationPayload struct {
	AnswerID    uuid.UUID `json:"answer_id"`
	TopicPrompt string    `json:"topic_prompt"`
	AnswerText  string    `json:"answer_text"`
}

// CommentaryGenerationTask implements the Task interface. It resolves the
// commentary for one answer: run the generator with retries, persist the
// terminal result, and notify clients when the row transitioned.
type CommentaryGenerationTask struct {
	id          uuid.UUID
	answerID    uuid.UUID
	topicPrompt string
	answerText  string
	resolver    CommentaryResolver
	answers     AnswerUpdater
	notifier    CommentaryNotifier
	logger      *slog.Logger
	status      TaskStatus
}

var _ Task = (*CommentaryGenerationTask)(nil)

// NewCommentaryGenerationTask creates a new commentary generation task for
// the given answer.
func NewCommentaryGenerationTask(
	answerID uuid.UUID,
	topicPrompt string,
	answerText string,
	resolver CommentaryResolver,
	answers AnswerUpdater,
	notifier CommentaryNotifier,
	logger *slog.Logger,
) (*CommentaryGenerationTask, error) {
	if resolver == nil {
		return nil, ErrNilResolver
	}
	if answers == nil {
		return nil, ErrNilAnswerStore
	}
	if notifier == nil {
		return nil, ErrNilNotifier
	}
	if answerID == uuid.Nil {
		return nil, ErrEmptyAnswerID
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CommentaryGenerationTask{
		id:          uuid.New(),
		answerID:    answerID,
		topicPrompt: topicPrompt,
		answerText:  answerText,
		resolver:    resolver,
		answers:     answers,
		notifier:    notifier,
		logger:      logger.With("task_type", TaskTypeCommentaryGeneration, "answer_id", answerID),
		status:      TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier.
func (t *CommentaryGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier.
func (t *CommentaryGenerationTask) Type() string {
	return TaskTypeCommentaryGeneration
}

// Payload returns the task data as a byte slice.
func (t *CommentaryGenerationTask) Payload() []byte {
	payload := commentaryGenerationPayload{
		AnswerID:    t.answerID,
		TopicPrompt: t.topicPrompt,
		AnswerText:  t.answerText,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}
	return data
}

// Status returns the current task status.
func (t *CommentaryGenerationTask) Status() TaskStatus {
	return t.status
}

// Execute resolves the answer's commentary. The resolver always returns a
// terminal commentary, so the only failure mode here is persistence. The
// notification fires at most once, and only when the store confirms that
// this task's write moved the row out of the pending state.
func (t *CommentaryGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting commentary generation task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	commentary := t.resolver.Run(ctx, t.topicPrompt, t.answerText)

	updated, err := t.answers.UpdateCommentary(ctx, t.answerID, commentary)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("failed to persist commentary", "error", err)
		return fmt.Errorf("failed to persist commentary: %w", err)
	}

	if !updated {
		// Another writer resolved the answer first, or the answer is gone.
		// Either way the notification belongs to whoever did the write.
		t.status = TaskStatusCompleted
		t.logger.Warn("commentary already resolved or answer missing, skipping notification")
		return nil
	}

	t.notifier.NotifyCommentaryUpdated(t.answerID, commentary.Text)

	t.status = TaskStatusCompleted
	t.logger.Info("commentary generation task completed",
		"commentary_status", string(commentary.Status))
	return nil
}

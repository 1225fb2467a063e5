package task

import (
	"log/slog"

	"github.com/google/uuid"
)

// CommentaryGenerationTaskFactory creates CommentaryGenerationTask instances
// with a fixed set of collaborators.
type CommentaryGenerationTaskFactory struct {
	resolver CommentaryResolver
	answers  AnswerUpdater
	notifier CommentaryNotifier
	logger   *slog.Logger
}

// NewCommentaryGenerationTaskFactory creates a new factory.
func NewCommentaryGenerationTaskFactory(
	resolver CommentaryResolver,
	answers AnswerUpdater,
	notifier CommentaryNotifier,
	logger *slog.Logger,
) *CommentaryGenerationTaskFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentaryGenerationTaskFactory{
		resolver: resolver,
		answers:  answers,
		notifier: notifier,
		logger:   logger.With("component", "commentary_task_factory"),
	}
}

// CreateTask creates a new CommentaryGenerationTask for the specified answer.
func (f *CommentaryGenerationTaskFactory) CreateTask(
	answerID uuid.UUID,
	topicPrompt string,
	answerText string,
) (Task, error) {
	return NewCommentaryGenerationTask(
		answerID,
		topicPrompt,
		answerText,
		f.resolver,
		f.answers,
		f.notifier,
		f.logger,
	)
}

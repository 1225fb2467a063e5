package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ohgiri-live/ohgiri-api/internal/domain"
	"github.com/ohgiri-live/ohgiri-api/internal/platform/logger"
	"github.com/ohgiri-live/ohgiri-api/internal/store"
)

// PostgresAnswerStore implements the store.AnswerStore interface using a
// PostgreSQL database as the storage backend.
type PostgresAnswerStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresAnswerStore creates a new PostgreSQL implementation of the
// AnswerStore interface. The database connection or transaction is
// initialized and managed by the caller. If logger is nil, a default logger
// is used.
func NewPostgresAnswerStore(db store.DBTX, logger *slog.Logger) *PostgresAnswerStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresAnswerStore{
		db:     db,
		logger: logger.With(slog.String("component", "answer_store")),
	}
}

// Ensure PostgresAnswerStore implements store.AnswerStore
var _ store.AnswerStore = (*PostgresAnswerStore)(nil)

// Create implements store.AnswerStore.Create.
// Returns store.ErrInvalidEntity if the referenced topic doesn't exist
// (foreign key violation).
func (s *PostgresAnswerStore) Create(ctx context.Context, answer *domain.Answer) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := answer.Validate(); err != nil {
		log.Warn("answer validation failed during create",
			slog.String("error", err.Error()),
			slog.String("answer_id", answer.ID.String()))
		return err
	}

	query := `
		INSERT INTO answers (id, topic_id, answer_text, commentary_status, commentary, vote_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		answer.ID,
		answer.TopicID,
		answer.Text,
		answer.Commentary.Status,
		answer.Commentary.Text,
		answer.VoteCount,
		answer.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during answer creation",
				slog.String("error", err.Error()),
				slog.String("answer_id", answer.ID.String()),
				slog.String("topic_id", answer.TopicID.String()))
			return fmt.Errorf("%w: topic with ID %s not found",
				store.ErrInvalidEntity, answer.TopicID)
		}

		log.Error("failed to create answer",
			slog.String("error", err.Error()),
			slog.String("answer_id", answer.ID.String()))
		return MapError(err)
	}

	log.Info("answer created successfully",
		slog.String("answer_id", answer.ID.String()),
		slog.String("topic_id", answer.TopicID.String()))
	return nil
}

// FindByTopic implements store.AnswerStore.FindByTopic, ordered by vote count
// descending so the read path serves the ranking directly.
func (s *PostgresAnswerStore) FindByTopic(
	ctx context.Context,
	topicID uuid.UUID,
) ([]*domain.Answer, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, topic_id, answer_text, commentary_status, commentary, vote_count, created_at
		FROM answers
		WHERE topic_id = $1
		ORDER BY vote_count DESC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, topicID)
	if err != nil {
		log.Error("failed to find answers by topic",
			slog.String("error", err.Error()),
			slog.String("topic_id", topicID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	answers := make([]*domain.Answer, 0)
	for rows.Next() {
		answer, err := scanAnswer(rows)
		if err != nil {
			log.Error("failed to scan answer row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		answers = append(answers, answer)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return answers, nil
}

// CountByTopic implements store.AnswerStore.CountByTopic.
func (s *PostgresAnswerStore) CountByTopic(ctx context.Context, topicID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM answers WHERE topic_id = $1`

	var count int
	if err := s.db.QueryRowContext(ctx, query, topicID).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// IncrementVote implements store.AnswerStore.IncrementVote.
// The increment happens inside the UPDATE so concurrent votes serialize on
// the row and no update is lost.
func (s *PostgresAnswerStore) IncrementVote(ctx context.Context, id uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE answers
		SET vote_count = vote_count + 1
		WHERE id = $1
		RETURNING vote_count
	`

	var voteCount int
	err := s.db.QueryRowContext(ctx, query, id).Scan(&voteCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("answer not found for vote", slog.String("answer_id", id.String()))
			return 0, store.ErrAnswerNotFound
		}
		log.Error("failed to increment vote",
			slog.String("error", err.Error()),
			slog.String("answer_id", id.String()))
		return 0, MapError(err)
	}

	log.Info("vote counted",
		slog.String("answer_id", id.String()),
		slog.Int("vote_count", voteCount))
	return voteCount, nil
}

// UpdateCommentary implements store.AnswerStore.UpdateCommentary.
// The predicate on commentary_status makes terminal commentary write-once:
// a row that already reached a terminal state is never overwritten. A missing
// row (deleted by an external path) is a no-op, not an error.
func (s *PostgresAnswerStore) UpdateCommentary(
	ctx context.Context,
	id uuid.UUID,
	commentary domain.Commentary,
) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !commentary.Terminal() {
		return false, domain.ErrCommentaryNotTerminal
	}
	if err := commentary.Validate(); err != nil {
		return false, err
	}

	query := `
		UPDATE answers
		SET commentary_status = $2, commentary = $3
		WHERE id = $1 AND commentary_status = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		id,
		commentary.Status,
		commentary.Text,
		domain.CommentaryStatusPending,
	)
	if err != nil {
		log.Error("failed to update commentary",
			slog.String("error", err.Error()),
			slog.String("answer_id", id.String()))
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, MapError(err)
	}
	if rowsAffected == 0 {
		// The answer was deleted, or its commentary is already terminal.
		log.Warn("commentary update affected no rows",
			slog.String("answer_id", id.String()),
			slog.String("status", string(commentary.Status)))
		return false, nil
	}

	log.Info("commentary updated",
		slog.String("answer_id", id.String()),
		slog.String("status", string(commentary.Status)))
	return true, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for scanAnswer.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnswer(row rowScanner) (*domain.Answer, error) {
	var answer domain.Answer
	var status string

	err := row.Scan(
		&answer.ID,
		&answer.TopicID,
		&answer.Text,
		&status,
		&answer.Commentary.Text,
		&answer.VoteCount,
		&answer.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	answer.Commentary.Status = domain.CommentaryStatus(status)
	return &answer, nil
}

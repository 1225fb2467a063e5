package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/ohgiri-live/ohgiri-api/internal/domain"
	"github.com/ohgiri-live/ohgiri-api/internal/platform/logger"
	"github.com/ohgiri-live/ohgiri-api/internal/store"
)

// PostgresTopicStore implements the store.TopicStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTopicStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTopicStore creates a new PostgreSQL implementation of the
// TopicStore interface. The database connection or transaction is initialized
// and managed by the caller. If logger is nil, a default logger is used.
func NewPostgresTopicStore(db store.DBTX, logger *slog.Logger) *PostgresTopicStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTopicStore{
		db:     db,
		logger: logger.With(slog.String("component", "topic_store")),
	}
}

// Ensure PostgresTopicStore implements store.TopicStore
var _ store.TopicStore = (*PostgresTopicStore)(nil)

// Create implements store.TopicStore.Create.
func (s *PostgresTopicStore) Create(ctx context.Context, topic *domain.Topic) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := topic.Validate(); err != nil {
		log.Warn("topic validation failed during create",
			slog.String("error", err.Error()),
			slog.String("topic_id", topic.ID.String()))
		return err
	}

	query := `
		INSERT INTO topics (id, prompt, created_at, deadline)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		topic.ID,
		topic.Prompt,
		topic.CreatedAt,
		topic.Deadline,
	)
	if err != nil {
		log.Error("failed to create topic",
			slog.String("error", err.Error()),
			slog.String("topic_id", topic.ID.String()))
		return MapError(err)
	}

	log.Info("topic created successfully",
		slog.String("topic_id", topic.ID.String()))
	return nil
}

// GetByID implements store.TopicStore.GetByID.
// Returns store.ErrTopicNotFound if the topic does not exist.
func (s *PostgresTopicStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Topic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, prompt, created_at, deadline
		FROM topics
		WHERE id = $1
	`

	var topic domain.Topic
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&topic.ID,
		&topic.Prompt,
		&topic.CreatedAt,
		&topic.Deadline,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("topic not found", slog.String("topic_id", id.String()))
			return nil, store.ErrTopicNotFound
		}
		log.Error("failed to get topic by ID",
			slog.String("error", err.Error()),
			slog.String("topic_id", id.String()))
		return nil, MapError(err)
	}

	return &topic, nil
}

// List implements store.TopicStore.List, newest topics first.
func (s *PostgresTopicStore) List(ctx context.Context) ([]*domain.Topic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, prompt, created_at, deadline
		FROM topics
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list topics", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	topics := make([]*domain.Topic, 0)
	for rows.Next() {
		var topic domain.Topic
		if err := rows.Scan(
			&topic.ID,
			&topic.Prompt,
			&topic.CreatedAt,
			&topic.Deadline,
		); err != nil {
			log.Error("failed to scan topic row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		topics = append(topics, &topic)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return topics, nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/ohgiri-live/ohgiri-api/internal/config"
	"github.com/ohgiri-live/ohgiri-api/internal/events"
	"github.com/ohgiri-live/ohgiri-api/internal/generation"
	"github.com/ohgiri-live/ohgiri-api/internal/platform/gemini"
	"github.com/ohgiri-live/ohgiri-api/internal/platform/lmstudio"
	"github.com/ohgiri-live/ohgiri-api/internal/platform/postgres"
	"github.com/ohgiri-live/ohgiri-api/internal/service"
	"github.com/ohgiri-live/ohgiri-api/internal/task"
	"github.com/ohgiri-live/ohgiri-api/internal/ws"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	topicStore  *postgres.PostgresTopicStore
	answerStore *postgres.PostgresAnswerStore

	// Commentary pipeline
	generator  generation.Generator
	resolver   *generation.RetryExecutor
	taskQueue  *task.TaskQueue
	workerPool *task.WorkerPool

	// Websocket hub
	hub       *ws.Hub
	hubCancel context.CancelFunc

	// Event system
	eventEmitter events.EventEmitter

	// Services
	topicService  service.TopicService
	answerService service.AnswerService
}

// newApplication creates a new application instance with all dependencies
// initialized. The worker pool and websocket hub are running when it returns.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores
	app.topicStore = postgres.NewPostgresTopicStore(db, logger)
	app.answerStore = postgres.NewPostgresAnswerStore(db, logger)

	// Commentary generator backend
	var err error
	app.generator, err = newGenerator(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize commentary generator: %w", err)
	}
	logger.Info("commentary generator initialized", "backend", cfg.Generator.Backend)

	// Retry executor owns the attempt budget for every generation request.
	app.resolver, err = generation.NewRetryExecutor(
		app.generator,
		generation.RetryExecutorConfig{
			MaxAttempts: cfg.Generator.MaxAttempts,
			BaseDelay:   time.Duration(cfg.Generator.RetryDelayMS) * time.Millisecond,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create retry executor: %w", err)
	}

	// Websocket hub; runs until the application shuts down.
	app.hub = ws.NewHub(logger)
	hubCtx, hubCancel := context.WithCancel(context.Background())
	app.hubCancel = hubCancel
	go app.hub.Run(hubCtx)

	// Background task pipeline
	app.taskQueue = task.NewTaskQueue(cfg.Task.QueueSize, logger)
	app.workerPool = task.NewWorkerPool(
		app.taskQueue,
		task.WorkerPoolConfig{WorkerCount: cfg.Task.WorkerCount},
		logger,
	)
	app.workerPool.Start()

	taskFactory := task.NewCommentaryGenerationTaskFactory(
		app.resolver,
		app.answerStore,
		app.hub,
		logger,
	)

	// Event emitter bridges answer submission to the task pipeline.
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(task.NewCommentaryEventHandler(taskFactory, app.taskQueue, logger))
	app.eventEmitter = emitter

	// Services
	app.topicService, err = service.NewTopicService(app.topicStore, app.answerStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create topic service: %w", err)
	}

	app.answerService, err = service.NewAnswerService(
		app.topicStore,
		app.answerStore,
		app.eventEmitter,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create answer service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// newGenerator selects and builds the commentary backend from configuration.
func newGenerator(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (generation.Generator, error) {
	timeout := time.Duration(cfg.Generator.TimeoutSeconds) * time.Second

	switch cfg.Generator.Backend {
	case "gemini":
		return gemini.NewGenerator(ctx, logger, gemini.Config{
			APIKey:  cfg.Generator.GeminiAPIKey,
			Model:   cfg.Generator.GeminiModel,
			Timeout: timeout,
		})
	case "lmstudio":
		return lmstudio.NewGenerator(logger, lmstudio.Config{
			BaseURL: cfg.Generator.LMStudioURL,
			Model:   cfg.Generator.LMStudioModel,
			Timeout: timeout,
		})
	default:
		return nil, fmt.Errorf("unknown generator backend: %q", cfg.Generator.Backend)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources. The queue is
// closed first so no new commentary tasks are accepted while the pool winds
// down.
func (app *application) cleanup() {
	if app.taskQueue != nil {
		app.taskQueue.Close()
	}
	if app.workerPool != nil {
		app.workerPool.Stop()
	}
	if app.hubCancel != nil {
		app.hubCancel()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}

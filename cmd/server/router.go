package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ohgiri-live/ohgiri-api/internal/api"
	apiMiddleware "github.com/ohgiri-live/ohgiri-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	topicHandler := api.NewTopicHandler(app.topicService)
	answerHandler := api.NewAnswerHandler(app.answerService)
	wsHandler := api.NewWSHandler(app.hub, app.logger)

	r.Get("/topics", topicHandler.ListTopics)
	r.Post("/topics", topicHandler.CreateTopic)
	r.Get("/topics/{topicID}", topicHandler.GetTopic)
	r.Post("/topics/{topicID}/answers", answerHandler.SubmitAnswer)
	r.Post("/answers/{answerID}/vote", answerHandler.Vote)

	r.Get("/ws", wsHandler.ServeWS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

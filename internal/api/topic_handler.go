package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ohgiri-live/ohgiri-api/internal/api/shared"
	"github.com/ohgiri-live/ohgiri-api/internal/service"
)

// CreateTopicRequest represents the request body for creating a new topic.
type CreateTopicRequest struct {
	Prompt string `json:"prompt" validate:"required,min=1"`
}

// TopicHandler handles topic-related HTTP requests.
type TopicHandler struct {
	topicService service.TopicService
}

// NewTopicHandler creates a new TopicHandler.
func NewTopicHandler(topicService service.TopicService) *TopicHandler {
	return &TopicHandler{topicService: topicService}
}

// ListTopics handles GET /topics requests. Every topic is returned with its
// answer count and the seconds remaining until its deadline.
func (h *TopicHandler) ListTopics(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.topicService.ListTopics(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	now := time.Now()
	response := make([]TopicSummaryResponse, 0, len(summaries))
	for _, summary := range summaries {
		response = append(response, topicSummaryToResponse(summary, now))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateTopic handles POST /topics requests.
func (h *TopicHandler) CreateTopic(w http.ResponseWriter, r *http.Request) {
	var req CreateTopicRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No prompt provided")
		return
	}

	topic, err := h.topicService.CreateTopic(r.Context(), req.Prompt)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateTopicResponse{
		Message:  "Topic created",
		ID:       topic.ID.String(),
		Prompt:   topic.Prompt,
		Deadline: topic.Deadline,
	})
}

// GetTopic handles GET /topics/{topicID} requests.
func (h *TopicHandler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topicID, err := uuid.Parse(chi.URLParam(r, "topicID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	detail, err := h.topicService.GetTopicDetail(r.Context(), topicID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	answers := make([]AnswerResponse, 0, len(detail.Answers))
	for _, answer := range detail.Answers {
		answers = append(answers, answerToResponse(answer))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TopicDetailResponse{
		ID:       detail.Topic.ID.String(),
		Prompt:   detail.Topic.Prompt,
		Deadline: detail.Topic.Deadline,
		Answers:  answers,
	})
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ohgiri-live/ohgiri-api/internal/api/shared"
	"github.com/ohgiri-live/ohgiri-api/internal/service"
)

// SubmitAnswerRequest represents the request body for submitting an answer.
type SubmitAnswerRequest struct {
	AnswerText string `json:"answer_text" validate:"required,min=1"`
}

// AnswerHandler handles answer-related HTTP requests.
type AnswerHandler struct {
	answerService service.AnswerService
}

// NewAnswerHandler creates a new AnswerHandler.
func NewAnswerHandler(answerService service.AnswerService) *AnswerHandler {
	return &AnswerHandler{answerService: answerService}
}

// SubmitAnswer handles POST /topics/{topicID}/answers requests. The response
// returns as soon as the answer row exists; commentary generation continues
// in the background and is announced over the websocket.
func (h *AnswerHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	topicID, err := uuid.Parse(chi.URLParam(r, "topicID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No answer provided")
		return
	}

	answer, err := h.answerService.SubmitAnswer(r.Context(), topicID, req.AnswerText)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, SubmitAnswerResponse{
		Message:  "Answer submitted",
		AnswerID: answer.ID.String(),
	})
}

// Vote handles POST /answers/{answerID}/vote requests.
func (h *AnswerHandler) Vote(w http.ResponseWriter, r *http.Request) {
	answerID, err := uuid.Parse(chi.URLParam(r, "answerID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid answer ID")
		return
	}

	count, err := h.answerService.Vote(r.Context(), answerID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r,
			MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, VoteResponse{
		Message:   "Vote counted",
		VoteCount: count,
	})
}

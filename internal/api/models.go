package api

import (
	"time"

	"github.com/ohgiri-live/ohgiri-api/internal/domain"
	"github.com/ohgiri-live/ohgiri-api/internal/service"
)

// TopicSummaryResponse is one entry of the topic listing.
type TopicSummaryResponse struct {
	ID            string  `json:"id"`
	Prompt        string  `json:"prompt"`
	RemainingTime float64 `json:"remaining_time"`
	AnswersCount  int     `json:"answers_count"`
}

// TopicDetailResponse is a topic with its ranked answers.
type TopicDetailResponse struct {
	ID       string           `json:"id"`
	Prompt   string           `json:"prompt"`
	Deadline time.Time        `json:"deadline"`
	Answers  []AnswerResponse `json:"answers"`
}

// AnswerResponse represents one answer. Commentary carries the placeholder
// text while generation is still pending.
type AnswerResponse struct {
	ID         string `json:"id"`
	AnswerText string `json:"answer_text"`
	Commentary string `json:"commentary"`
	VoteCount  int    `json:"vote_count"`
}

// CreateTopicResponse confirms a created topic.
type CreateTopicResponse struct {
	Message  string    `json:"message"`
	ID       string    `json:"id"`
	Prompt   string    `json:"prompt"`
	Deadline time.Time `json:"deadline"`
}

// SubmitAnswerResponse confirms a submitted answer whose commentary is being
// generated in the background.
type SubmitAnswerResponse struct {
	Message  string `json:"message"`
	AnswerID string `json:"answer_id"`
}

// VoteResponse confirms a counted vote.
type VoteResponse struct {
	Message   string `json:"message"`
	VoteCount int    `json:"vote_count"`
}

// topicSummaryToResponse converts a service summary to its response shape.
// Remaining time is reported in seconds, clamped at zero.
func topicSummaryToResponse(summary service.TopicSummary, now time.Time) TopicSummaryResponse {
	return TopicSummaryResponse{
		ID:            summary.Topic.ID.String(),
		Prompt:        summary.Topic.Prompt,
		RemainingTime: summary.Topic.RemainingTime(now),
		AnswersCount:  summary.AnswersCount,
	}
}

// answerToResponse converts a domain answer to its response shape.
func answerToResponse(answer *domain.Answer) AnswerResponse {
	return AnswerResponse{
		ID:         answer.ID.String(),
		AnswerText: answer.Text,
		Commentary: answer.Commentary.Display(),
		VoteCount:  answer.VoteCount,
	}
}

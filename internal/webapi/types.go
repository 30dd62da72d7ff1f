package webapi

import (
	"time"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
)

// SessionResponse describes the loaded session and its derived stage.
type SessionResponse struct {
	ParticipantID string         `json:"participantId"`
	Stage         string         `json:"stage"`
	StartTime     time.Time      `json:"startTime"`
	PoleReversal  bool           `json:"poleReversal"`
	Completed     bool           `json:"completed"`
	Agent         *catalog.Agent `json:"agent,omitempty"`
	TaskOrder     []string       `json:"taskOrder,omitempty"`
}

// BriefingResponse carries the assignments shown on the briefing screen.
type BriefingResponse struct {
	Agent     catalog.Agent `json:"agent"`
	TaskOrder []string      `json:"taskOrder"`
}

// TaskResponse is the selected task for one ordinal, with instructions
// rendered to HTML.
type TaskResponse struct {
	Ordinal          int    `json:"ordinal"`
	Type             string `json:"type"`
	ID               string `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description,omitempty"`
	InstructionsHTML string `json:"instructionsHtml"`
}

// ScaleRow is one semantic-differential item prepared for display. Left
// and Right are the pole labels in display orientation; Values maps each
// display position (left to right) to the canonical value to store.
type ScaleRow struct {
	ID     string `json:"id"`
	Left   string `json:"left"`
	Right  string `json:"right"`
	Values []int  `json:"values"`
}

// StatementRow is one rated statement with its labeled response scale.
type StatementRow struct {
	ID     string               `json:"id"`
	Text   string               `json:"text"`
	Points []catalog.ScalePoint `json:"points"`
}

// SingleItemRow is a standalone measure with its own scale and an
// optional free-text rationale key.
type SingleItemRow struct {
	ID        string               `json:"id"`
	Text      string               `json:"text"`
	Points    []catalog.ScalePoint `json:"points"`
	ReasonKey string               `json:"reasonKey"`
}

// ScalesResponse is everything a renderer needs for the questionnaire
// stages of one task: which groups are still pending, in order, plus the
// display data for each group.
type ScalesResponse struct {
	Ordinal       int             `json:"ordinal"`
	PendingGroups []string        `json:"pendingGroups"`
	Combined      []ScaleRow      `json:"combined"`
	STIAS         []StatementRow  `json:"sTIAS"`
	SingleItems   []SingleItemRow `json:"singleItems"`
}

// ScaleSubmission is the request body for a scale-group submission.
type ScaleSubmission struct {
	Responses map[string]any `json:"responses"`
}

// ScreenshotSubmission is the request body for a screenshot save. Each
// entry is a data URI.
type ScreenshotSubmission struct {
	Screenshots []string `json:"screenshots"`
}

// ClearChatResponse carries the chat-clearing guide for the assigned agent.
type ClearChatResponse struct {
	Agent catalog.Agent          `json:"agent"`
	Guide catalog.ClearChatGuide `json:"guide"`
}

// BackgroundResponse describes the background form: questions plus any
// previously saved answers.
type BackgroundResponse struct {
	Questions []catalog.Question `json:"questions"`
	Answers   map[string]string  `json:"answers,omitempty"`
}

// ResetRequest guards the destructive reset endpoint.
type ResetRequest struct {
	Confirm bool `json:"confirm"`
}

// StageResponse is returned by mutation endpoints so clients can advance
// without a second round trip.
type StageResponse struct {
	Stage string `json:"stage"`
}

// HealthResponse is the health check response.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ErrorResponse is returned for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

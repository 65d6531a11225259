package handlers

import (
	"errors"
	"strings"

	"dentalgate/internal/files"
)

const (
	maxPromptLength  = 5000
	maxContextLength = 2000
)

// tokenBudgets maps a request priority to the upstream max_tokens budget.
var tokenBudgets = map[string]int{
	"low":    300,
	"normal": 500,
	"high":   800,
	"urgent": 1200,
}

// fileTokenBudget is the fixed budget for file analysis requests.
const fileTokenBudget = 1200

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Prompt   string `json:"prompt"`
	Action   string `json:"action"`
	Context  string `json:"context,omitempty"`
	Priority string `json:"priority,omitempty"`
}

// Validate normalizes the request in place and checks its shape.
func (q *AskRequest) Validate() error {
	q.Prompt = strings.TrimSpace(q.Prompt)
	if q.Prompt == "" {
		return errors.New("prompt must not be empty")
	}
	if len(q.Prompt) > maxPromptLength {
		return errors.New("prompt exceeds maximum length of 5000 characters")
	}
	if len(q.Context) > maxContextLength {
		return errors.New("context exceeds maximum length of 2000 characters")
	}

	if q.Action == "" {
		q.Action = "default"
	}
	if q.Priority == "" {
		q.Priority = "normal"
	}
	if _, ok := tokenBudgets[q.Priority]; !ok {
		return errors.New("priority must be one of: low, normal, high, urgent")
	}

	return nil
}

// AskResponse is the success payload of both ask endpoints; it is also the
// value stored in the response cache.
type AskResponse struct {
	Success        bool        `json:"success"`
	Action         string      `json:"action"`
	Answer         string      `json:"answer"`
	ProcessingTime float64     `json:"processing_time"`
	FileInfo       *files.Info `json:"file_info,omitempty"`
	Warnings       []string    `json:"warnings,omitempty"`
	Cached         bool        `json:"cached"`
}

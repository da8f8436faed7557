package services

import "time"

const (
	QuestionKindText         = "text"
	QuestionKindSingleChoice = "single-choice"
)

// Question is one schema element of a form. IDs are allocated once at
// form creation and are the join key between schema and answers.
type Question struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Kind     string   `json:"kind"`
	Options  []string `json:"options,omitempty"`
	Required bool     `json:"required"`
}

// Form is an owner-authored, versionless schema of ordered questions.
// Question order is display order, export column order and summary order.
type Form struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
	CreatedBy   string     `json:"created_by"`
	ResponseIDs []string   `json:"response_ids,omitempty"`
	// ResponseCount caches len(ResponseIDs) for display; aggregation and
	// export recompute from the response query instead.
	ResponseCount int       `json:"response_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Response is one respondent's complete answer set for a form. Answers is
// keyed by question ID; single-choice answers store the selected option's
// literal text.
type Response struct {
	ID          string            `json:"id"`
	FormID      string            `json:"form_id"`
	Answers     map[string]string `json:"answers"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

// User is a form owner.
type User struct {
	ID        string
	Name      string
	Email     string
	PassHash  []byte
	CreatedAt time.Time
}

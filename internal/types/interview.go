package types

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateSessionRequest represents the request to persist a new interview
// session for the authenticated user.
type CreateSessionRequest struct {
	Position       string   `json:"position" validate:"required,min=1"`
	JobDescription string   `json:"job_description,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	QuestionTypes  []string `json:"question_types,omitempty"`
	ResumeText     string   `json:"resume_text" validate:"required,min=1"`
}

// SessionResponse represents a persisted interview session.
type SessionResponse struct {
	ID             uuid.UUID  `json:"id"`
	Position       string     `json:"position"`
	JobDescription string     `json:"job_description,omitempty"`
	Difficulty     string     `json:"difficulty"`
	QuestionTypes  []string   `json:"question_types"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// AddTurnRequest represents the request to record one completed
// question/answer pair on a persisted session.
type AddTurnRequest struct {
	Question string `json:"question" validate:"required,min=1"`
	Answer   string `json:"answer" validate:"required,min=1"`
}

// TurnResponse represents a persisted interview turn.
type TurnResponse struct {
	ID         uuid.UUID `json:"id"`
	TurnNumber int       `json:"turn_number"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
}

// SessionFeedbackResponse wraps the stored feedback JSON for a session.
type SessionFeedbackResponse struct {
	SessionID uuid.UUID       `json:"session_id"`
	Feedback  json.RawMessage `json:"feedback"`
	CreatedAt time.Time       `json:"created_at"`
}

// Validate validates the CreateSessionRequest.
func (r *CreateSessionRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the AddTurnRequest.
func (r *AddTurnRequest) Validate() error {
	return validator.New().Struct(r)
}

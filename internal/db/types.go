package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// User represents a row in the users table.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	PasswordSet  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session statuses.
const (
	SessionInProgress = "in_progress"
	SessionCompleted  = "completed"
)

// Session represents a row in the interview_sessions table: the fixed context
// of one interview plus its lifecycle status.
type Session struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	Position       string
	JobDescription string
	Difficulty     string
	QuestionTypes  []string
	ResumeText     string
	Status         string
	CreatedAt      time.Time
	CompletedAt    *time.Time
}

// SessionTurn represents one completed question/answer pair of a session.
type SessionTurn struct {
	ID         uuid.UUID
	SessionID  uuid.UUID
	TurnNumber int
	Question   string
	Answer     string
	CreatedAt  time.Time
}

// SessionFeedback holds the final feedback JSON produced for a completed
// session.
type SessionFeedback struct {
	SessionID uuid.UUID
	Content   json.RawMessage
	CreatedAt time.Time
}

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateSession inserts a new interview session row and returns its ID.
func (db *DB) CreateSession(ctx context.Context, s *Session) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interview_sessions (user_id, position, job_description, difficulty, question_types, resume_text, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		s.UserID, s.Position, s.JobDescription, s.Difficulty, s.QuestionTypes, s.ResumeText, SessionInProgress,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

const sessionColumns = `id, user_id, position, COALESCE(job_description, ''), difficulty, question_types, resume_text, status, created_at, completed_at`

// GetSession retrieves a session by ID. Returns nil when it does not exist.
func (db *DB) GetSession(ctx context.Context, id uuid.UUID) (*Session, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM interview_sessions WHERE id = $1`, id)
	s, err := scanSession(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// ListSessionsByUser returns all sessions owned by the user, newest first.
func (db *DB) ListSessionsByUser(ctx context.Context, userID uuid.UUID) ([]*Session, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+sessionColumns+` FROM interview_sessions WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CompleteSession marks a session as completed.
func (db *DB) CompleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE interview_sessions SET status = $1, completed_at = NOW() WHERE id = $2`,
		SessionCompleted, id,
	)
	if err != nil {
		return fmt.Errorf("failed to complete session: %w", err)
	}
	return nil
}

// DeleteSession removes a session and, via cascade, its turns and feedback.
func (db *DB) DeleteSession(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM interview_sessions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// AddTurn appends a completed question/answer pair to a session. Turn numbers
// start at 1 and are unique per session.
func (db *DB) AddTurn(ctx context.Context, sessionID uuid.UUID, turnNumber int, question, answer string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interview_turns (session_id, turn_number, question, answer)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		sessionID, turnNumber, question, answer,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to add turn %d: %w", turnNumber, err)
	}
	return id, nil
}

// ListTurns returns a session's turns in chronological order.
func (db *DB) ListTurns(ctx context.Context, sessionID uuid.UUID) ([]*SessionTurn, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, session_id, turn_number, question, answer, created_at
		 FROM interview_turns WHERE session_id = $1 ORDER BY turn_number`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list turns: %w", err)
	}
	defer rows.Close()

	var turns []*SessionTurn
	for rows.Next() {
		var t SessionTurn
		if err := rows.Scan(&t.ID, &t.SessionID, &t.TurnNumber, &t.Question, &t.Answer, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		turns = append(turns, &t)
	}
	return turns, rows.Err()
}

// SaveFeedback stores the final feedback JSON for a session, replacing any
// previous feedback.
func (db *DB) SaveFeedback(ctx context.Context, sessionID uuid.UUID, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal feedback: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO interview_feedback (session_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (session_id) DO UPDATE SET content = $2, created_at = NOW()`,
		sessionID, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// GetFeedback retrieves a session's feedback. Returns nil when no feedback
// has been stored yet.
func (db *DB) GetFeedback(ctx context.Context, sessionID uuid.UUID) (*SessionFeedback, error) {
	var f SessionFeedback
	err := db.pool.QueryRow(ctx,
		`SELECT session_id, content, created_at FROM interview_feedback WHERE session_id = $1`,
		sessionID,
	).Scan(&f.SessionID, &f.Content, &f.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return &f, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	var s Session
	if err := row.Scan(
		&s.ID, &s.UserID, &s.Position, &s.JobDescription, &s.Difficulty,
		&s.QuestionTypes, &s.ResumeText, &s.Status, &s.CreatedAt, &s.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &s, nil
}

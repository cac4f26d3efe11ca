package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/jialekhooo/interviewbot/internal/db"
	"github.com/jialekhooo/interviewbot/internal/interview"
	"github.com/jialekhooo/interviewbot/internal/types"
)

// handleCreateSession persists a new interview session for the
// authenticated user.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	difficulty, err := interview.ParseDifficulty(req.Difficulty)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	if _, err := interview.ParseQuestionTypes(req.QuestionTypes); err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	session := &db.Session{
		UserID:         userID,
		Position:       req.Position,
		JobDescription: req.JobDescription,
		Difficulty:     string(difficulty),
		QuestionTypes:  req.QuestionTypes,
		ResumeText:     req.ResumeText,
		Status:         db.SessionInProgress,
	}
	id, err := s.database.CreateSession(r.Context(), session)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	created, err := s.database.GetSession(r.Context(), id)
	if err != nil || created == nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	jsonResponse(w, http.StatusCreated, sessionResponse(created))
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	sessions, err := s.database.ListSessionsByUser(r.Context(), userID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	out := make([]*types.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, sessionResponse(session))
	}
	jsonResponse(w, http.StatusOK, out)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.ownedSession(w, r)
	if !ok {
		return
	}
	jsonResponse(w, http.StatusOK, sessionResponse(session))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	session, ok := s.ownedSession(w, r)
	if !ok {
		return
	}
	if err := s.database.DeleteSession(r.Context(), session.ID); err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAddTurn records one completed question/answer pair. The turn number
// is derived from the stored history; recording the fifth turn completes the
// session.
func (s *Server) handleAddTurn(w http.ResponseWriter, r *http.Request) {
	session, ok := s.ownedSession(w, r)
	if !ok {
		return
	}

	var req types.AddTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	turns, err := s.database.ListTurns(r.Context(), session.ID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load turns")
		return
	}
	if len(turns) >= interview.MaxQuestions {
		errorResponse(w, http.StatusBadRequest, "interview already complete")
		return
	}

	turnNumber := len(turns) + 1
	id, err := s.database.AddTurn(r.Context(), session.ID, turnNumber, req.Question, req.Answer)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to record turn")
		return
	}
	if turnNumber == interview.MaxQuestions {
		if err := s.database.CompleteSession(r.Context(), session.ID); err != nil {
			errorResponse(w, http.StatusInternalServerError, "failed to complete session")
			return
		}
	}

	jsonResponse(w, http.StatusCreated, map[string]any{
		"id":          id,
		"turn_number": turnNumber,
	})
}

func (s *Server) handleListTurns(w http.ResponseWriter, r *http.Request) {
	session, ok := s.ownedSession(w, r)
	if !ok {
		return
	}

	turns, err := s.database.ListTurns(r.Context(), session.ID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load turns")
		return
	}

	out := make([]*types.TurnResponse, 0, len(turns))
	for _, t := range turns {
		out = append(out, &types.TurnResponse{
			ID:         t.ID,
			TurnNumber: t.TurnNumber,
			Question:   t.Question,
			Answer:     t.Answer,
			CreatedAt:  t.CreatedAt,
		})
	}
	jsonResponse(w, http.StatusOK, out)
}

// handleSaveFeedback stores the final feedback JSON for a session,
// replacing any earlier copy.
func (s *Server) handleSaveFeedback(w http.ResponseWriter, r *http.Request) {
	session, ok := s.ownedSession(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || !json.Valid(body) {
		errorResponse(w, http.StatusBadRequest, "body must be valid JSON")
		return
	}

	if err := s.database.SaveFeedback(r.Context(), session.ID, json.RawMessage(body)); err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to save feedback")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetFeedback(w http.ResponseWriter, r *http.Request) {
	session, ok := s.ownedSession(w, r)
	if !ok {
		return
	}

	fb, err := s.database.GetFeedback(r.Context(), session.ID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load feedback")
		return
	}
	if fb == nil {
		errorResponse(w, http.StatusNotFound, "no feedback recorded")
		return
	}

	jsonResponse(w, http.StatusOK, &types.SessionFeedbackResponse{
		SessionID: fb.SessionID,
		Feedback:  fb.Content,
		CreatedAt: fb.CreatedAt,
	})
}

// ownedSession loads the session named in the path and checks it belongs to
// the authenticated user. A session owned by someone else reads as not
// found, so session IDs cannot be probed.
func (s *Server) ownedSession(w http.ResponseWriter, r *http.Request) (*db.Session, bool) {
	userID, err := authenticatedUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid session id")
		return nil, false
	}

	session, err := s.database.GetSession(r.Context(), id)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to load session")
		return nil, false
	}
	if session == nil || session.UserID != userID {
		errorResponse(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	return session, true
}

func sessionResponse(s *db.Session) *types.SessionResponse {
	return &types.SessionResponse{
		ID:             s.ID,
		Position:       s.Position,
		JobDescription: s.JobDescription,
		Difficulty:     s.Difficulty,
		QuestionTypes:  s.QuestionTypes,
		Status:         s.Status,
		CreatedAt:      s.CreatedAt,
		CompletedAt:    s.CompletedAt,
	}
}

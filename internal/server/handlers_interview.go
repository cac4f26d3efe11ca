package server

import (
	"context"
	"io"
	"log"
	"net/http"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jialekhooo/interviewbot/internal/fetch"
	"github.com/jialekhooo/interviewbot/internal/ingestion"
	"github.com/jialekhooo/interviewbot/internal/interview"
)

const maxUploadBytes = 16 << 20

// handleInterviewStart begins a new interview. The multipart form carries
// the session context: an optional resume file (PDF or DOCX) or resume_text,
// an optional job_description or job_url, plus position, difficulty and
// question_types. The resume extraction and the job posting fetch run
// concurrently.
func (s *Server) handleInterviewStart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	ictx, err := s.interviewContext(r)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	outcome := s.controller.Start(r.Context(), *ictx)
	writeOutcome(w, outcome)
}

// handleInterviewAnswer records the candidate's answer and produces the next
// question, or the final feedback when the answer completes the interview.
// The form carries the full history as repeated "questions" and "answers"
// fields; "questions" must have exactly one more entry than "answers", the
// unanswered one being the question "answer" responds to.
func (s *Server) handleInterviewAnswer(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid form")
		return
	}

	ictx, err := s.interviewContext(r)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	answer := strings.TrimSpace(r.FormValue("answer"))
	if answer == "" {
		errorResponse(w, http.StatusBadRequest, "answer is required")
		return
	}

	questions, pastAnswers := historyFields(r)
	outcome, err := s.controller.Next(r.Context(), *ictx, questions, pastAnswers, answer)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	writeOutcome(w, outcome)
}

// handleInterviewFeedback produces the final feedback for a completed
// interview, given all five question/answer pairs.
func (s *Server) handleInterviewFeedback(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid form")
		return
	}

	ictx, err := s.interviewContext(r)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	questions, answers := historyFields(r)
	outcome, err := s.controller.FinalFeedback(r.Context(), *ictx, questions, answers)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	writeOutcome(w, outcome)
}

// interviewContext assembles the interview context from the parsed form,
// resolving the resume and the job description concurrently.
func (s *Server) interviewContext(r *http.Request) (*interview.Context, error) {
	difficulty, err := interview.ParseDifficulty(r.FormValue("difficulty"))
	if err != nil {
		return nil, err
	}
	qTypes, err := interview.ParseQuestionTypes(r.Form["question_types"])
	if err != nil {
		return nil, err
	}

	ictx := &interview.Context{
		Position:      strings.TrimSpace(r.FormValue("position")),
		Difficulty:    difficulty,
		QuestionTypes: qTypes,
	}

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		resume, err := resolveResume(r)
		if err != nil {
			return err
		}
		ictx.Resume = resume
		return nil
	})
	g.Go(func() error {
		jd, err := resolveJobDescription(ctx, r)
		if err != nil {
			return err
		}
		ictx.JobDescription = jd
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ictx, nil
}

// resolveResume returns the resume text, extracting it from an uploaded PDF
// or DOCX when a file was sent, otherwise taking resume_text verbatim.
func resolveResume(r *http.Request) (string, error) {
	if r.MultipartForm == nil || len(r.MultipartForm.File["resume"]) == 0 {
		return strings.TrimSpace(r.FormValue("resume_text")), nil
	}
	return extractUpload(r, "resume")
}

// resolveJobDescription prefers inline job_description text, then an
// uploaded jd_file document, then fetching the posting at job_url.
func resolveJobDescription(ctx context.Context, r *http.Request) (string, error) {
	if jd := strings.TrimSpace(r.FormValue("job_description")); jd != "" {
		return jd, nil
	}
	if r.MultipartForm != nil && len(r.MultipartForm.File["jd_file"]) > 0 {
		return extractUpload(r, "jd_file")
	}
	jobURL := strings.TrimSpace(r.FormValue("job_url"))
	if jobURL == "" {
		return "", nil
	}

	return fetch.JobDescription(ctx, jobURL)
}

// extractUpload reads the named multipart file and extracts its text.
func extractUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return "", &ingestion.ExtractionError{Filename: field, Message: "reading upload", Cause: err}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return "", &ingestion.ExtractionError{Filename: header.Filename, Message: "reading upload", Cause: err}
	}
	return ingestion.ExtractText(data, header.Header.Get("Content-Type"), header.Filename)
}

func historyFields(r *http.Request) (questions, answers []string) {
	questions = r.Form["questions"]
	answers = r.Form["answers"]

	// Legacy clients send the history as single delimiter-joined fields.
	if len(questions) == 1 && strings.Contains(questions[0], interview.WireDelimiter) {
		questions = strings.Split(questions[0], interview.WireDelimiter)
	}
	if len(answers) == 1 && strings.Contains(answers[0], interview.WireDelimiter) {
		answers = strings.Split(answers[0], interview.WireDelimiter)
	}
	return questions, answers
}

// parseForm accepts both multipart and url-encoded bodies.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadBytes)
	}
	return r.ParseForm()
}

// writeOutcome maps a generation outcome onto the response. A question or
// feedback is a 200; a generation failure is a 502 since the fault is the
// backend's, not the caller's.
func writeOutcome(w http.ResponseWriter, outcome *interview.Outcome) {
	switch {
	case outcome.Question != nil:
		jsonResponse(w, http.StatusOK, outcome.Question)
	case outcome.Feedback != nil:
		jsonResponse(w, http.StatusOK, outcome.Feedback)
	case outcome.Failure != nil:
		log.Printf("[INTERVIEW] generation failed: %s", outcome.Failure.Reason)
		errorResponse(w, http.StatusBadGateway, outcome.Failure.Reason)
	default:
		errorResponse(w, http.StatusInternalServerError, "empty generation outcome")
	}
}

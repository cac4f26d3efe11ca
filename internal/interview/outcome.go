package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jialekhooo/interviewbot/internal/llm"
)

// Question is a generated interview question plus its suggested answer.
type Question struct {
	Text         string `json:"question"`
	SampleAnswer string `json:"sample_answer,omitempty"`

	// Raw is the JSON payload the question was decoded from, kept so the
	// HTTP layer can return the backend's output verbatim.
	Raw string `json:"-"`
}

// Feedback is the consolidated end-of-interview assessment. SampleAnswers
// always has exactly MaxQuestions entries; a sample answer the backend failed
// to produce is an empty string, since partial feedback is still useful.
type Feedback struct {
	FinalFeedback       string
	Strengths           string
	AreasForImprovement string
	OverallAssessment   string
	SampleAnswers       []string
}

// feedbackWire mirrors the flat JSON contract the backend is instructed to
// produce (sample_answer_1 .. sample_answer_5 as individual keys).
type feedbackWire struct {
	FinalFeedback       string `json:"final_feedback"`
	Strengths           string `json:"strengths"`
	AreasForImprovement string `json:"areas_for_improvement"`
	OverallAssessment   string `json:"overall_assessment"`
}

// MarshalJSON emits the flat wire shape with numbered sample_answer keys.
func (f Feedback) MarshalJSON() ([]byte, error) {
	out := map[string]string{
		"final_feedback":        f.FinalFeedback,
		"strengths":             f.Strengths,
		"areas_for_improvement": f.AreasForImprovement,
		"overall_assessment":    f.OverallAssessment,
	}
	for i := 0; i < MaxQuestions; i++ {
		answer := ""
		if i < len(f.SampleAnswers) {
			answer = f.SampleAnswers[i]
		}
		out[fmt.Sprintf("sample_answer_%d", i+1)] = answer
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the flat wire shape, applying the empty-string
// fallback for missing sample answers.
func (f *Feedback) UnmarshalJSON(data []byte) error {
	var wire feedbackWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.FinalFeedback = wire.FinalFeedback
	f.Strengths = wire.Strengths
	f.AreasForImprovement = wire.AreasForImprovement
	f.OverallAssessment = wire.OverallAssessment
	f.SampleAnswers = make([]string, MaxQuestions)
	for i := 0; i < MaxQuestions; i++ {
		if msg, ok := raw[fmt.Sprintf("sample_answer_%d", i+1)]; ok {
			var answer string
			if err := json.Unmarshal(msg, &answer); err != nil {
				return fmt.Errorf("sample_answer_%d is not a string: %w", i+1, err)
			}
			f.SampleAnswers[i] = answer
		}
	}
	return nil
}

// GenerationFailure records why the generation backend could not produce a
// usable result (errored, timed out, or returned unparseable output).
type GenerationFailure struct {
	Reason string `json:"reason"`
}

// Outcome is the normalized result of one generation step. Exactly one of the
// three fields is set.
type Outcome struct {
	Question *Question
	Feedback *Feedback
	Failure  *GenerationFailure
}

func questionOutcome(q *Question) *Outcome  { return &Outcome{Question: q} }
func feedbackOutcome(f *Feedback) *Outcome  { return &Outcome{Feedback: f} }
func failureOutcome(reason string) *Outcome { return &Outcome{Failure: &GenerationFailure{Reason: reason}} }

// interpretQuestion normalizes the backend's raw output on the question path.
// A missing or empty "question" key is a failure, never an empty question
// shown to the candidate.
func interpretQuestion(raw string) *Outcome {
	payload, ok := recoverJSON(raw)
	if !ok {
		return failureOutcome("unparseable output")
	}

	if err := validateQuestionPayload(payload); err != nil {
		return failureOutcome(err.Error())
	}

	var q Question
	if err := json.Unmarshal([]byte(payload), &q); err != nil {
		return failureOutcome(fmt.Sprintf("malformed question payload: %v", err))
	}
	q.Raw = payload
	return questionOutcome(&q)
}

// interpretFeedback normalizes the backend's raw output on the feedback path.
// Only final_feedback is required; missing sample answers degrade to "".
func interpretFeedback(raw string) *Outcome {
	payload, ok := recoverJSON(raw)
	if !ok {
		return failureOutcome("unparseable output")
	}

	if err := validateFeedbackPayload(payload); err != nil {
		return failureOutcome(err.Error())
	}

	var f Feedback
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		return failureOutcome(fmt.Sprintf("malformed feedback payload: %v", err))
	}
	return feedbackOutcome(&f)
}

// interpretBackendError maps a backend call error to a failure outcome. A
// deadline hit is surfaced as "timeout" so callers can tell it apart from a
// hard backend error.
func interpretBackendError(err error) *Outcome {
	if errors.Is(err, context.DeadlineExceeded) {
		return failureOutcome("timeout")
	}
	return failureOutcome(fmt.Sprintf("generation backend error: %v", err))
}

// recoverJSON returns a parseable JSON object from the backend's raw text.
// It tries the text as-is (after markdown fence cleanup), then falls back to
// the substring between the first '{' and the last '}'. Returns false when
// no JSON object can be recovered.
func recoverJSON(raw string) (string, bool) {
	cleaned := llm.CleanJSONBlock(raw)
	if json.Valid([]byte(cleaned)) && strings.HasPrefix(strings.TrimSpace(cleaned), "{") {
		return cleaned, true
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return "", false
	}
	candidate := cleaned[start : end+1]
	if !json.Valid([]byte(candidate)) {
		return "", false
	}
	return candidate, true
}

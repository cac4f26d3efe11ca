package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretQuestion_CleanJSON(t *testing.T) {
	outcome := interpretQuestion(`{"question": "Why Go?", "sample_answer": "Because of goroutines."}`)

	require.NotNil(t, outcome.Question)
	assert.Equal(t, "Why Go?", outcome.Question.Text)
	assert.Equal(t, "Because of goroutines.", outcome.Question.SampleAnswer)
}

func TestInterpretQuestion_FencedJSON(t *testing.T) {
	raw := "```json\n{\"question\": \"Why Go?\", \"sample_answer\": \"Speed.\"}\n```"
	outcome := interpretQuestion(raw)

	require.NotNil(t, outcome.Question)
	assert.Equal(t, "Why Go?", outcome.Question.Text)
}

func TestInterpretQuestion_JSONBuriedInProse(t *testing.T) {
	raw := `Sure! Here is your question:
{"question": "Describe a conflict you resolved.", "sample_answer": "In my last team..."}
Hope that helps!`
	outcome := interpretQuestion(raw)

	require.NotNil(t, outcome.Question)
	assert.Equal(t, "Describe a conflict you resolved.", outcome.Question.Text)
}

func TestInterpretQuestion_NotJSONAtAll(t *testing.T) {
	outcome := interpretQuestion("not json at all")

	require.NotNil(t, outcome.Failure)
	assert.Nil(t, outcome.Question)
	assert.NotEmpty(t, outcome.Failure.Reason)
}

func TestInterpretQuestion_MissingQuestionKey(t *testing.T) {
	outcome := interpretQuestion(`{"sample_answer": "An answer with no question."}`)
	require.NotNil(t, outcome.Failure)
}

func TestInterpretQuestion_EmptyQuestion(t *testing.T) {
	outcome := interpretQuestion(`{"question": ""}`)
	require.NotNil(t, outcome.Failure)
}

func TestInterpretQuestion_MissingSampleAnswer(t *testing.T) {
	// sample_answer is optional on the question path.
	outcome := interpretQuestion(`{"question": "Why Go?"}`)

	require.NotNil(t, outcome.Question)
	assert.Equal(t, "", outcome.Question.SampleAnswer)
}

func TestInterpretFeedback_Complete(t *testing.T) {
	payload := map[string]string{
		"final_feedback":        "Strong candidate.",
		"strengths":             "Communication.",
		"areas_for_improvement": "Algorithms.",
		"overall_assessment":    "Hire.",
	}
	for i := 1; i <= MaxQuestions; i++ {
		payload[fmt.Sprintf("sample_answer_%d", i)] = fmt.Sprintf("Sample %d", i)
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	outcome := interpretFeedback(string(raw))
	require.NotNil(t, outcome.Feedback)
	fb := outcome.Feedback
	assert.Equal(t, "Strong candidate.", fb.FinalFeedback)
	require.Len(t, fb.SampleAnswers, MaxQuestions)
	assert.Equal(t, "Sample 3", fb.SampleAnswers[2])
}

func TestInterpretFeedback_MissingSampleAnswerFallsBackToEmpty(t *testing.T) {
	raw := `{
		"final_feedback": "Good.",
		"sample_answer_1": "one",
		"sample_answer_2": "two",
		"sample_answer_4": "four",
		"sample_answer_5": "five"
	}`
	outcome := interpretFeedback(raw)

	require.NotNil(t, outcome.Feedback)
	fb := outcome.Feedback
	require.Len(t, fb.SampleAnswers, MaxQuestions)
	assert.Equal(t, "one", fb.SampleAnswers[0])
	assert.Equal(t, "", fb.SampleAnswers[2])
	assert.Equal(t, "five", fb.SampleAnswers[4])
}

func TestInterpretFeedback_MissingFinalFeedback(t *testing.T) {
	outcome := interpretFeedback(`{"strengths": "Many.", "sample_answer_1": "one"}`)
	require.NotNil(t, outcome.Failure)
	assert.Nil(t, outcome.Feedback)
}

func TestInterpretFeedback_NotJSON(t *testing.T) {
	outcome := interpretFeedback("the model rambled instead of answering")
	require.NotNil(t, outcome.Failure)
}

func TestFeedback_MarshalEmitsAllSampleAnswerKeys(t *testing.T) {
	fb := Feedback{
		FinalFeedback: "Fine.",
		SampleAnswers: []string{"one", "two"},
	}
	data, err := json.Marshal(fb)
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Fine.", out["final_feedback"])
	assert.Equal(t, "two", out["sample_answer_2"])
	// Unset answers are emitted as empty strings, never omitted.
	assert.Equal(t, "", out["sample_answer_5"])
}

func TestFeedback_RoundTrip(t *testing.T) {
	fb := Feedback{
		FinalFeedback:       "Round trip.",
		Strengths:           "S",
		AreasForImprovement: "A",
		OverallAssessment:   "O",
		SampleAnswers:       []string{"1", "2", "3", "4", "5"},
	}
	data, err := json.Marshal(fb)
	require.NoError(t, err)

	var back Feedback
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, fb, back)
}

func TestInterpretBackendError(t *testing.T) {
	outcome := interpretBackendError(context.DeadlineExceeded)
	require.NotNil(t, outcome.Failure)
	assert.Equal(t, "timeout", outcome.Failure.Reason)

	outcome = interpretBackendError(fmt.Errorf("calling backend: %w", context.DeadlineExceeded))
	assert.Equal(t, "timeout", outcome.Failure.Reason)

	outcome = interpretBackendError(errors.New("quota exhausted"))
	require.NotNil(t, outcome.Failure)
	assert.Contains(t, outcome.Failure.Reason, "quota exhausted")
}

func TestRecoverJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
		ok   bool
	}{
		{"clean object", `{"a": 1}`, `{"a": 1}`, true},
		{"leading prose", `text {"a": 1}`, `{"a": 1}`, true},
		{"trailing prose", `{"a": 1} bye`, `{"a": 1}`, true},
		{"nested braces", `x {"a": {"b": 2}} y`, `{"a": {"b": 2}}`, true},
		{"no braces", "nothing here", "", false},
		{"broken json", `{"a": `, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := recoverJSON(tt.raw)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

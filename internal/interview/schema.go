package interview

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// JSON Schemas for the two backend output contracts. Only genuinely required
// keys are enforced here; optional keys (sample_answer on the question path,
// individual sample_answer_N entries on the feedback path) degrade gracefully
// in the interpreter instead.
const (
	questionSchema = `{
		"type": "object",
		"required": ["question"],
		"properties": {
			"question": {"type": "string", "minLength": 1},
			"sample_answer": {"type": "string"}
		}
	}`

	feedbackSchema = `{
		"type": "object",
		"required": ["final_feedback"],
		"properties": {
			"final_feedback": {"type": "string", "minLength": 1},
			"strengths": {"type": "string"},
			"areas_for_improvement": {"type": "string"},
			"overall_assessment": {"type": "string"}
		}
	}`
)

func validateQuestionPayload(payload string) error {
	return validatePayload(questionSchema, payload, "question")
}

func validateFeedbackPayload(payload string) error {
	return validatePayload(feedbackSchema, payload, "feedback")
}

func validatePayload(schema, payload, kind string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(payload),
	)
	if err != nil {
		return fmt.Errorf("malformed %s payload: %v", kind, err)
	}
	if !result.Valid() {
		errs := result.Errors()
		if len(errs) > 0 {
			return fmt.Errorf("invalid %s payload: %s", kind, errs[0].String())
		}
		return fmt.Errorf("invalid %s payload", kind)
	}
	return nil
}

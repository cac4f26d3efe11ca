package interview

import (
	"context"
	"strings"
	"time"
)

// Generator is the generation backend as the controller sees it: prompt text
// in, raw text out, or an error. Implementations live in internal/llm; tests
// supply fakes.
type Generator interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

// DefaultTemperature is the sampling temperature used for question and
// feedback generation.
const DefaultTemperature float32 = 0.6

// DefaultGenerateTimeout bounds a single backend call. A timeout surfaces as
// a failure outcome with reason "timeout", never as an unbounded hang.
const DefaultGenerateTimeout = 90 * time.Second

// Controller drives the interview turn-taking state machine. It holds no
// session state of its own: Start and Next are pure functions of their inputs
// plus one backend call, so independent sessions may run concurrently without
// coordination.
type Controller struct {
	backend     Generator
	temperature float32
	timeout     time.Duration
}

// NewController creates a controller over the given generation backend.
func NewController(backend Generator) *Controller {
	return &Controller{
		backend:     backend,
		temperature: DefaultTemperature,
		timeout:     DefaultGenerateTimeout,
	}
}

// WithTimeout returns a copy of the controller using the given per-call
// backend timeout.
func (c *Controller) WithTimeout(d time.Duration) *Controller {
	copied := *c
	copied.timeout = d
	return &copied
}

// Start begins an interview: it asks the backend for the first question with
// an empty history. An empty job description or position is valid input
// meaning "unspecified"; Start never terminates immediately.
func (c *Controller) Start(ctx context.Context, ictx Context) *Outcome {
	return c.askQuestion(ctx, ictx, nil)
}

// Next submits the candidate's answer to the most recent outstanding
// question. The caller resubmits its full history each turn: questions holds
// every question asked so far including the outstanding one, pastAnswers the
// answers already given, and answer the new submission, so
// len(questions) == len(pastAnswers)+1. The controller trusts the caller to
// supply the matching question text but validates counts and emptiness
// defensively, failing with *ValidationError rather than truncating.
//
// While fewer than MaxQuestions answers have been given the backend is asked
// for another question; the submission of the final answer triggers the one
// and only feedback generation. A Feedback outcome is terminal: the
// surrounding service must not call Next again for this session.
func (c *Controller) Next(ctx context.Context, ictx Context, questions, pastAnswers []string, answer string) (*Outcome, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, &ValidationError{Field: "answer", Message: "answer is empty"}
	}
	if len(questions) != len(pastAnswers)+1 {
		return nil, &ValidationError{
			Field:   "history",
			Message: "expected exactly one outstanding question beyond the answered history",
		}
	}

	allAnswers := make([]string, 0, len(pastAnswers)+1)
	allAnswers = append(allAnswers, pastAnswers...)
	allAnswers = append(allAnswers, answer)

	history, err := HistoryFromLists(questions, allAnswers)
	if err != nil {
		return nil, err
	}

	if len(history) < MaxQuestions {
		return c.askQuestion(ctx, ictx, history), nil
	}
	if len(history) > MaxQuestions {
		return nil, &ValidationError{Field: "history", Message: "interview already complete"}
	}
	return c.produceFeedback(ctx, ictx, history), nil
}

// FinalFeedback produces the consolidated feedback for a complete history of
// exactly MaxQuestions answered turns. It backs the dedicated feedback
// endpoint for callers that collected the final answer themselves.
func (c *Controller) FinalFeedback(ctx context.Context, ictx Context, questions, answers []string) (*Outcome, error) {
	history, err := HistoryFromLists(questions, answers)
	if err != nil {
		return nil, err
	}
	if len(history) != MaxQuestions {
		return nil, &ValidationError{
			Field:   "history",
			Message: "feedback requires a complete interview history",
		}
	}
	return c.produceFeedback(ctx, ictx, history), nil
}

func (c *Controller) askQuestion(ctx context.Context, ictx Context, history []Turn) *Outcome {
	prompt := renderQuestionPrompt(ictx, history)
	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return interpretBackendError(err)
	}
	return interpretQuestion(raw)
}

func (c *Controller) produceFeedback(ctx context.Context, ictx Context, history []Turn) *Outcome {
	prompt := renderFeedbackPrompt(ictx, history)
	raw, err := c.generate(ctx, prompt)
	if err != nil {
		return interpretBackendError(err)
	}
	return interpretFeedback(raw)
}

// generate performs the single backend call for one logical step, bounded by
// the controller's timeout. Retries, if wanted, belong to the HTTP layer.
func (c *Controller) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.backend.Generate(ctx, prompt, c.temperature)
}

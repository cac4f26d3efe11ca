// Package interview implements the mock-interview conversation core: the
// turn-taking controller, prompt assembly, and interpretation of the
// generation backend's output.
package interview

import (
	"fmt"
	"strings"
)

// MaxQuestions is the fixed number of questions per interview. The n-th
// question is asked while len(history) == n-1; submitting the answer to the
// final question triggers feedback instead of another question.
const MaxQuestions = 5

// QuestionType categorizes the interview questions a candidate requests.
type QuestionType string

// Supported question types.
const (
	QuestionBehavioral   QuestionType = "behavioral"
	QuestionTechnical    QuestionType = "technical"
	QuestionSystemDesign QuestionType = "system_design"
	QuestionAlgorithm    QuestionType = "algorithm"
	QuestionCultureFit   QuestionType = "culture_fit"
	QuestionCaseStudy    QuestionType = "case_study"
)

var questionTypes = map[QuestionType]bool{
	QuestionBehavioral:   true,
	QuestionTechnical:    true,
	QuestionSystemDesign: true,
	QuestionAlgorithm:    true,
	QuestionCultureFit:   true,
	QuestionCaseStudy:    true,
}

// ParseQuestionType converts a string into a QuestionType.
func ParseQuestionType(s string) (QuestionType, error) {
	qt := QuestionType(strings.ToLower(strings.TrimSpace(s)))
	if !questionTypes[qt] {
		return "", &ValidationError{Field: "question_types", Message: fmt.Sprintf("unknown question type: %q", s)}
	}
	return qt, nil
}

// ParseQuestionTypes converts a list of strings into question types, preserving
// order and dropping duplicates. An empty list falls back to behavioral and
// technical questions.
func ParseQuestionTypes(values []string) ([]QuestionType, error) {
	seen := make(map[QuestionType]bool)
	parsed := make([]QuestionType, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		qt, err := ParseQuestionType(v)
		if err != nil {
			return nil, err
		}
		if !seen[qt] {
			seen[qt] = true
			parsed = append(parsed, qt)
		}
	}
	if len(parsed) == 0 {
		parsed = []QuestionType{QuestionBehavioral, QuestionTechnical}
	}
	return parsed, nil
}

// Difficulty is the requested difficulty level for generated questions.
type Difficulty string

// Supported difficulty levels.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty converts a string into a Difficulty. An empty string
// defaults to medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", &ValidationError{Field: "difficulty", Message: fmt.Sprintf("unknown difficulty: %q", s)}
	}
}

// Context holds the fixed inputs for one interview session. It is built once
// from the inbound request and never mutated afterwards. JobDescription and
// Position may be empty, meaning "unspecified".
type Context struct {
	Resume         string
	JobDescription string
	Position       string
	Difficulty     Difficulty
	QuestionTypes  []QuestionType
}

// Turn is one completed question/answer pair.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ValidationError indicates malformed or inconsistent caller-supplied input.
// It is a client error, distinct from generation backend failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation error: %s", e.Message)
	}
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

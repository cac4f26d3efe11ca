package interview

import (
	"fmt"
	"strings"
)

// WireDelimiter separates question and answer entries in the joined wire
// encoding. Kept for clients of the original form API; new clients should
// send repeated form fields instead, which cannot collide with answer text.
const WireDelimiter = "||,"

// HistoryFromLists pairs up parallel question and answer lists into turns.
// The lists must be the same length and every entry must be non-empty;
// anything else is a validation error, never silently truncated or padded.
func HistoryFromLists(questions, answers []string) ([]Turn, error) {
	if len(questions) != len(answers) {
		return nil, &ValidationError{
			Field:   "history",
			Message: fmt.Sprintf("mismatched history: %d questions but %d answers", len(questions), len(answers)),
		}
	}
	turns := make([]Turn, 0, len(questions))
	for i := range questions {
		q := strings.TrimSpace(questions[i])
		a := strings.TrimSpace(answers[i])
		if q == "" {
			return nil, &ValidationError{Field: "past_questions", Message: fmt.Sprintf("question %d is empty", i+1)}
		}
		if a == "" {
			return nil, &ValidationError{Field: "past_answers", Message: fmt.Sprintf("answer %d is empty", i+1)}
		}
		turns = append(turns, Turn{Question: q, Answer: a})
	}
	return turns, nil
}

// HistoryFromJoined decodes the delimiter-joined wire encoding. Splitting is
// done once at this boundary so the rest of the package only ever sees
// structured turns. Empty joined strings decode to an empty history.
func HistoryFromJoined(joinedQuestions, joinedAnswers string) ([]Turn, error) {
	return HistoryFromLists(splitJoined(joinedQuestions), splitJoined(joinedAnswers))
}

func splitJoined(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return strings.Split(s, WireDelimiter)
}

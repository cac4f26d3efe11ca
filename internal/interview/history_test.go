package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryFromLists(t *testing.T) {
	turns, err := HistoryFromLists(
		[]string{"Q1", " Q2 "},
		[]string{"A1", "A2"},
	)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, Turn{Question: "Q2", Answer: "A2"}, turns[1])
}

func TestHistoryFromLists_Mismatch(t *testing.T) {
	_, err := HistoryFromLists([]string{"Q1", "Q2"}, []string{"A1"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "history", vErr.Field)
}

func TestHistoryFromLists_EmptyEntries(t *testing.T) {
	_, err := HistoryFromLists([]string{"  "}, []string{"A1"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "past_questions", vErr.Field)

	_, err = HistoryFromLists([]string{"Q1"}, []string{""})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "past_answers", vErr.Field)
}

func TestHistoryFromLists_Empty(t *testing.T) {
	turns, err := HistoryFromLists(nil, nil)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestHistoryFromJoined(t *testing.T) {
	turns, err := HistoryFromJoined("Q1||,Q2||,Q3", "A1||,A2||,A3")
	require.NoError(t, err)
	require.Len(t, turns, 3)
	assert.Equal(t, "Q3", turns[2].Question)
	assert.Equal(t, "A2", turns[1].Answer)
}

func TestHistoryFromJoined_EmptyStrings(t *testing.T) {
	turns, err := HistoryFromJoined("", "")
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestHistoryFromJoined_Mismatch(t *testing.T) {
	_, err := HistoryFromJoined("Q1||,Q2", "A1")
	assert.Error(t, err)
}

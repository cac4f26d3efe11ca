package interview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionType(t *testing.T) {
	qt, err := ParseQuestionType("behavioral")
	require.NoError(t, err)
	assert.Equal(t, QuestionBehavioral, qt)

	qt, err = ParseQuestionType("  System_Design ")
	require.NoError(t, err)
	assert.Equal(t, QuestionSystemDesign, qt)

	_, err = ParseQuestionType("astrology")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "question_types", vErr.Field)
}

func TestParseQuestionTypes_DefaultWhenEmpty(t *testing.T) {
	got, err := ParseQuestionTypes(nil)
	require.NoError(t, err)
	assert.Equal(t, []QuestionType{QuestionBehavioral, QuestionTechnical}, got)

	got, err = ParseQuestionTypes([]string{"", "  "})
	require.NoError(t, err)
	assert.Equal(t, []QuestionType{QuestionBehavioral, QuestionTechnical}, got)
}

func TestParseQuestionTypes_DedupePreservesOrder(t *testing.T) {
	got, err := ParseQuestionTypes([]string{"technical", "behavioral", "technical"})
	require.NoError(t, err)
	assert.Equal(t, []QuestionType{QuestionTechnical, QuestionBehavioral}, got)
}

func TestParseDifficulty(t *testing.T) {
	d, err := ParseDifficulty("")
	require.NoError(t, err)
	assert.Equal(t, DifficultyMedium, d)

	d, err = ParseDifficulty("HARD")
	require.NoError(t, err)
	assert.Equal(t, DifficultyHard, d)

	_, err = ParseDifficulty("nightmare")
	assert.Error(t, err)
}

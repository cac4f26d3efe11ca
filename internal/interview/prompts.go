package interview

import (
	"fmt"
	"strings"
)

// Placeholder sentinels keep the prompt shape stable when optional context
// fields are empty. An empty field is never silently omitted.
const (
	noResumeSentinel       = "— No resume provided —"
	noJobDescSentinel      = "— No job description provided —"
	noPositionSentinel     = "— Not specified —"
	noConversationSentinel = "— No previous conversation —"
)

// renderQuestionPrompt builds the prompt that asks the backend for the next
// interview question. It is pure: identical inputs produce identical text.
func renderQuestionPrompt(ictx Context, history []Turn) string {
	var sb strings.Builder

	writePreamble(&sb, ictx)
	sb.WriteString(fmt.Sprintf("Difficulty: %s\n\n", ictx.Difficulty))

	sb.WriteString("Past Conversations:\n\n")
	if len(history) == 0 {
		sb.WriteString(noConversationSentinel)
		sb.WriteString("\n")
	} else {
		writeHistory(&sb, history)
	}
	sb.WriteString("\n")

	sb.WriteString("Instructions:\n")
	sb.WriteString(fmt.Sprintf("1. Generate ONE %s interview question likely to be asked.\n", joinQuestionTypes(ictx.QuestionTypes)))
	sb.WriteString("2. If no past conversations are provided, ask an introductory question about the candidate instead of a domain question.\n")
	sb.WriteString("3. Provide a sample answer for the question based on the candidate's experience.\n")
	sb.WriteString("4. Do not repeat a question that was already asked in the past conversations.\n")
	sb.WriteString("5. Structure the output as a single JSON object with exactly the keys \"question\" and \"sample_answer\".\n")
	sb.WriteString("6. No extra text should be included in the output, only JSON.\n")

	return sb.String()
}

// renderFeedbackPrompt builds the prompt that asks the backend for the final
// consolidated feedback over a complete interview history.
func renderFeedbackPrompt(ictx Context, history []Turn) string {
	var sb strings.Builder

	writePreamble(&sb, ictx)

	sb.WriteString("Past Conversations:\n\n")
	if len(history) == 0 {
		sb.WriteString(noConversationSentinel)
		sb.WriteString("\n")
	} else {
		writeHistory(&sb, history)
	}
	sb.WriteString("\n")

	sb.WriteString("Instructions:\n")
	sb.WriteString("1. Based on the candidate's performance throughout the interview, provide final feedback on interview performance.\n")
	sb.WriteString("2. Assess the candidate's strengths and areas for improvement on interview performance.\n")
	sb.WriteString("3. Provide a summary of the candidate's suitability for the role.\n")
	sb.WriteString(fmt.Sprintf("4. For EACH of the %d interview questions asked in the past conversations:\n", MaxQuestions))
	sb.WriteString("    - CAREFULLY READ the actual question that was asked\n")
	sb.WriteString("    - Provide a detailed sample answer (minimum 3-4 sentences) that DIRECTLY ANSWERS that specific question\n")
	sb.WriteString("    - Use examples from the candidate's resume and experience that are RELEVANT to the question\n")
	sb.WriteString("    - Each sample answer MUST follow the STAR method (Situation, Task, Action, Result)\n")
	sb.WriteString("    - DO NOT reuse the same experience for multiple questions; each answer must share its question's topic and keywords\n")
	sb.WriteString("5. Structure the output as a single JSON object with the keys \"final_feedback\", \"strengths\", \"areas_for_improvement\", \"overall_assessment\"")
	for i := 1; i <= MaxQuestions; i++ {
		sb.WriteString(fmt.Sprintf(", \"sample_answer_%d\"", i))
	}
	sb.WriteString(".\n")
	sb.WriteString(fmt.Sprintf("6. You MUST provide all %d sample_answer fields, one per question, in order.\n", MaxQuestions))
	sb.WriteString("7. No extra text should be included in the output, only JSON.\n")

	return sb.String()
}

func writePreamble(sb *strings.Builder, ictx Context) {
	sb.WriteString("You are a professional interviewer. The candidate has the following resume:\n\n")
	sb.WriteString(orSentinel(ictx.Resume, noResumeSentinel))
	sb.WriteString("\n\nThe job description is:\n\n")
	sb.WriteString(orSentinel(ictx.JobDescription, noJobDescSentinel))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Position: %s\n", orSentinel(ictx.Position, noPositionSentinel)))
}

func writeHistory(sb *strings.Builder, history []Turn) {
	for _, turn := range history {
		sb.WriteString(fmt.Sprintf("Question: %s\nAnswer: %s\n", turn.Question, turn.Answer))
	}
}

func orSentinel(value, sentinel string) string {
	if strings.TrimSpace(value) == "" {
		return sentinel
	}
	return value
}

func joinQuestionTypes(types []QuestionType) string {
	parts := make([]string, len(types))
	for i, qt := range types {
		parts[i] = string(qt)
	}
	return strings.Join(parts, ", ")
}

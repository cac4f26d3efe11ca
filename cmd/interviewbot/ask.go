package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jialekhooo/interviewbot/internal/fetch"
	"github.com/jialekhooo/interviewbot/internal/ingestion"
	"github.com/jialekhooo/interviewbot/internal/interview"
	"github.com/jialekhooo/interviewbot/internal/llm"
)

var (
	askResume     string
	askJobURL     string
	askPosition   string
	askDifficulty string
	askTypes      []string
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Generate one interview question from the command line",
	Long:  `Generate the opening interview question for a resume and an optional job posting, without starting the server. Useful for prompt iteration.`,
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askResume, "resume", "", "Path to a PDF or DOCX resume")
	askCmd.Flags().StringVar(&askJobURL, "job-url", "", "URL of the job posting")
	askCmd.Flags().StringVar(&askPosition, "position", "", "Position being interviewed for")
	askCmd.Flags().StringVar(&askDifficulty, "difficulty", "", "easy, medium or hard")
	askCmd.Flags().StringSliceVar(&askTypes, "types", nil, "Question types, e.g. behavioral,technical")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	ctx := context.Background()

	difficulty, err := interview.ParseDifficulty(askDifficulty)
	if err != nil {
		return err
	}
	qTypes, err := interview.ParseQuestionTypes(askTypes)
	if err != nil {
		return err
	}
	ictx := interview.Context{
		Position:      askPosition,
		Difficulty:    difficulty,
		QuestionTypes: qTypes,
	}

	if askResume != "" {
		data, err := os.ReadFile(askResume)
		if err != nil {
			return fmt.Errorf("reading resume: %w", err)
		}
		text, err := ingestion.ExtractText(data, contentTypeFor(askResume), filepath.Base(askResume))
		if err != nil {
			return err
		}
		ictx.Resume = text
	}

	if askJobURL != "" {
		jd, err := fetch.JobDescription(ctx, askJobURL)
		if err != nil {
			return err
		}
		ictx.JobDescription = jd
	}

	backend, err := llm.NewClient(ctx, llm.DefaultConfig().WithModel(os.Getenv("GEMINI_MODEL")), apiKey)
	if err != nil {
		return err
	}
	defer backend.Close()

	outcome := interview.NewController(backend).Start(ctx, ictx)
	if outcome.Failure != nil {
		return fmt.Errorf("generation failed: %s", outcome.Failure.Reason)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(outcome.Question)
}

func contentTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return ingestion.TypePDF
	case ".docx":
		return ingestion.TypeDOCX
	default:
		return ""
	}
}

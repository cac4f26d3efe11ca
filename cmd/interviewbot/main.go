// Package main provides the entry point for the interview bot HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interviewbot",
	Short: "AI mock interview HTTP API server",
	Long:  "Interviewbot runs multi-turn mock interviews tailored to a candidate's resume and a target job posting, with consolidated feedback after the final question, via REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

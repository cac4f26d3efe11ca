package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jialekhooo/interviewbot/internal/config"
	"github.com/jialekhooo/interviewbot/internal/server"
)

var (
	servePort   int
	serveConfig string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for running mock interviews.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfig, "config", "", "Path to a JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := &config.Config{}
	if serveConfig != "" {
		loaded, err := config.LoadConfig(serveConfig)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	merged := cfg.MergeWithEnv()
	if merged.Port == 0 {
		merged.Port = servePort
	}
	if err := merged.Validate(); err != nil {
		return err
	}
	if merged.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	srv, err := server.New(context.Background(), &merged)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/assessrec/internal/config"
	logpkg "github.com/kailas-cloud/assessrec/internal/logger"
	"github.com/kailas-cloud/assessrec/internal/transport/shell"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask for recommendations interactively",
	Long: "Prompts for a job description, query or URL and prints the extracted requirements " +
		"with the recommended assessments. Type exit or press Ctrl-C to quit.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		text, _ := cmd.Flags().GetString("text")
		maxResults, _ := cmd.Flags().GetInt("max-results")
		return ask(cmd.Context(), text, maxResults)
	},
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().StringP("text", "t", "", "run a single query and exit")
	askCmd.Flags().IntP("max-results", "n", 0, "number of results (default from config)")
}

func ask(ctx context.Context, text string, maxResults int) error {
	if ctx == nil {
		ctx = context.Background()
	}
	env := currentEnv()

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Interactive output goes to stdout; keep the logger quiet unless asked.
	level := cfg.Logging.Level
	if level == "" || level == "debug" || level == "info" {
		level = "warn"
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to build application", zap.Error(err))
		return err
	}
	defer a.Close()

	if maxResults <= 0 {
		maxResults = cfg.Recommend.DefaultMaxResults
	}

	sh := shell.New(a.recommend, os.Stdout, shell.Config{
		MaxResults:        maxResults,
		MaxResultsCeiling: cfg.Recommend.MaxResultsCeiling,
		Logger:            logger,
	})

	if text != "" {
		return sh.Ask(ctx, text)
	}
	return sh.Run(ctx)
}

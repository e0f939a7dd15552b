// Package shell is the interactive terminal front end of the recommender.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"go.uber.org/zap"

	"github.com/kailas-cloud/assessrec/internal/domain/recommend/request"
	recommenduc "github.com/kailas-cloud/assessrec/internal/usecase/recommend"
)

const (
	promptLabel = "Job description, query or URL (exit to quit)"
	exitCommand = "exit"
)

// Recommender runs the recommendation pipeline.
type Recommender interface {
	Recommend(ctx context.Context, req request.Request) (recommenduc.Outcome, error)
}

// Prompter reads one line of user input.
type Prompter interface {
	Run() (string, error)
}

// Config holds shell settings.
type Config struct {
	MaxResults        int
	MaxResultsCeiling int
	Prompter          Prompter
	Logger            *zap.Logger
}

// Shell reads queries in a loop and prints recommendations.
type Shell struct {
	svc        Recommender
	out        io.Writer
	prompter   Prompter
	maxResults int
	ceiling    int
	logger     *zap.Logger
}

// New creates a Shell writing to out. A nil Prompter means a promptui text prompt.
func New(svc Recommender, out io.Writer, cfg Config) *Shell {
	if cfg.Prompter == nil {
		cfg.Prompter = &promptui.Prompt{Label: promptLabel}
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = request.DefaultMaxResults
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Shell{
		svc:        svc,
		out:        out,
		prompter:   cfg.Prompter,
		maxResults: cfg.MaxResults,
		ceiling:    cfg.MaxResultsCeiling,
		logger:     cfg.Logger,
	}
}

// Run loops until the user types exit, presses Ctrl-C/Ctrl-D or ctx is done.
// Pipeline errors are printed and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		line, err := s.prompter.Run()
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read prompt: %w", err)
		}

		text := strings.TrimSpace(line)
		if text == "" {
			continue
		}
		if strings.EqualFold(text, exitCommand) {
			return nil
		}

		if err := s.Ask(ctx, text); err != nil {
			s.logger.Warn("query failed", zap.Error(err))
			fmt.Fprintf(s.out, "Error: %s\n\n", err)
		}
	}
}

// Ask runs a single query and renders the outcome.
func (s *Shell) Ask(ctx context.Context, text string) error {
	n := s.maxResults
	req, err := request.New(text, &n, s.ceiling)
	if err != nil {
		return err
	}

	out, err := s.svc.Recommend(ctx, req)
	if err != nil {
		return err
	}

	if err := Render(s.out, out); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	_, err = io.WriteString(s.out, "\n")
	return err
}

// Package extract turns free text into structured constraints with a language model.
package extract

import (
	"context"
	_ "embed"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assessrec/internal/domain/constraint"
	"github.com/kailas-cloud/assessrec/internal/logger"
	"github.com/kailas-cloud/assessrec/internal/metrics"
)

//go:embed prompt.md
var promptTemplate string

const (
	textPlaceholder     = "{{TEXT}}"
	defaultTimeout      = 30 * time.Second
	defaultMaxLogLength = 200
)

// Generator sends a prompt to a language model and returns its text reply.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Config holds extractor settings.
type Config struct {
	Timeout      time.Duration
	MaxLogLength int
	Logger       *zap.Logger
}

// Extractor asks the model for constraints and degrades to empty ones on any failure.
type Extractor struct {
	generator Generator
	timeout   time.Duration
	maxLogLen int
	logger    *zap.Logger
}

// New creates an extractor.
func New(generator Generator, cfg Config) *Extractor {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MaxLogLength <= 0 {
		cfg.MaxLogLength = defaultMaxLogLength
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Extractor{
		generator: generator,
		timeout:   cfg.Timeout,
		maxLogLen: cfg.MaxLogLength,
		logger:    cfg.Logger,
	}
}

// Extract returns the constraints found in text. It never fails: a model
// error, an empty reply or unparseable JSON yields constraint.Empty().
func (e *Extractor) Extract(ctx context.Context, text string) constraint.Constraints {
	log := logger.FromContextOr(ctx, e.logger)
	prompt := BuildPrompt(text)

	log.Debug("constraint extraction request",
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, e.maxLogLen)),
	)

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	start := time.Now()
	raw, err := e.generator.GenerateContent(callCtx, prompt)
	metrics.ExtractionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ExtractionTotal.WithLabelValues("call_error").Inc()
		log.Warn("constraint extraction failed, continuing without constraints", zap.Error(err))
		return constraint.Empty()
	}

	c, err := ParseResponse(raw)
	if err != nil {
		metrics.ExtractionTotal.WithLabelValues("parse_error").Inc()
		log.Warn("constraint extraction returned invalid JSON, continuing without constraints",
			zap.Error(err),
			zap.String("response_preview", logger.TruncateForLog(raw, e.maxLogLen)),
		)
		return constraint.Empty()
	}

	metrics.ExtractionTotal.WithLabelValues("ok").Inc()
	log.Debug("constraints extracted",
		zap.Intp("duration_max", c.DurationMax),
		zap.Strings("skills", c.Skills),
		zap.Boolp("remote_required", c.RemoteRequired),
		zap.Boolp("adaptive_required", c.AdaptiveRequired),
	)
	return c
}

// BuildPrompt inserts text verbatim into the extraction prompt.
func BuildPrompt(text string) string {
	return strings.ReplaceAll(strings.TrimRight(promptTemplate, "\n"), textPlaceholder, text)
}

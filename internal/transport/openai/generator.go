package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kailas-cloud/assessrec/internal/domain"
)

// GeneratorConfig holds chat completion settings.
type GeneratorConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Generator produces text with the chat completions API of an OpenAI-compatible server.
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// NewGenerator creates a chat completion generator.
func NewGenerator(cfg GeneratorConfig) (*Generator, error) {
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("chat model is required")
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Generator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// GenerateContent sends the prompt as a single user message and returns the first choice.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: g.temperature,
	}
	if g.maxTokens > 0 {
		req.MaxTokens = g.maxTokens
	}

	resp, err := g.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %v: %w", err, domain.ErrGenerationFailed)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices: %w", domain.ErrGenerationFailed)
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("chat completion returned empty content: %w", domain.ErrGenerationFailed)
	}
	return out, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string { return g.model }

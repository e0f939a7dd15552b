// Package gemini implements the constraint-extraction text generator on the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/kailas-cloud/assessrec/internal/domain"
)

const defaultModel = "gemini-2.0-flash"

// modelsAPI is the subset of genai.Models used here.
type modelsAPI interface {
	GenerateContent(
		ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Config holds Gemini generation settings.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	// JSONOutput asks the model for an application/json response.
	JSONOutput bool
}

// Generator wraps the Google GenAI client to provide simple prompt-based interactions.
type Generator struct {
	models    modelsAPI
	modelName string
	config    *genai.GenerateContentConfig
}

// NewGenerator creates a new Generator configured for the Gemini API backend.
func NewGenerator(ctx context.Context, cfg Config) (*Generator, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return newGenerator(client.Models, cfg), nil
}

func newGenerator(models modelsAPI, cfg Config) *Generator {
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	temperature := cfg.Temperature
	gc := &genai.GenerateContentConfig{Temperature: &temperature}
	if cfg.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(cfg.MaxTokens) //nolint:gosec // bounded by config
	}
	if cfg.JSONOutput {
		gc.ResponseMIMEType = "application/json"
	}

	return &Generator{models: models, modelName: model, config: gc}
}

// GenerateContent sends the prompt to Gemini and returns the concatenated text parts.
func (g *Generator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	if g == nil || g.models == nil {
		return "", errors.New("gemini generator is not initialized")
	}

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", errors.New("prompt must not be empty")
	}

	resp, err := g.models.GenerateContent(ctx, g.modelName, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("generate content: %v: %w", err, domain.ErrGenerationFailed)
	}

	output := responseText(resp)
	if output == "" {
		return "", fmt.Errorf("gemini api returned empty response: %w", domain.ErrGenerationFailed)
	}

	return output, nil
}

// Model returns the configured model name.
func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.modelName
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil {
				continue
			}
			text := strings.TrimSpace(part.Text)
			if text == "" {
				continue
			}
			if builder.Len() > 0 {
				builder.WriteString("\n")
			}
			builder.WriteString(text)
		}
	}
	return strings.TrimSpace(builder.String())
}

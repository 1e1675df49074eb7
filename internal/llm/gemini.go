package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"healthymeal/internal/config"
	"healthymeal/internal/shared"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiClient generates meal plans with the Google Gemini API.
type GeminiClient struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGeminiClient creates a new Gemini API client.
func NewGeminiClient(ctx context.Context, cfg *config.Config) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.GeminiModel)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(8192)

	return &GeminiClient{client: client, model: model, modelName: cfg.GeminiModel}, nil
}

// Name implements MealGenerator.
func (c *GeminiClient) Name() string {
	return "gemini:" + c.modelName
}

// GeneratePlan implements MealGenerator.
func (c *GeminiClient) GeneratePlan(ctx context.Context, days int, preferences string) (ContentResponse, error) {
	prompt, err := BuildGeneratePlanPrompt(days, preferences)
	if err != nil {
		return ContentResponse{}, err
	}
	return c.generate(ctx, prompt)
}

// ModifyMeal implements MealGenerator.
func (c *GeminiClient) ModifyMeal(ctx context.Context, currentMeal, request, preferences string) (ContentResponse, error) {
	prompt, err := BuildModifyMealPrompt(currentMeal, request, preferences)
	if err != nil {
		return ContentResponse{}, err
	}
	return c.generate(ctx, prompt)
}

// Available checks that the configured model can be described.
func (c *GeminiClient) Available(ctx context.Context) bool {
	_, err := c.model.Info(ctx)
	return err == nil
}

// Close closes the underlying Gemini client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (ContentResponse, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ContentResponse{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return ContentResponse{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ContentResponse{}, ErrEmptyResponse
	}

	// A truncated answer can be split over several text parts.
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return ContentResponse{}, ErrEmptyResponse
	}

	usage := shared.TokenUsage{Model: c.modelName}
	if md := resp.UsageMetadata; md != nil {
		usage.PromptTokens = int(md.PromptTokenCount)
		usage.CompletionTokens = int(md.CandidatesTokenCount)
		usage.TotalTokens = int(md.TotalTokenCount)
	}

	return ContentResponse{Content: b.String(), Usage: usage}, nil
}

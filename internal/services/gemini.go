package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"google.golang.org/genai"
)

type GeminiService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateTextWithRetry(ctx context.Context, prompt string) (string, error)
	TranscribeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// TextGenerator is the slice of GeminiService the resume pipeline needs.
type TextGenerator interface {
	GenerateTextWithRetry(ctx context.Context, prompt string) (string, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type GeminiOptions struct {
	APIKey      string
	Model       string
	EmbedModel  string
	Temperature float32
	MaxRetries  int
	RetryDelay  time.Duration
}

type geminiService struct {
	client        *genai.Client
	modelName     string
	embedModel    string
	temperature   float32
	maxRetries    int
	retryDelay    time.Duration
	promptBuilder *PromptBuilder
}

func NewGeminiService(opts GeminiOptions) (GeminiService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	if opts.Model == "" {
		opts.Model = "gemini-2.5-flash"
	}
	if opts.EmbedModel == "" {
		opts.EmbedModel = "text-embedding-004"
	}
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}

	return &geminiService{
		client:        client,
		modelName:     opts.Model,
		embedModel:    opts.EmbedModel,
		temperature:   opts.Temperature,
		maxRetries:    opts.MaxRetries,
		retryDelay:    opts.RetryDelay,
		promptBuilder: NewPromptBuilder(0),
	}, nil
}

// GenerateEmbedding implements GeminiService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	// Truncate text if too long (max ~10000 tokens for embedding)
	if len(text) > 40000 {
		text = strings.ToValidUTF8(text[:40000], "")
	}

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to generate embedding: %w", ErrAPIFailure, err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: empty embedding result", ErrAPIFailure)
	}

	return result.Embeddings[0].Values, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return g.generate(ctx, genai.Text(prompt))
}

// TranscribeImage implements ImageTranscriber.
func (g *geminiService) TranscribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(g.promptBuilder.BuildTranscriptionPrompt()),
			genai.NewPartFromBytes(data, mimeType),
		}, genai.RoleUser),
	}

	return retryWithBackoff(ctx, g.maxRetries, g.retryDelay, func() (string, error) {
		return g.generate(ctx, contents)
	})
}

func (g *geminiService) generate(ctx context.Context, contents []*genai.Content) (string, error) {
	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 8192,
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("%w: failed to generate text: %w", ErrAPIFailure, err)
	}

	if resp == nil {
		return "", fmt.Errorf("%w: no response generated (nil response)", ErrAPIFailure)
	}

	text := resp.Text()
	if text == "" {
		reason := "unknown"
		if len(resp.Candidates) > 0 && resp.Candidates[0].FinishReason != "" {
			reason = string(resp.Candidates[0].FinishReason)
		}
		return "", fmt.Errorf("%w: no text content in response (finish reason: %s)", ErrAPIFailure, reason)
	}

	return text, nil
}

// GenerateTextWithRetry implements GeminiService.
func (g *geminiService) GenerateTextWithRetry(ctx context.Context, prompt string) (string, error) {
	return retryWithBackoff(ctx, g.maxRetries, g.retryDelay, func() (string, error) {
		return g.GenerateText(ctx, prompt)
	})
}

// retryWithBackoff calls fn up to attempts times, doubling delay between
// attempts. It gives up early once ctx is done.
func retryWithBackoff(ctx context.Context, attempts int, delay time.Duration, fn func() (string, error)) (string, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	made := 0
	for attempt := 1; attempt <= attempts; attempt++ {
		made = attempt
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			break
		}
		if attempt == attempts {
			break
		}

		log.Printf("⚠️  Attempt %d/%d failed: %v. Retrying in %s...", attempt, attempts, err, delay)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return "", fmt.Errorf("%w: context cancelled: %w", ErrAPIFailure, ctx.Err())
		case <-timer.C:
		}
		delay *= 2
	}

	if !errors.Is(lastErr, ErrAPIFailure) {
		lastErr = fmt.Errorf("%w: %w", ErrAPIFailure, lastErr)
	}
	return "", fmt.Errorf("failed after %d attempt(s): %w", made, lastErr)
}

package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"unimitr-backend/internal/logger"
)

const (
	DefaultModel           = "gemini-2.0-flash"
	DefaultTemperature     = 0.8
	DefaultMaxOutputTokens = 200
	DefaultTimeout         = 15 * time.Second
)

// Completion is one model reply. Raw is the provider response body as JSON.
type Completion struct {
	Text string
	Raw  json.RawMessage
}

// ProviderError is a non-2xx answer from the model provider.
type ProviderError struct {
	Status  int
	Details string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("chat provider returned %d", e.Status)
}

type Client interface {
	Generate(ctx context.Context, prompt string) (*Completion, error)
}

type Config struct {
	APIKey   string
	Model    string
	Endpoint string // overrides the public API base URL, e.g. for tests
	Timeout  time.Duration
}

type GeminiClient struct {
	svc     *generativelanguage.Service
	model   string
	timeout time.Duration
}

func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("chat: api key is required")
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}
	svc, err := generativelanguage.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("chat: create service: %w", err)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &GeminiClient{svc: svc, model: cfg.Model, timeout: cfg.Timeout}, nil
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) (*Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{Parts: []*generativelanguage.Part{{Text: prompt}}},
		},
		GenerationConfig: &generativelanguage.GenerationConfig{
			Temperature:     DefaultTemperature,
			MaxOutputTokens: DefaultMaxOutputTokens,
		},
	}

	logger.ExternalServiceCall("gemini", "GenerateContent", "model", c.model)
	resp, err := c.svc.Models.GenerateContent("models/"+c.model, req).Context(ctx).Do()
	logger.ExternalServiceResult("gemini", "GenerateContent", err, "model", c.model)
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			details := apiErr.Body
			if details == "" {
				details = apiErr.Message
			}
			return nil, &ProviderError{Status: apiErr.Code, Details: details}
		}
		return nil, fmt.Errorf("chat: generate content: %w", err)
	}

	raw, err := resp.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("chat: encode response: %w", err)
	}
	return &Completion{Text: firstText(resp), Raw: raw}, nil
}

func firstText(resp *generativelanguage.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				return part.Text
			}
		}
	}
	return ""
}

// Package gemini builds Gemini API clients for the host application.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrKeyRejected is returned by Verify when the API refuses the key.
var ErrKeyRejected = errors.New("gemini API rejected the API key")

// Compile-time interface satisfaction check.
var _ driven.GeminiClient = (*Client)(nil)

// Client wraps a genai.Client bound to one model.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient creates a Gemini API client authenticated with apiKey. No request
// is sent until the client is used.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	return newClient(ctx, &genai.ClientConfig{APIKey: apiKey}, model)
}

func newClient(ctx context.Context, cfg *genai.ClientConfig, model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	cfg.Backend = genai.BackendGeminiAPI

	gc, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Client{genai: gc, model: model}, nil
}

// Factory returns a driven.GeminiClientFactory producing clients for model.
func Factory(model string) driven.GeminiClientFactory {
	return func(ctx context.Context, apiKey string) (driven.GeminiClient, error) {
		return NewClient(ctx, apiKey, model)
	}
}

// Model returns the model name requests are sent to.
func (c *Client) Model() string {
	return c.model
}

// Verify fetches the configured model's metadata. A 400, 401 or 403 from
// the API is reported as ErrKeyRejected.
func (c *Client) Verify(ctx context.Context) error {
	if _, err := c.genai.Models.Get(ctx, c.model, nil); err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.Code {
			case 400, 401, 403:
				return fmt.Errorf("%w: %s", ErrKeyRejected, apiErr.Message)
			}
			return fmt.Errorf("gemini API error %d for model %s: %s", apiErr.Code, c.model, apiErr.Message)
		}
		return fmt.Errorf("failed to reach gemini API: %w", err)
	}
	return nil
}

package driven

import "context"

// GeminiClient is the host application's handle on the Gemini API. It is
// rebuilt whenever a new API key is saved.
type GeminiClient interface {
	// Model returns the model name requests are sent to.
	Model() string

	// Verify sends one lightweight request to confirm the key is accepted
	// and the model exists.
	Verify(ctx context.Context) error
}

// GeminiClientFactory builds a GeminiClient for the given API key.
type GeminiClientFactory func(ctx context.Context, apiKey string) (GeminiClient, error)

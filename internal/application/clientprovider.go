package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// VerifyTimeout bounds the request ConnectGeminiClient sends to check a key.
const VerifyTimeout = 10 * time.Second

// ConnectGeminiClient builds a client for apiKey and verifies it against the
// API. A client is only returned once the API has accepted the key.
func ConnectGeminiClient(ctx context.Context, factory driven.GeminiClientFactory, apiKey string) (driven.GeminiClient, error) {
	client, err := factory(ctx, apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, VerifyTimeout)
	defer cancel()
	if err := client.Verify(ctx); err != nil {
		return nil, err
	}
	return client, nil
}

// GeminiClientProvider enables runtime hot-swap of the Gemini client.
// It holds a mutex-protected reference to the current driven.GeminiClient,
// allowing a newly saved API key to take effect without restarting the
// application.
type GeminiClientProvider struct {
	mu     sync.RWMutex
	client driven.GeminiClient
}

// NewGeminiClientProvider creates a new provider with the given initial
// client. client may be nil if no API key is available at startup.
func NewGeminiClientProvider(client driven.GeminiClient) *GeminiClientProvider {
	return &GeminiClientProvider{client: client}
}

// Get returns the current client. Callers should check for nil if the
// provider was created without an initial key.
func (p *GeminiClientProvider) Get() driven.GeminiClient {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client
}

// Replace swaps the current client. The next caller of Get receives it.
func (p *GeminiClientProvider) Replace(client driven.GeminiClient) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.client = client
}

// HasClient returns true if a non-nil client is currently held.
func (p *GeminiClientProvider) HasClient() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.client != nil
}

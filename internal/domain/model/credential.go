package model

import "time"

// Credential holds the persisted API credential for one external service.
// Service identifies the provider whose key is stored ("gemini").
type Credential struct {
	ID        int64
	Service   string
	Value     string
	UpdatedAt time.Time
}

// GeminiKeyURL is the page where users create a Gemini API key.
const GeminiKeyURL = "https://aistudio.google.com/app/apikey"

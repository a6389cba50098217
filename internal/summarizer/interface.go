// Package summarizer implements the summarize step on the Gemini API.
package summarizer

import "context"

// generateFunc sends one prompt to the model using a single API key.
type generateFunc func(ctx context.Context, apiKey, model, prompt string) (string, error)

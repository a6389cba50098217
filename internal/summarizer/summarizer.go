package summarizer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/audio-journal/internal/pipeline"
)

const summaryPrompt = `You are summarizing a personal audio journal entry. Using the transcript below, write a short summary in the language of the transcript.

Requirements:
- Start with one sentence describing the main topic
- List the key thoughts, events and decisions in the order they appear
- Note any follow-ups or commitments the speaker mentions
- Plain text only, no headings

Transcript:
---
%s
---`

var (
	ErrNoKeys          = errors.New("summarizer: no API keys configured")
	ErrEmptyResponse   = errors.New("summarizer: empty response from Gemini")
	ErrEmptyTranscript = errors.New("summarizer: transcript is empty")
)

// Run reads the transcript at transcriptPath and returns its summary.
func (g *Gemini) Run(ctx context.Context, transcriptPath string) (pipeline.Output, error) {
	content, err := g.readFile(transcriptPath)
	if err != nil {
		return pipeline.Output{}, fmt.Errorf("read transcript: %w", err)
	}
	transcript := strings.TrimSpace(string(content))
	if transcript == "" {
		return pipeline.Output{}, ErrEmptyTranscript
	}

	summary, err := g.callGemini(ctx, transcript)
	if err != nil {
		return pipeline.Output{}, err
	}
	return pipeline.Output{Text: strings.TrimSpace(summary)}, nil
}

// callGemini sends the transcript to Gemini and returns the summary text.
// Rotates API keys on 429 / quota errors.
func (g *Gemini) callGemini(ctx context.Context, transcript string) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", ErrNoKeys
	}

	prompt := fmt.Sprintf(summaryPrompt, transcript)

	var lastErr error
	for range len(g.apiKeys) {
		idx, key := g.key()

		text, err := g.generate(ctx, key, g.model, prompt)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if isRateLimited(err) {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}
		if strings.TrimSpace(text) == "" {
			return "", ErrEmptyResponse
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *Gemini) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey advances past idx unless a concurrent caller already did.
func (g *Gemini) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func generateContent(ctx context.Context, apiKey, model, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}

	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return "", nil
	}
	var text strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}

package summarizer

import (
	"os"
	"sync"

	"github.com/nguyentantai21042004/audio-journal/internal/logger"
)

const defaultModel = "gemini-2.5-flash"

// Gemini summarizes transcripts, rotating through the supplied API keys
// when one is rate limited.
type Gemini struct {
	apiKeys []string
	model   string
	logger  logger.Logger

	mu         sync.Mutex
	currentKey int

	generate generateFunc
	readFile func(string) ([]byte, error)
}

// New creates a Gemini step. An empty model selects gemini-2.5-flash.
func New(apiKeys []string, model string, log logger.Logger) *Gemini {
	if model == "" {
		model = defaultModel
	}
	return &Gemini{
		apiKeys:  apiKeys,
		model:    model,
		logger:   log,
		generate: generateContent,
		readFile: os.ReadFile,
	}
}

package driven

import "context"

// LLMService provides language model text completion.
// This is an optional service - when nil, summaries, tags, tag-driven
// retrieval, and answer synthesis all degrade to their defined
// fallbacks.
//
// Implementations may include:
//   - OpenAI (GPT-4o and compatible APIs)
//   - Ollama (local models)
type LLMService interface {
	// Generate produces a text completion from a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// GenerateOptions configures text generation behaviour.
type GenerateOptions struct {
	// MaxTokens is the maximum number of tokens to generate.
	MaxTokens int

	// Temperature controls randomness (0.0 = deterministic).
	Temperature float64

	// StopWords are sequences that stop generation when encountered.
	StopWords []string
}

// VisionService describes images with a vision-capable model.
// Optional: when nil, image extraction falls straight through to OCR.
type VisionService interface {
	// DescribeImage returns text describing or transcribing the image.
	DescribeImage(ctx context.Context, image []byte, filename string) (string, error)
}

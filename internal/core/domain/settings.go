package domain

// AIProvider identifies an AI service provider.
type AIProvider string

// Supported AI providers.
const (
	AIProviderOpenAI AIProvider = "openai"
	AIProviderOllama AIProvider = "ollama"
)

// LLMSettings holds user configuration for the language model service.
// An unconfigured provider means the system runs without model
// capabilities and every dependent operation uses its fallback.
type LLMSettings struct {
	// Provider selects the AI provider.
	Provider AIProvider

	// Model is the model name (provider defaults apply when empty).
	Model string

	// APIKey authenticates hosted providers. Unused by Ollama.
	APIKey string

	// BaseURL overrides the provider endpoint.
	BaseURL string

	// RequestsPerSecond caps outbound request rate. Zero uses the
	// default throttle.
	RequestsPerSecond float64
}

// IsConfigured reports whether a provider has been selected.
func (s *LLMSettings) IsConfigured() bool {
	return s != nil && s.Provider != ""
}

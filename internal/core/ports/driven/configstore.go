package driven

// ConfigStore provides persistent key-value configuration.
// Backed by a TOML file in the docvault config directory.
type ConfigStore interface {
	// Get retrieves a raw configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, or "" when unset.
	GetString(key string) string

	// GetInt retrieves an integer value, or 0 when unset.
	GetInt(key string) int

	// GetBool retrieves a boolean value, or false when unset.
	GetBool(key string) bool

	// Keys returns every key currently set.
	Keys() []string

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Save persists the current configuration to disk.
	Save() error

	// Load reads configuration from disk.
	Load() error
}

// Well-known configuration keys.
const (
	ConfigKeyDataDir       = "data_dir"
	ConfigKeyMaxFileSize   = "max_file_size_bytes"
	ConfigKeyLLMProvider   = "llm.provider"
	ConfigKeyLLMModel      = "llm.model"
	ConfigKeyLLMAPIKey     = "llm.api_key"
	ConfigKeyLLMBaseURL    = "llm.base_url"
	ConfigKeyLLMRateLimit  = "llm.requests_per_second"
	ConfigKeyOCRBinary     = "ocr.tesseract_path"
	ConfigKeyPDFToText     = "pdf.pdftotext_path"
	ConfigKeyPDFToImage    = "pdf.pdftoppm_path"
	ConfigKeyWatchDir      = "watch.inbox_dir"
	ConfigKeyAnswerWorkers = "answer.workers"
)

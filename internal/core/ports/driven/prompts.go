package driven

// PromptStore loads prompt templates for model calls.
// Implementations may read user-editable files with embedded defaults
// as fallback.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)
}

// Prompt names used by the pipelines. Each maps to a template file in
// the prompt directory.
const (
	// PromptSummarize condenses document text into a short summary.
	// Placeholder: %s = document text.
	PromptSummarize = "summarize"

	// PromptGenerateTags requests a JSON array of tags for a document.
	// Placeholder: %s = document text.
	PromptGenerateTags = "generate_tags"

	// PromptSelectTags asks which vocabulary tags are relevant to a
	// query. Placeholders: %s = query, %s = comma-separated vocabulary.
	PromptSelectTags = "select_tags"

	// PromptAnswer asks for a direct answer plus a follow-up decision
	// as one JSON object. Placeholders: %s = query, %s = gathered content.
	PromptAnswer = "answer"

	// PromptReprocess carries the model's own follow-up instructions.
	// Placeholders: %s = query, %s = content, %s = instructions.
	PromptReprocess = "reprocess"
)

package domain

// Search limits. Requested limits outside (0, MaxSearchLimit] fall back
// to DefaultSearchLimit.
const (
	DefaultSearchLimit = 10
	MaxSearchLimit     = 1000
)

// ClampLimit applies the search limit bounds.
func ClampLimit(limit int) int {
	if limit <= 0 || limit > MaxSearchLimit {
		return DefaultSearchLimit
	}
	return limit
}

// SearchResult is the outcome of the retrieval pipeline: the candidate
// documents for a query, before answer synthesis.
type SearchResult struct {
	// Query is the trimmed query that produced these results.
	Query string

	// Documents are the matching documents, deduplicated, at most the
	// requested limit.
	Documents []Document

	// DocumentIDs are the ids of Documents in the same order.
	DocumentIDs []string

	// RelevantTags are the vocabulary tags the retrieval step selected.
	// Empty when the substring fallback was used instead.
	RelevantTags []string

	// Warnings lists non-fatal conditions hit during retrieval.
	Warnings []string
}

// ProcessedDocument is one document's contribution to an answer.
type ProcessedDocument struct {
	// DocumentID identifies the source document.
	DocumentID string

	// Title is the document's title.
	Title string

	// RelevantContent is the content the answer drew from, possibly
	// transformed by a follow-up model pass.
	RelevantContent string

	// ProcessingApplied reports whether the follow-up pass ran.
	ProcessingApplied bool
}

// AnswerResult is the outcome of the answer pipeline.
type AnswerResult struct {
	// Query is the question that was answered.
	Query string

	// DirectAnswer is the model's direct answer, or the degraded
	// fallback text when no model call succeeded.
	DirectAnswer string

	// SupportingContent is the excerpt the model quoted in support of
	// the answer, when one was returned.
	SupportingContent string

	// Documents holds the per-document processed content.
	Documents []ProcessedDocument

	// Warnings lists non-fatal conditions hit during answering.
	Warnings []string
}

package driving

import (
	"context"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

// SearchService is the retrieval pipeline: it maps a natural-language
// query to a subset of the tag vocabulary and fetches the documents
// carrying any of those tags.
//
// Security invariant: the service never constructs or executes
// model-authored query strings against the catalog. All access goes
// through fixed parameterized tag and substring lookups.
type SearchService interface {
	// Search returns the candidate documents for a query.
	Search(ctx context.Context, query string, limit int) (*domain.SearchResult, error)
}

// AnswerService is the answer-synthesis pipeline run over retrieval
// candidates.
type AnswerService interface {
	// Answer gathers content for the candidate documents, asks the
	// model for a direct answer plus a follow-up decision, and
	// conditionally runs one more pass using the model's own
	// instructions.
	Answer(ctx context.Context, query string, documentIDs []string) (*domain.AnswerResult, error)
}

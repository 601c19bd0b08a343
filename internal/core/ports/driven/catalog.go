package driven

import (
	"context"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

// Catalog persists Document records and the tag -> document ids index.
// Backed by SQLite for metadata storage.
//
// Implementations must apply a document row write and its tag
// membership updates as one atomic unit: no reader may observe a
// document referencing a tag that does not exist, or a tag referencing
// a deleted document. Tags with no remaining documents are pruned.
type Catalog interface {
	// SaveDocument inserts or updates a document together with its tag
	// memberships in a single transaction. Tags named by doc.Tags are
	// created as needed; memberships no longer named are retracted and
	// emptied tags pruned.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// GetDocument retrieves a document by id.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetDocumentByHash retrieves a document by content hash, or
	// domain.ErrNotFound when the hash is unknown.
	GetDocumentByHash(ctx context.Context, contentHash string) (*domain.Document, error)

	// ListDocuments returns documents ordered by import time descending.
	ListDocuments(ctx context.Context, offset, limit int) ([]domain.Document, error)

	// DeleteDocument retracts the document from every tag (pruning
	// emptied tags) and removes the row, atomically.
	DeleteDocument(ctx context.Context, id string) error

	// SearchText returns documents whose title, summary, or tags
	// contain the query, case-insensitively. The query is always
	// treated as a literal substring, never as an expression.
	SearchText(ctx context.Context, query string, limit int) ([]domain.Document, error)

	// ListByAnyTag returns documents carrying at least one of the
	// given tags (union semantics), deduplicated.
	ListByAnyTag(ctx context.Context, tags []string, limit int) ([]domain.Document, error)

	// TagNames returns the current tag vocabulary, sorted.
	TagNames(ctx context.Context) ([]string, error)
}

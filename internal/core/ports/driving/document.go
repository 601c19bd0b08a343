package driving

import (
	"context"
	"time"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

// DocumentContent is a document's metadata plus freshly extracted text.
type DocumentContent struct {
	ID         string
	Title      string
	MediaType  string
	SizeBytes  int64
	Summary    string
	Tags       []string
	Content    string
	CreatedAt  time.Time
	ImportedAt time.Time
}

// DocumentService manages catalog documents outside the pipelines.
type DocumentService interface {
	// Get retrieves a document's catalog record.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent retrieves metadata plus the text extracted from the
	// stored bytes.
	GetContent(ctx context.Context, documentID string) (*DocumentContent, error)

	// List returns documents ordered by import time descending.
	List(ctx context.Context, offset, limit int) ([]domain.Document, error)

	// Delete removes the document, retracts it from every tag, and
	// deletes its blob. Tag cleanup completes before the row is removed.
	Delete(ctx context.Context, documentID string) error

	// TagNames returns the current tag vocabulary.
	TagNames(ctx context.Context) ([]string, error)
}

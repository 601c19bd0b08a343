package driving

import (
	"context"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

// IngestRequest carries one uploaded file into the ingestion pipeline.
type IngestRequest struct {
	// Data is the raw file bytes.
	Data []byte

	// Filename is the original filename, used for the derived title
	// and for extraction hints. Never used for correctness.
	Filename string

	// MediaType is the declared media type of the bytes.
	MediaType string

	// Title optionally overrides the filename-derived title.
	Title string
}

// IngestService runs the ingestion pipeline: validate, hash, dedup,
// extract, persist, summarize, tag.
type IngestService interface {
	// Ingest processes one file. Non-fatal conditions (duplicate
	// content, extraction failure, model unavailability) come back as
	// warnings beside a successful result; only validation and storage
	// failures return an error.
	Ingest(ctx context.Context, req IngestRequest) (*domain.Document, []string, error)

	// Reprocess re-runs extraction, summarization, and tagging over an
	// existing document's stored bytes, replacing its summary and tags.
	Reprocess(ctx context.Context, documentID string) (*domain.Document, []string, error)
}

package mcp

import (
	"github.com/docvault-labs/docvault/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Search finds documents for a query.
	Search driving.SearchService

	// Answer composes answers from matching documents.
	Answer driving.AnswerService

	// Ingest stores new files.
	Ingest driving.IngestService

	// Document reads and lists stored documents.
	Document driving.DocumentService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	// Answer, Ingest, and Document are optional; their tools and
	// resources degrade when absent.
	return nil
}

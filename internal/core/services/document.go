package services

import (
	"context"
	"fmt"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/core/ports/driving"
	"github.com/docvault-labs/docvault/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService manages catalog documents outside the pipelines.
type DocumentService struct {
	catalog   driven.Catalog
	blobs     driven.BlobStore
	extractor driven.ExtractionRouter
}

// NewDocumentService creates a document service.
func NewDocumentService(catalog driven.Catalog, blobs driven.BlobStore, extractor driven.ExtractionRouter) *DocumentService {
	return &DocumentService{catalog: catalog, blobs: blobs, extractor: extractor}
}

// Get retrieves a document's catalog record.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	return s.catalog.GetDocument(ctx, documentID)
}

// GetContent retrieves metadata plus the text extracted from the
// stored bytes. Documents whose extraction yields nothing fall back to
// the stored summary as content.
func (s *DocumentService) GetContent(ctx context.Context, documentID string) (*driving.DocumentContent, error) {
	doc, err := s.catalog.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	content := &driving.DocumentContent{
		ID:         doc.ID,
		Title:      doc.Title,
		MediaType:  doc.MediaType,
		SizeBytes:  doc.SizeBytes,
		Summary:    doc.Summary,
		Tags:       doc.Tags,
		CreatedAt:  doc.CreatedAt,
		ImportedAt: doc.ImportedAt,
	}

	data, err := s.blobs.Get(ctx, doc.ContentHash)
	if err != nil {
		return nil, fmt.Errorf("%w: loading stored bytes: %w", domain.ErrStorage, err)
	}

	outcome := s.extractor.Extract(ctx, data, doc.MediaType, doc.Title)
	if outcome.OK() {
		content.Content = outcome.Text
	} else {
		content.Content = doc.Summary
	}

	return content, nil
}

// List returns documents ordered by import time descending.
func (s *DocumentService) List(ctx context.Context, offset, limit int) ([]domain.Document, error) {
	if offset < 0 {
		offset = 0
	}
	return s.catalog.ListDocuments(ctx, offset, domain.ClampLimit(limit))
}

// Delete removes the document from the catalog, then deletes its blob.
// The catalog retracts tag memberships before dropping the row; the
// blob is only removed once no record references it.
func (s *DocumentService) Delete(ctx context.Context, documentID string) error {
	doc, err := s.catalog.GetDocument(ctx, documentID)
	if err != nil {
		return err
	}

	if err := s.catalog.DeleteDocument(ctx, documentID); err != nil {
		return err
	}

	removed, err := s.blobs.Delete(ctx, doc.ContentHash)
	if err != nil {
		return fmt.Errorf("%w: deleting blob: %w", domain.ErrStorage, err)
	}
	if !removed {
		logger.Debug("Blob %s was already gone", doc.ContentHash)
	}

	logger.Info("Deleted %q (%s)", doc.Title, doc.ID)
	return nil
}

// TagNames returns the current tag vocabulary.
func (s *DocumentService) TagNames(ctx context.Context) ([]string, error) {
	return s.catalog.TagNames(ctx)
}

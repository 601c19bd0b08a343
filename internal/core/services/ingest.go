package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/core/ports/driving"
	"github.com/docvault-labs/docvault/internal/logger"
)

// Ensure IngestionService implements the interface.
var _ driving.IngestService = (*IngestionService)(nil)

// DefaultMaxFileSize caps uploads at 100 MiB unless configured
// otherwise.
const DefaultMaxFileSize = 100 << 20

// IngestionService runs the ingestion pipeline: validate, hash, dedup,
// extract, persist, summarize, tag.
type IngestionService struct {
	catalog     driven.Catalog
	blobs       driven.BlobStore
	extractor   driven.ExtractionRouter
	tagger      *Tagger
	maxFileSize int64
}

// NewIngestionService creates an ingestion service. maxFileSize <= 0
// uses DefaultMaxFileSize.
func NewIngestionService(
	catalog driven.Catalog,
	blobs driven.BlobStore,
	extractor driven.ExtractionRouter,
	tagger *Tagger,
	maxFileSize int64,
) *IngestionService {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}
	return &IngestionService{
		catalog:     catalog,
		blobs:       blobs,
		extractor:   extractor,
		tagger:      tagger,
		maxFileSize: maxFileSize,
	}
}

// Ingest processes one file. Duplicate content returns the existing
// document with a warning instead of creating a second record.
func (s *IngestionService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.Document, []string, error) {
	if len(req.Data) == 0 {
		return nil, nil, fmt.Errorf("%w: file is empty", domain.ErrEmptyFile)
	}
	if int64(len(req.Data)) > s.maxFileSize {
		return nil, nil, fmt.Errorf("%w: %d bytes exceeds limit of %d",
			domain.ErrFileTooLarge, len(req.Data), s.maxFileSize)
	}

	title := deriveTitle(req.Title, req.Filename)
	if title == "" {
		return nil, nil, fmt.Errorf("%w: a filename or title is required", domain.ErrInvalidInput)
	}
	mediaType := resolveMediaType(req.MediaType, req.Filename)

	sum := sha256.Sum256(req.Data)
	digest := hex.EncodeToString(sum[:])

	if existing, err := s.catalog.GetDocumentByHash(ctx, digest); err == nil {
		logger.Info("Duplicate content %s already ingested as %s", digest[:12], existing.ID)
		return existing, []string{fmt.Sprintf(
			"identical content already ingested as %q, returning the existing document", existing.Title)}, nil
	}

	_, location, err := s.blobs.Put(ctx, req.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: storing blob: %w", domain.ErrStorage, err)
	}

	now := time.Now().UTC()
	doc := &domain.Document{
		ID:              uuid.NewString(),
		ContentHash:     digest,
		Title:           title,
		MediaType:       mediaType,
		SizeBytes:       int64(len(req.Data)),
		StorageLocation: location,
		CreatedAt:       now,
		ImportedAt:      now,
	}

	warnings := s.enrich(ctx, doc, req.Data, req.Filename)

	if err := s.catalog.SaveDocument(ctx, doc); err != nil {
		return nil, nil, fmt.Errorf("%w: saving document: %w", domain.ErrStorage, err)
	}

	logger.Info("Ingested %q as %s (%s, %d bytes)", doc.Title, doc.ID, doc.MediaType, doc.SizeBytes)
	return doc, warnings, nil
}

// Reprocess re-runs extraction, summarization, and tagging over the
// stored bytes, replacing the document's summary and tags.
func (s *IngestionService) Reprocess(ctx context.Context, documentID string) (*domain.Document, []string, error) {
	doc, err := s.catalog.GetDocument(ctx, documentID)
	if err != nil {
		return nil, nil, err
	}

	data, err := s.blobs.Get(ctx, doc.ContentHash)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: loading stored bytes: %w", domain.ErrStorage, err)
	}

	doc.Summary = ""
	doc.Tags = nil
	doc.ImportedAt = time.Now().UTC()

	warnings := s.enrich(ctx, doc, data, doc.Title)

	if err := s.catalog.SaveDocument(ctx, doc); err != nil {
		return nil, nil, fmt.Errorf("%w: saving document: %w", domain.ErrStorage, err)
	}

	logger.Info("Reprocessed %q (%s)", doc.Title, doc.ID)
	return doc, warnings, nil
}

// enrich extracts text and fills in the document's summary and tags.
// Extraction and model problems degrade to warnings, never errors.
func (s *IngestionService) enrich(ctx context.Context, doc *domain.Document, data []byte, filename string) []string {
	var warnings []string

	outcome := s.extractor.Extract(ctx, data, doc.MediaType, filename)
	switch outcome.Status {
	case domain.ExtractionUnsupported:
		warnings = append(warnings, fmt.Sprintf(
			"no extraction strategy for %q, stored without text", doc.MediaType))
	case domain.ExtractionFailed:
		warnings = append(warnings, "text extraction failed, stored without text")
	}

	text := outcome.Text
	if text == "" && doc.IsImage() {
		// Text-less images get a description of the file itself as
		// summarizer input, so best-effort summary and tags still come out.
		name := filename
		if name == "" {
			name = doc.Title
		}
		text = fmt.Sprintf("Image file %s (%s, %d bytes)", name, doc.MediaType, doc.SizeBytes)
		warnings = append(warnings, "image yielded no description, used file metadata instead")
	}

	summary, summaryWarnings := s.tagger.Summarize(ctx, text)
	doc.Summary = summary
	warnings = append(warnings, summaryWarnings...)

	tags, tagWarnings := s.tagger.GenerateTags(ctx, text)
	doc.Tags = tags
	warnings = append(warnings, tagWarnings...)

	if !s.tagger.Available() && text != "" {
		warnings = append(warnings, "no model configured, stored without summary or tags")
	}

	return warnings
}

// deriveTitle prefers the explicit title, falling back to the filename
// without its extension.
func deriveTitle(title, filename string) string {
	if title = strings.TrimSpace(title); title != "" {
		return title
	}

	base := filepath.Base(strings.TrimSpace(filename))
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// resolveMediaType uses the declared media type, guessing from the
// filename extension when the caller declared nothing.
func resolveMediaType(declared, filename string) string {
	declared = strings.TrimSpace(strings.ToLower(declared))
	if idx := strings.IndexByte(declared, ';'); idx >= 0 {
		declared = strings.TrimSpace(declared[:idx])
	}
	if declared != "" {
		return declared
	}

	if guessed := mime.TypeByExtension(filepath.Ext(filename)); guessed != "" {
		if idx := strings.IndexByte(guessed, ';'); idx >= 0 {
			guessed = strings.TrimSpace(guessed[:idx])
		}
		return strings.ToLower(guessed)
	}
	return "application/octet-stream"
}

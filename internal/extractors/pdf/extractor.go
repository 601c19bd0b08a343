// Package pdf extracts text from PDF files. It tries the embedded text
// layer first and falls back to rendering each page to an image and
// running OCR when the text layer is empty, which is what scanned PDFs
// look like.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles PDF documents.
// The pdf and ocr capabilities are optional; a missing capability just
// removes that rung of the fallback chain.
type Extractor struct {
	pdf driven.PDFService
	ocr driven.OCRService
}

// New creates a PDF extractor.
func New(pdf driven.PDFService, ocr driven.OCRService) *Extractor {
	return &Extractor{pdf: pdf, ocr: ocr}
}

// MediaTypes returns the media types this strategy handles.
func (e *Extractor) MediaTypes() []string {
	return []string{"application/pdf"}
}

// Extract tries the text layer, then per-page OCR. Failed only when
// both rungs yield nothing.
func (e *Extractor) Extract(ctx context.Context, data []byte, _, filename string) domain.ExtractionOutcome {
	if text := e.textLayer(ctx, data, filename); text != "" {
		return domain.ExtractionOutcome{
			Status:   domain.ExtractionOK,
			Text:     text,
			Strategy: "pdf/text-layer",
		}
	}

	if text := e.ocrPages(ctx, data, filename); text != "" {
		return domain.ExtractionOutcome{
			Status:   domain.ExtractionOK,
			Text:     text,
			Strategy: "pdf/ocr",
		}
	}

	return domain.ExtractionOutcome{
		Status:   domain.ExtractionFailed,
		Strategy: "pdf",
	}
}

// textLayer reads the embedded text layer, treating whitespace-only
// output as empty.
func (e *Extractor) textLayer(ctx context.Context, data []byte, filename string) string {
	if e.pdf == nil {
		return ""
	}

	text, err := e.pdf.ExtractText(ctx, data)
	if err != nil {
		logger.Warn("PDF text layer extraction failed for %s: %v", filename, err)
		return ""
	}
	return strings.TrimSpace(text)
}

// ocrPages renders each page to an image and OCRs it, concatenating
// per-page text under page markers. Pages that fail OCR are skipped
// rather than failing the whole document.
func (e *Extractor) ocrPages(ctx context.Context, data []byte, filename string) string {
	if e.pdf == nil || e.ocr == nil {
		return ""
	}

	pages, err := e.pdf.RenderPages(ctx, data)
	if err != nil {
		logger.Warn("PDF page rendering failed for %s: %v", filename, err)
		return ""
	}

	var parts []string
	for i, page := range pages {
		text, err := e.ocr.Recognize(ctx, page)
		if err != nil {
			logger.Warn("OCR failed for %s page %d: %v", filename, i+1, err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, fmt.Sprintf("Page %d:\n%s", i+1, text))
		}
	}

	return strings.Join(parts, "\n\n")
}

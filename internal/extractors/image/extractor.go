// Package image extracts text from image files. A vision-capable model
// is preferred because it also handles photos that carry no printed
// text; local OCR is the fallback when vision is unavailable or fails.
package image

import (
	"context"
	"strings"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/logger"
)

// Ensure Extractor implements the interface.
var _ driven.Extractor = (*Extractor)(nil)

// Extractor handles image media types.
type Extractor struct {
	vision driven.VisionService
	ocr    driven.OCRService
}

// New creates an image extractor. Either capability may be nil.
func New(vision driven.VisionService, ocr driven.OCRService) *Extractor {
	return &Extractor{vision: vision, ocr: ocr}
}

// MediaTypes returns the media types this strategy handles.
func (e *Extractor) MediaTypes() []string {
	return []string{
		"image/jpeg",
		"image/jpg",
		"image/png",
		"image/gif",
		"image/bmp",
		"image/tiff",
		"image/webp",
	}
}

// Extract tries the vision model, then OCR. Failed only when both
// rungs yield nothing.
func (e *Extractor) Extract(ctx context.Context, data []byte, _, filename string) domain.ExtractionOutcome {
	if e.vision != nil {
		text, err := e.vision.DescribeImage(ctx, data, filename)
		if err != nil {
			logger.Warn("Vision extraction failed for %s: %v", filename, err)
		} else if text = strings.TrimSpace(text); text != "" {
			return domain.ExtractionOutcome{
				Status:   domain.ExtractionOK,
				Text:     text,
				Strategy: "image/vision",
			}
		}
	}

	if e.ocr != nil {
		text, err := e.ocr.Recognize(ctx, data)
		if err != nil {
			logger.Warn("OCR failed for %s: %v", filename, err)
		} else if text = strings.TrimSpace(text); text != "" {
			return domain.ExtractionOutcome{
				Status:   domain.ExtractionOK,
				Text:     text,
				Strategy: "image/ocr",
			}
		}
	}

	return domain.ExtractionOutcome{
		Status:   domain.ExtractionFailed,
		Strategy: "image",
	}
}

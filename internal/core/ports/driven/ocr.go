package driven

import "context"

// OCRService recognizes text in an image. Synchronous; may fail.
// The adapter owns preprocessing (grayscale, contrast) and any
// multi-attempt segmentation strategy.
type OCRService interface {
	// Recognize returns the text found in the image bytes.
	Recognize(ctx context.Context, image []byte) (string, error)
}

// PDFService exposes the two PDF capabilities the extraction router
// needs, treated as black boxes: reading the embedded text layer and
// rendering pages to images for OCR.
type PDFService interface {
	// ExtractText returns the PDF's text layer.
	ExtractText(ctx context.Context, pdf []byte) (string, error)

	// RenderPages rasterizes each page to an image (PNG bytes),
	// in page order.
	RenderPages(ctx context.Context, pdf []byte) ([][]byte, error)
}

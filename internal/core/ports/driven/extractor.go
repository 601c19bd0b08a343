package driven

import (
	"context"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

// Extractor is one text-extraction strategy covering a closed set of
// media types. A strategy owns its internal fallback chain (e.g. the
// PDF strategy falls back from the text layer to per-page OCR) and
// reports the outcome instead of returning an error: extraction
// failures are a degraded state, not a fault.
type Extractor interface {
	// MediaTypes returns the normalized media types this strategy handles.
	MediaTypes() []string

	// Extract attempts to pull text out of the raw bytes.
	Extract(ctx context.Context, data []byte, mediaType, filename string) domain.ExtractionOutcome
}

// ExtractionRouter dispatches raw bytes to the strategy registered for
// their media type. Unknown types yield an Unsupported outcome. The
// router never panics or returns an error past its boundary.
type ExtractionRouter interface {
	Extract(ctx context.Context, data []byte, mediaType, filename string) domain.ExtractionOutcome
}

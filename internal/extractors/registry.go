// Package extractors routes raw file bytes to format-specific text
// extraction strategies. Each strategy registers the media types it
// handles; the registry dispatches by normalized media type and turns
// everything it cannot place into an Unsupported outcome.
package extractors

import (
	"context"
	"strings"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/logger"
)

// Ensure Registry implements the router port.
var _ driven.ExtractionRouter = (*Registry)(nil)

// Registry dispatches extraction by media type.
// Built once at startup; safe for concurrent reads afterwards.
type Registry struct {
	strategies map[string]driven.Extractor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: make(map[string]driven.Extractor)}
}

// Register adds a strategy for every media type it declares.
// Later registrations win on conflict.
func (r *Registry) Register(e driven.Extractor) {
	for _, mt := range e.MediaTypes() {
		r.strategies[NormalizeMediaType(mt)] = e
	}
}

// Extract dispatches to the strategy for the media type.
// Unknown types yield an Unsupported outcome; the registry never
// returns an error or panics past this boundary.
func (r *Registry) Extract(ctx context.Context, data []byte, mediaType, filename string) domain.ExtractionOutcome {
	normalized := NormalizeMediaType(mediaType)

	strategy, ok := r.strategies[normalized]
	if !ok {
		logger.Debug("No extraction strategy for %q (%s)", normalized, filename)
		return domain.ExtractionOutcome{
			Status:   domain.ExtractionUnsupported,
			Strategy: "none",
		}
	}

	outcome := strategy.Extract(ctx, data, normalized, filename)
	logger.Debug("Extraction %s for %s via %s (%d chars)",
		outcome.Status, filename, outcome.Strategy, len(outcome.Text))
	return outcome
}

// Supports reports whether a strategy is registered for the media type.
func (r *Registry) Supports(mediaType string) bool {
	_, ok := r.strategies[NormalizeMediaType(mediaType)]
	return ok
}

// NormalizeMediaType lowercases a media type and strips any parameters
// ("text/plain; charset=utf-8" -> "text/plain").
func NormalizeMediaType(mediaType string) string {
	mediaType = strings.TrimSpace(strings.ToLower(mediaType))
	if idx := strings.IndexByte(mediaType, ';'); idx >= 0 {
		mediaType = strings.TrimSpace(mediaType[:idx])
	}
	return mediaType
}

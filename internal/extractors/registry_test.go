package extractors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

// stubExtractor implements driven.Extractor for registry tests.
type stubExtractor struct {
	mediaTypes []string
	outcome    domain.ExtractionOutcome
	called     bool
}

func (s *stubExtractor) MediaTypes() []string { return s.mediaTypes }

func (s *stubExtractor) Extract(_ context.Context, _ []byte, _, _ string) domain.ExtractionOutcome {
	s.called = true
	return s.outcome
}

func TestRegistryDispatchesByMediaType(t *testing.T) {
	stub := &stubExtractor{
		mediaTypes: []string{"text/plain"},
		outcome:    domain.ExtractionOutcome{Status: domain.ExtractionOK, Text: "ok", Strategy: "stub"},
	}
	r := NewRegistry()
	r.Register(stub)

	outcome := r.Extract(context.Background(), []byte("data"), "text/plain", "a.txt")

	assert.True(t, stub.called)
	assert.Equal(t, domain.ExtractionOK, outcome.Status)
	assert.Equal(t, "ok", outcome.Text)
}

func TestRegistryNormalizesMediaType(t *testing.T) {
	stub := &stubExtractor{
		mediaTypes: []string{"text/plain"},
		outcome:    domain.ExtractionOutcome{Status: domain.ExtractionOK, Text: "ok", Strategy: "stub"},
	}
	r := NewRegistry()
	r.Register(stub)

	outcome := r.Extract(context.Background(), nil, "Text/Plain; charset=UTF-8", "a.txt")

	assert.True(t, stub.called)
	assert.Equal(t, domain.ExtractionOK, outcome.Status)
}

func TestRegistryUnknownTypeUnsupported(t *testing.T) {
	r := NewRegistry()

	outcome := r.Extract(context.Background(), nil, "application/x-tar", "a.tar")

	assert.Equal(t, domain.ExtractionUnsupported, outcome.Status)
	assert.Equal(t, "none", outcome.Strategy)
	assert.Empty(t, outcome.Text)
}

func TestRegistrySupports(t *testing.T) {
	stub := &stubExtractor{mediaTypes: []string{"application/pdf"}}
	r := NewRegistry()
	r.Register(stub)

	assert.True(t, r.Supports("application/pdf"))
	assert.True(t, r.Supports("Application/PDF"))
	assert.False(t, r.Supports("image/png"))
}

func TestNormalizeMediaType(t *testing.T) {
	assert.Equal(t, "text/plain", NormalizeMediaType(" Text/Plain ; charset=utf-8"))
	assert.Equal(t, "application/pdf", NormalizeMediaType("application/pdf"))
	assert.Equal(t, "", NormalizeMediaType("  "))
}

package services

import (
	"context"
	"fmt"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
)

// mockLLM implements driven.LLMService with scripted responses.
// Responses are consumed in order; when the script runs out the last
// entry repeats.
type mockLLM struct {
	responses []string
	err       error
	prompts   []string
}

var _ driven.LLMService = (*mockLLM)(nil)

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", fmt.Errorf("mock: no scripted response")
	}
	response := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-model" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                 { return nil }

// stubPrompts implements driven.PromptStore with minimal templates
// carrying the real placeholder counts.
type stubPrompts struct{}

var _ driven.PromptStore = (*stubPrompts)(nil)

func (stubPrompts) Load(name string) (string, error) {
	switch name {
	case driven.PromptSummarize:
		return "Summarize:\n%s", nil
	case driven.PromptGenerateTags:
		return "Tags for:\n%s", nil
	case driven.PromptSelectTags:
		return "Query: %s\nVocabulary: %s", nil
	case driven.PromptAnswer:
		return "Question: %s\nDocuments:\n%s", nil
	case driven.PromptReprocess:
		return "Question: %s\nContent:\n%s\nInstructions: %s", nil
	default:
		return "", fmt.Errorf("unknown prompt %q", name)
	}
}

// stubRouter implements driven.ExtractionRouter returning a fixed
// outcome per media type.
type stubRouter struct {
	outcomes map[string]domain.ExtractionOutcome
}

var _ driven.ExtractionRouter = (*stubRouter)(nil)

func newStubRouter() *stubRouter {
	return &stubRouter{outcomes: make(map[string]domain.ExtractionOutcome)}
}

func (r *stubRouter) set(mediaType string, outcome domain.ExtractionOutcome) {
	r.outcomes[mediaType] = outcome
}

func (r *stubRouter) Extract(_ context.Context, _ []byte, mediaType, _ string) domain.ExtractionOutcome {
	if outcome, ok := r.outcomes[mediaType]; ok {
		return outcome
	}
	return domain.ExtractionOutcome{Status: domain.ExtractionUnsupported, Strategy: "none"}
}

func (r *stubRouter) Supports(mediaType string) bool {
	_, ok := r.outcomes[mediaType]
	return ok
}

// textOutcome builds a successful extraction outcome.
func textOutcome(text string) domain.ExtractionOutcome {
	return domain.ExtractionOutcome{
		Status:   domain.ExtractionOK,
		Text:     text,
		Strategy: "stub",
	}
}

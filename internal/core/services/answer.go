package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/core/ports/driving"
	"github.com/docvault-labs/docvault/internal/logger"
	"github.com/docvault-labs/docvault/internal/modelout"
)

// Ensure AnswerSynthesisService implements the interface.
var _ driving.AnswerService = (*AnswerSynthesisService)(nil)

// defaultGatherWorkers bounds the per-document gathering concurrency.
const defaultGatherWorkers = 4

// maxExcerptLines caps the excerpts shown per document in the degraded
// fallback.
const maxExcerptLines = 3

// answerDecision is the strict JSON object the model must return for
// the answer prompt.
type answerDecision struct {
	DirectAnswer           string `json:"direct_answer"`
	SupportingContent      string `json:"supporting_content"`
	NeedsFurtherProcessing bool   `json:"needs_further_processing"`
	Instructions           string `json:"instructions"`
}

// AnswerSynthesisService answers a question from retrieval candidates:
// gather per-document content, one model call for a direct answer plus
// a follow-up decision, and at most one conditional follow-up call
// driven by the model's own instructions.
type AnswerSynthesisService struct {
	catalog   driven.Catalog
	blobs     driven.BlobStore
	extractor driven.ExtractionRouter
	llm       driven.LLMService
	prompts   driven.PromptStore
	workers   int
}

// NewAnswerSynthesisService creates an answer service. llm may be nil;
// workers <= 0 uses the default bound.
func NewAnswerSynthesisService(
	catalog driven.Catalog,
	blobs driven.BlobStore,
	extractor driven.ExtractionRouter,
	llm driven.LLMService,
	prompts driven.PromptStore,
	workers int,
) *AnswerSynthesisService {
	if workers <= 0 {
		workers = defaultGatherWorkers
	}
	return &AnswerSynthesisService{
		catalog:   catalog,
		blobs:     blobs,
		extractor: extractor,
		llm:       llm,
		prompts:   prompts,
		workers:   workers,
	}
}

// Answer runs the pipeline for a query over the candidate documents.
func (s *AnswerSynthesisService) Answer(ctx context.Context, query string, documentIDs []string) (*domain.AnswerResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	result := &domain.AnswerResult{Query: query}
	if len(documentIDs) == 0 {
		result.DirectAnswer = "No matching documents were found."
		return result, nil
	}

	gathered, warnings := s.gather(ctx, documentIDs)
	result.Documents = gathered
	result.Warnings = warnings

	if s.llm == nil {
		result.DirectAnswer = s.degradedAnswer(query, gathered)
		result.Warnings = append(result.Warnings,
			"no model configured, showing matching excerpts instead of an answer")
		return result, nil
	}

	decision, err := s.askModel(ctx, query, gathered)
	if err != nil {
		logger.Warn("Answer synthesis failed: %v", err)
		result.DirectAnswer = s.degradedAnswer(query, gathered)
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("answer synthesis failed, showing matching excerpts: %v", err))
		return result, nil
	}

	result.DirectAnswer = strings.TrimSpace(decision.DirectAnswer)
	result.SupportingContent = strings.TrimSpace(decision.SupportingContent)

	if decision.NeedsFurtherProcessing && strings.TrimSpace(decision.Instructions) != "" {
		s.followUp(ctx, query, decision, result)
	}

	return result, nil
}

// gather collects per-document content on a bounded worker pool.
// Images are answered from their stored summary; other documents are
// re-extracted from the stored bytes. A document that cannot be read
// contributes its summary, or a placeholder when it has none.
func (s *AnswerSynthesisService) gather(ctx context.Context, documentIDs []string) ([]domain.ProcessedDocument, []string) {
	type slot struct {
		doc     domain.ProcessedDocument
		warning string
		ok      bool
	}

	slots := make([]slot, len(documentIDs))
	jobs := make(chan int)

	workers := s.workers
	if workers > len(documentIDs) {
		workers = len(documentIDs)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				doc, warning := s.gatherOne(ctx, documentIDs[i])
				slots[i] = slot{doc: doc, warning: warning, ok: doc.DocumentID != ""}
			}
		}()
	}

	for i := range documentIDs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var gathered []domain.ProcessedDocument
	var warnings []string
	for _, sl := range slots {
		if sl.warning != "" {
			warnings = append(warnings, sl.warning)
		}
		if sl.ok {
			gathered = append(gathered, sl.doc)
		}
	}
	return gathered, warnings
}

// gatherOne resolves one document's content. An empty DocumentID in
// the returned value means the document was skipped entirely.
func (s *AnswerSynthesisService) gatherOne(ctx context.Context, id string) (domain.ProcessedDocument, string) {
	doc, err := s.catalog.GetDocument(ctx, id)
	if err != nil {
		return domain.ProcessedDocument{}, fmt.Sprintf("document %s unavailable: %v", id, err)
	}

	processed := domain.ProcessedDocument{
		DocumentID: doc.ID,
		Title:      doc.Title,
	}

	// Stored summaries stand in for images; their pixels have nothing
	// more to offer the text pipeline.
	if doc.IsImage() {
		processed.RelevantContent = contentOrPlaceholder(doc.Summary, doc.Title)
		return processed, ""
	}

	data, err := s.blobs.Get(ctx, doc.ContentHash)
	if err != nil {
		processed.RelevantContent = contentOrPlaceholder(doc.Summary, doc.Title)
		return processed, fmt.Sprintf("stored bytes for %q unavailable, used summary: %v", doc.Title, err)
	}

	outcome := s.extractor.Extract(ctx, data, doc.MediaType, doc.Title)
	if !outcome.OK() || strings.TrimSpace(outcome.Text) == "" {
		processed.RelevantContent = contentOrPlaceholder(doc.Summary, doc.Title)
		if doc.Summary == "" {
			return processed, fmt.Sprintf("no content available for %q", doc.Title)
		}
		return processed, ""
	}

	processed.RelevantContent = outcome.Text
	return processed, ""
}

// askModel runs the answer prompt and parses the strict JSON decision.
func (s *AnswerSynthesisService) askModel(ctx context.Context, query string, gathered []domain.ProcessedDocument) (*answerDecision, error) {
	template, err := s.prompts.Load(driven.PromptAnswer)
	if err != nil {
		return nil, fmt.Errorf("loading answer prompt: %w", err)
	}

	prompt := fmt.Sprintf(template, query, renderDocuments(gathered))
	response, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	var decision answerDecision
	if err := modelout.Object(response, &decision); err != nil {
		return nil, fmt.Errorf("parsing answer response: %w", err)
	}
	if strings.TrimSpace(decision.DirectAnswer) == "" {
		return nil, fmt.Errorf("model returned no answer")
	}
	return &decision, nil
}

// followUp runs the conditional second pass: one model call carrying
// the query, the supporting content, and the model's own instructions.
// Its output becomes the final content; the first direct answer stands.
// Failures keep the gathered content.
func (s *AnswerSynthesisService) followUp(ctx context.Context, query string, decision *answerDecision, result *domain.AnswerResult) {
	template, err := s.prompts.Load(driven.PromptReprocess)
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("follow-up prompt unavailable, kept the gathered content: %v", err))
		return
	}

	content := strings.TrimSpace(decision.SupportingContent)
	if content == "" {
		content = renderDocuments(result.Documents)
	}

	prompt := fmt.Sprintf(template, query, content, strings.TrimSpace(decision.Instructions))
	transformed, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   1024,
		Temperature: 0.2,
	})
	if err != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("follow-up processing failed, kept the gathered content: %v", err))
		return
	}
	if transformed = strings.TrimSpace(transformed); transformed == "" {
		result.Warnings = append(result.Warnings,
			"follow-up processing returned nothing, kept the gathered content")
		return
	}

	for i := range result.Documents {
		result.Documents[i].RelevantContent = transformed
		result.Documents[i].ProcessingApplied = true
	}
}

// degradedAnswer is the no-model fallback: excerpt lines containing
// any query word.
func (s *AnswerSynthesisService) degradedAnswer(query string, gathered []domain.ProcessedDocument) string {
	words := queryWords(query)

	var b strings.Builder
	for _, doc := range gathered {
		excerpts := matchingLines(doc.RelevantContent, words, maxExcerptLines)
		if len(excerpts) == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s:\n%s", doc.Title, strings.Join(excerpts, "\n"))
	}

	if b.Len() == 0 {
		return "No relevant excerpts were found in the matching documents."
	}
	return b.String()
}

// renderDocuments formats gathered content for the answer prompt.
func renderDocuments(gathered []domain.ProcessedDocument) string {
	var b strings.Builder
	for i, doc := range gathered {
		if i > 0 {
			b.WriteString("\n---\n")
		}
		fmt.Fprintf(&b, "Title: %s\nContent:\n%s\n", doc.Title, doc.RelevantContent)
	}
	return b.String()
}

// contentOrPlaceholder substitutes a visible placeholder for documents
// with neither content nor summary.
func contentOrPlaceholder(summary, title string) string {
	if strings.TrimSpace(summary) != "" {
		return summary
	}
	return fmt.Sprintf("[no content available for %q]", title)
}

// queryWords returns the lowercased query words long enough to be
// meaningful for matching.
func queryWords(query string) []string {
	var words []string
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if len(word) > minFallbackWordLength {
			words = append(words, word)
		}
	}
	return words
}

// matchingLines returns up to max lines of content containing any of
// the words.
func matchingLines(content string, words []string, max int) []string {
	var lines []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lowered := strings.ToLower(trimmed)
		for _, word := range words {
			if strings.Contains(lowered, word) {
				lines = append(lines, trimmed)
				break
			}
		}
		if len(lines) == max {
			break
		}
	}
	return lines
}

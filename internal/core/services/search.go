package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/core/ports/driving"
	"github.com/docvault-labs/docvault/internal/logger"
	"github.com/docvault-labs/docvault/internal/modelout"
)

// Ensure RetrievalService implements the interface.
var _ driving.SearchService = (*RetrievalService)(nil)

// minFallbackWordLength filters short words out of the per-word
// substring fallback.
const minFallbackWordLength = 2

// RetrievalService maps a natural-language query to tag-based document
// retrieval, falling back to substring search.
//
// The model only ever selects tags from the stored vocabulary; its
// output is never executed or interpolated into a catalog query.
type RetrievalService struct {
	catalog driven.Catalog
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewRetrievalService creates a retrieval service. llm may be nil.
func NewRetrievalService(catalog driven.Catalog, llm driven.LLMService, prompts driven.PromptStore) *RetrievalService {
	return &RetrievalService{catalog: catalog, llm: llm, prompts: prompts}
}

// Search returns the candidate documents for a query.
func (s *RetrievalService) Search(ctx context.Context, query string, limit int) (*domain.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrEmptyQuery
	}
	limit = domain.ClampLimit(limit)

	result := &domain.SearchResult{Query: query}

	tags, warnings := s.selectTags(ctx, query)
	result.Warnings = warnings

	if len(tags) > 0 {
		docs, err := s.catalog.ListByAnyTag(ctx, tags, limit)
		if err != nil {
			return nil, fmt.Errorf("%w: tag lookup: %w", domain.ErrStorage, err)
		}
		if len(docs) > 0 {
			result.RelevantTags = tags
			result.Documents = docs
			result.DocumentIDs = documentIDs(docs)
			return result, nil
		}
		result.Warnings = append(result.Warnings,
			"no documents carry the selected tags, falling back to text search")
	}

	docs, err := s.substringSearch(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	result.Documents = docs
	result.DocumentIDs = documentIDs(docs)
	return result, nil
}

// selectTags asks the model which vocabulary tags fit the query.
// Out-of-vocabulary tags are discarded; every degradation returns nil
// tags plus a warning so the caller falls back to substring search.
func (s *RetrievalService) selectTags(ctx context.Context, query string) ([]string, []string) {
	if s.llm == nil {
		return nil, nil
	}

	vocabulary, err := s.catalog.TagNames(ctx)
	if err != nil {
		return nil, []string{fmt.Sprintf("tag vocabulary unavailable: %v", err)}
	}
	if len(vocabulary) == 0 {
		return nil, nil
	}

	template, err := s.prompts.Load(driven.PromptSelectTags)
	if err != nil {
		return nil, []string{fmt.Sprintf("tag selection prompt unavailable: %v", err)}
	}

	prompt := fmt.Sprintf(template, query, strings.Join(vocabulary, ", "))
	response, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   128,
		Temperature: 0.1,
	})
	if err != nil {
		logger.Warn("Tag selection failed: %v", err)
		return nil, []string{fmt.Sprintf("tag selection failed: %v", err)}
	}

	selected, err := modelout.StringArray(response)
	if err != nil {
		logger.Warn("Unparseable tag selection: %v", err)
		return nil, []string{"model tag selection was unparseable"}
	}

	known := make(map[string]bool, len(vocabulary))
	for _, tag := range vocabulary {
		known[tag] = true
	}

	var tags []string
	discarded := 0
	seen := make(map[string]bool)
	for _, tag := range selected {
		tag = domain.NormalizeTag(tag)
		if !known[tag] {
			discarded++
			continue
		}
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	var warnings []string
	if discarded > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"discarded %d tag(s) outside the vocabulary", discarded))
	}
	return tags, warnings
}

// substringSearch runs the full query as a literal substring, then
// retries word by word when nothing matches.
func (s *RetrievalService) substringSearch(ctx context.Context, query string, limit int) ([]domain.Document, error) {
	docs, err := s.catalog.SearchText(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: text search: %w", domain.ErrStorage, err)
	}
	if len(docs) > 0 {
		return docs, nil
	}

	var results []domain.Document
	seen := make(map[string]bool)
	for _, word := range strings.Fields(query) {
		if len(word) <= minFallbackWordLength {
			continue
		}
		matches, err := s.catalog.SearchText(ctx, word, limit)
		if err != nil {
			return nil, fmt.Errorf("%w: text search: %w", domain.ErrStorage, err)
		}
		for _, doc := range matches {
			if seen[doc.ID] {
				continue
			}
			seen[doc.ID] = true
			results = append(results, doc)
			if len(results) == limit {
				return results, nil
			}
		}
	}
	return results, nil
}

// documentIDs projects documents onto their ids, preserving order.
func documentIDs(docs []domain.Document) []string {
	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
	}
	return ids
}

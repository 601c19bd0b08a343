package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/logger"
	"github.com/docvault-labs/docvault/internal/modelout"
)

// MaxTags caps the number of tags attached to one document.
const MaxTags = 7

// summaryFallbackWords is how many words the truncation fallback keeps.
const summaryFallbackWords = 50

// Tagger produces summaries and tags for document text.
// The LLM service is optional; a nil service yields empty results and
// a failed call yields deterministic fallbacks.
type Tagger struct {
	llm     driven.LLMService
	prompts driven.PromptStore
}

// NewTagger creates a tagger. llm may be nil.
func NewTagger(llm driven.LLMService, prompts driven.PromptStore) *Tagger {
	return &Tagger{llm: llm, prompts: prompts}
}

// Available reports whether a model is configured.
func (t *Tagger) Available() bool {
	return t.llm != nil
}

// Summarize condenses document text. Returns empty when no model is
// configured or the text is blank; a failed model call falls back to
// truncating the text itself.
func (t *Tagger) Summarize(ctx context.Context, text string) (string, []string) {
	text = strings.TrimSpace(text)
	if t.llm == nil || text == "" {
		return "", nil
	}

	template, err := t.prompts.Load(driven.PromptSummarize)
	if err != nil {
		return truncateWords(text, summaryFallbackWords),
			[]string{fmt.Sprintf("summary prompt unavailable: %v", err)}
	}

	summary, err := t.llm.Generate(ctx, fmt.Sprintf(template, text), driven.GenerateOptions{
		MaxTokens:   256,
		Temperature: 0.3,
	})
	if err != nil {
		logger.Warn("Summarization failed: %v", err)
		return truncateWords(text, summaryFallbackWords),
			[]string{fmt.Sprintf("summarization failed, stored truncated text: %v", err)}
	}

	summary = strings.TrimSpace(summary)
	if summary == "" {
		return truncateWords(text, summaryFallbackWords),
			[]string{"model returned an empty summary, stored truncated text"}
	}
	return summary, nil
}

// GenerateTags produces up to MaxTags normalized tags for the text.
// Returns empty when no model is configured or the text is blank; a
// failed call or unparseable response falls back to keyword matching.
func (t *Tagger) GenerateTags(ctx context.Context, text string) ([]string, []string) {
	text = strings.TrimSpace(text)
	if t.llm == nil || text == "" {
		return nil, nil
	}

	template, err := t.prompts.Load(driven.PromptGenerateTags)
	if err != nil {
		return keywordTags(text),
			[]string{fmt.Sprintf("tag prompt unavailable: %v", err)}
	}

	response, err := t.llm.Generate(ctx, fmt.Sprintf(template, text), driven.GenerateOptions{
		MaxTokens:   128,
		Temperature: 0.2,
	})
	if err != nil {
		logger.Warn("Tag generation failed: %v", err)
		return keywordTags(text),
			[]string{fmt.Sprintf("tag generation failed, used keyword tags: %v", err)}
	}

	tags, err := modelout.StringArray(response)
	if err != nil {
		logger.Warn("Unparseable tag response: %v", err)
		return keywordTags(text),
			[]string{"model tag response was unparseable, used keyword tags"}
	}

	return capTags(tags), nil
}

// capTags normalizes, deduplicates, and caps a tag list.
func capTags(raw []string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, tag := range raw {
		tag = domain.NormalizeTag(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == MaxTags {
			break
		}
	}
	return tags
}

// keywordCategories maps indicative words to a category tag, checked
// in order. The final "document" entry is the catch-all.
var keywordCategories = []struct {
	words []string
	tag   string
}{
	{words: []string{"report", "analysis", "quarterly", "annual"}, tag: "report"},
	{words: []string{"contract", "agreement", "terms", "clause"}, tag: "legal"},
	{words: []string{"invoice", "receipt", "payment", "total", "amount due"}, tag: "financial"},
	{words: []string{"manual", "guide", "instructions", "how to"}, tag: "manual"},
}

// keywordTags is the deterministic fallback tagger.
func keywordTags(text string) []string {
	lowered := strings.ToLower(text)

	var tags []string
	for _, category := range keywordCategories {
		for _, word := range category.words {
			if strings.Contains(lowered, word) {
				tags = append(tags, category.tag)
				break
			}
		}
	}

	if len(tags) == 0 {
		return []string{"document"}
	}
	return tags
}

// truncateWords keeps the first n words of text, appending an ellipsis
// when anything was cut.
func truncateWords(text string, n int) string {
	words := strings.Fields(text)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "..."
}

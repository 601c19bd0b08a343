package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/docvault-labs/docvault/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptSummarize: `Summarize the following document in 2-3 sentences. Capture what the document is, who it concerns, and any key dates, amounts, or conclusions.

Document:
%s

Summary:`,

	driven.PromptGenerateTags: `Generate up to 7 short tags that categorize the following document. Use lowercase words, hyphenate multi-word tags, and prefer concrete topics (e.g. "tax-return", "insurance", "receipt") over vague ones.

Return ONLY a JSON array of strings, nothing else.

Document:
%s

Tags:`,

	driven.PromptSelectTags: `A user is searching their documents. Pick the tags from the vocabulary below that are relevant to the query. Only choose tags that appear in the vocabulary; never invent new ones.

Query: %s

Vocabulary: %s

Return ONLY a JSON array of the chosen tags, nothing else.`,

	driven.PromptAnswer: `Answer the user's question using only the document content below.

Question: %s

Documents:
%s

Return ONLY a JSON object with these fields, nothing else:
{"direct_answer": "concise answer to the question", "supporting_content": "the passages that support the answer", "needs_further_processing": false, "instructions": ""}

Set "needs_further_processing" to true ONLY if the content must be transformed further to answer properly (for example summing values across documents), and put the processing steps in "instructions".`,

	driven.PromptReprocess: `Process the document content below by following the instructions, then answer the question.

Question: %s

Content:
%s

Instructions: %s

Answer:`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.docvault/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".docvault", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# DocVault Prompts

This directory contains customisable prompts used by DocVault's model features.

## Files

- ` + "`summarize.txt`" + ` - Summarises document content at ingestion
- ` + "`generate_tags.txt`" + ` - Generates category tags for a document
- ` + "`select_tags.txt`" + ` - Picks vocabulary tags relevant to a search query
- ` + "`answer.txt`" + ` - Answers a question from gathered document content
- ` + "`reprocess.txt`" + ` - Second-pass processing with model-authored instructions

## Customisation

Edit any file to customise model behaviour. Changes take effect on the
next command.

## Format Placeholders

Prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the query or content)

Ensure customised prompts maintain placeholders in the correct positions.
The tag and answer prompts must keep instructing the model to return JSON,
or parsing falls back to degraded behaviour.
`
	return os.WriteFile(path, []byte(content), 0600)
}

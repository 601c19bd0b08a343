// Package memory provides in-memory implementations of the storage
// driven ports, used by services and adapters in tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.Catalog = (*Catalog)(nil)

// Catalog is an in-memory implementation of driven.Catalog.
type Catalog struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
}

// NewCatalog creates a new in-memory catalog.
func NewCatalog() *Catalog {
	return &Catalog{documents: make(map[string]domain.Document)}
}

// SaveDocument stores or updates a document. Tags are normalized on
// the way in, matching the SQLite store.
func (c *Catalog) SaveDocument(_ context.Context, doc *domain.Document) error {
	if doc.ID == "" || doc.ContentHash == "" {
		return domain.ErrInvalidInput
	}

	stored := *doc
	stored.Tags = normalizeTags(doc.Tags)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.documents[stored.ID] = stored
	return nil
}

// GetDocument retrieves a document by ID.
func (c *Catalog) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	doc, ok := c.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// GetDocumentByHash retrieves a document by content hash.
func (c *Catalog) GetDocumentByHash(_ context.Context, contentHash string) (*domain.Document, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for id := range c.documents {
		doc := c.documents[id]
		if doc.ContentHash == contentHash {
			return &doc, nil
		}
	}
	return nil, domain.ErrNotFound
}

// ListDocuments returns documents ordered by import time descending.
func (c *Catalog) ListDocuments(_ context.Context, offset, limit int) ([]domain.Document, error) {
	c.mu.RLock()
	docs := c.sortedDocuments()
	c.mu.RUnlock()

	if offset >= len(docs) {
		return nil, nil
	}
	docs = docs[offset:]
	if limit < len(docs) {
		docs = docs[:limit]
	}
	return docs, nil
}

// DeleteDocument removes a document.
func (c *Catalog) DeleteDocument(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(c.documents, id)
	return nil
}

// SearchText returns documents whose title, summary, or tags contain
// the query as a case-insensitive literal substring.
func (c *Catalog) SearchText(_ context.Context, query string, limit int) ([]domain.Document, error) {
	needle := strings.ToLower(query)

	c.mu.RLock()
	docs := c.sortedDocuments()
	c.mu.RUnlock()

	var result []domain.Document
	for _, doc := range docs {
		if len(result) >= limit {
			break
		}
		if matchesSubstring(doc, needle) {
			result = append(result, doc)
		}
	}
	return result, nil
}

// ListByAnyTag returns documents carrying at least one of the given
// tags, deduplicated.
func (c *Catalog) ListByAnyTag(_ context.Context, tags []string, limit int) ([]domain.Document, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	wanted := make(map[string]bool, len(tags))
	for _, tag := range tags {
		wanted[domain.NormalizeTag(tag)] = true
	}

	c.mu.RLock()
	docs := c.sortedDocuments()
	c.mu.RUnlock()

	var result []domain.Document
	for _, doc := range docs {
		if len(result) >= limit {
			break
		}
		for _, tag := range doc.Tags {
			if wanted[tag] {
				result = append(result, doc)
				break
			}
		}
	}
	return result, nil
}

// TagNames returns the current tag vocabulary, sorted.
func (c *Catalog) TagNames(_ context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]bool)
	for _, doc := range c.documents {
		for _, tag := range doc.Tags {
			seen[tag] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// sortedDocuments returns all documents ordered by import time
// descending. Caller must hold at least a read lock.
func (c *Catalog) sortedDocuments() []domain.Document {
	docs := make([]domain.Document, 0, len(c.documents))
	for id := range c.documents {
		docs = append(docs, c.documents[id])
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].ImportedAt.Equal(docs[j].ImportedAt) {
			return docs[i].ID < docs[j].ID
		}
		return docs[i].ImportedAt.After(docs[j].ImportedAt)
	})
	return docs
}

func normalizeTags(tags []string) []string {
	var result []string
	seen := make(map[string]bool)
	for _, tag := range tags {
		tag = domain.NormalizeTag(tag)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		result = append(result, tag)
	}
	sort.Strings(result)
	return result
}

func matchesSubstring(doc domain.Document, needle string) bool {
	if strings.Contains(strings.ToLower(doc.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(doc.Summary), needle) {
		return true
	}
	for _, tag := range doc.Tags {
		if strings.Contains(tag, needle) {
			return true
		}
	}
	return false
}

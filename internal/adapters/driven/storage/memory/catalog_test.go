package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

func catalogDocument(id string, tags ...string) *domain.Document {
	now := time.Now().UTC()
	return &domain.Document{
		ID:          id,
		ContentHash: "hash-" + id,
		Title:       "Document " + id,
		MediaType:   "text/plain",
		Tags:        tags,
		CreatedAt:   now,
		ImportedAt:  now,
	}
}

func TestCatalogSaveAndGet(t *testing.T) {
	c := NewCatalog()
	ctx := context.Background()

	require.NoError(t, c.SaveDocument(ctx, catalogDocument("doc1", "Finance", "finance", "  tax return ")))

	got, err := c.GetDocument(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, []string{"finance", "tax-return"}, got.Tags)

	_, err = c.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogGetByHash(t *testing.T) {
	c := NewCatalog()
	ctx := context.Background()

	require.NoError(t, c.SaveDocument(ctx, catalogDocument("doc1")))

	got, err := c.GetDocumentByHash(ctx, "hash-doc1")
	require.NoError(t, err)
	assert.Equal(t, "doc1", got.ID)

	_, err = c.GetDocumentByHash(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCatalogListPagination(t *testing.T) {
	c := NewCatalog()
	ctx := context.Background()

	older := catalogDocument("older")
	older.ImportedAt = time.Now().UTC().Add(-time.Hour)
	require.NoError(t, c.SaveDocument(ctx, older))
	require.NoError(t, c.SaveDocument(ctx, catalogDocument("newer")))

	docs, err := c.ListDocuments(ctx, 0, 1)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "newer", docs[0].ID)

	docs, err = c.ListDocuments(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "older", docs[0].ID)

	docs, err = c.ListDocuments(ctx, 5, 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCatalogDelete(t *testing.T) {
	c := NewCatalog()
	ctx := context.Background()

	require.NoError(t, c.SaveDocument(ctx, catalogDocument("doc1")))
	require.NoError(t, c.DeleteDocument(ctx, "doc1"))
	assert.ErrorIs(t, c.DeleteDocument(ctx, "doc1"), domain.ErrNotFound)
}

func TestCatalogSearchText(t *testing.T) {
	c := NewCatalog()
	ctx := context.Background()

	byTitle := catalogDocument("doc1")
	byTitle.Title = "Annual Revenue Report"
	require.NoError(t, c.SaveDocument(ctx, byTitle))

	byTag := catalogDocument("doc2", "revenue")
	require.NoError(t, c.SaveDocument(ctx, byTag))

	unrelated := catalogDocument("doc3")
	require.NoError(t, c.SaveDocument(ctx, unrelated))

	docs, err := c.SearchText(ctx, "REVENUE", 10)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestCatalogListByAnyTag(t *testing.T) {
	c := NewCatalog()
	ctx := context.Background()

	require.NoError(t, c.SaveDocument(ctx, catalogDocument("doc1", "finance", "tax")))
	require.NoError(t, c.SaveDocument(ctx, catalogDocument("doc2", "tax")))
	require.NoError(t, c.SaveDocument(ctx, catalogDocument("doc3", "travel")))

	docs, err := c.ListByAnyTag(ctx, []string{"finance", "tax"}, 10)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	docs, err = c.ListByAnyTag(ctx, nil, 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestCatalogTagNames(t *testing.T) {
	c := NewCatalog()
	ctx := context.Background()

	require.NoError(t, c.SaveDocument(ctx, catalogDocument("doc1", "zebra", "alpha")))
	require.NoError(t, c.SaveDocument(ctx, catalogDocument("doc2", "alpha")))

	names, err := c.TagNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "zebra"}, names)
}

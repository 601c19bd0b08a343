package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})
	return store
}

// testDocument builds a document with sensible defaults.
func testDocument(id string, tags ...string) *domain.Document {
	now := time.Now().UTC().Truncate(time.Second)
	return &domain.Document{
		ID:              id,
		ContentHash:     "hash-" + id,
		Title:           "Document " + id,
		MediaType:       "text/plain",
		SizeBytes:       42,
		StorageLocation: "blobs/ha/hash-" + id,
		Tags:            tags,
		CreatedAt:       now,
		ImportedAt:      now,
	}
}

func TestNewStore_Success(t *testing.T) {
	tempDir := t.TempDir()

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "catalog.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)

	assert.NoError(t, store.db.Ping())
}

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestSaveAndGetDocument(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := testDocument("doc1", "finance", "report")
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, doc.ContentHash, got.ContentHash)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, []string{"finance", "report"}, got.Tags)
}

func TestSaveDocumentRejectsMissingIdentity(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	err := store.SaveDocument(ctx, &domain.Document{ID: "", ContentHash: "h"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.SaveDocument(ctx, &domain.Document{ID: "x", ContentHash: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetDocumentNotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetDocumentByHash(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := testDocument("doc1", "finance")
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocumentByHash(ctx, "hash-doc1")
	require.NoError(t, err)
	assert.Equal(t, "doc1", got.ID)

	_, err = store.GetDocumentByHash(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSaveDocumentUpdatesTagMemberships(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := testDocument("doc1", "finance", "report")
	require.NoError(t, store.SaveDocument(ctx, doc))

	doc.Tags = []string{"finance", "tax"}
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, []string{"finance", "tax"}, got.Tags)

	// "report" lost its only document and must be pruned.
	names, err := store.TagNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"finance", "tax"}, names)
}

func TestSaveDocumentNormalizesTags(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := testDocument("doc1", "  Tax Return  ", "FINANCE")
	require.NoError(t, store.SaveDocument(ctx, doc))

	got, err := store.GetDocument(ctx, "doc1")
	require.NoError(t, err)
	assert.Equal(t, []string{"finance", "tax-return"}, got.Tags)
}

func TestDeleteDocumentPrunesTags(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc1", "shared", "solo")))
	require.NoError(t, store.SaveDocument(ctx, testDocument("doc2", "shared")))

	require.NoError(t, store.DeleteDocument(ctx, "doc1"))

	_, err := store.GetDocument(ctx, "doc1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// "solo" emptied and is pruned; "shared" still has doc2.
	names, err := store.TagNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"shared"}, names)
}

func TestDeleteDocumentNotFound(t *testing.T) {
	store := setupTestStore(t)

	err := store.DeleteDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListDocumentsOrdersByImportTime(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	older := testDocument("older")
	older.ImportedAt = time.Now().UTC().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, store.SaveDocument(ctx, older))
	require.NoError(t, store.SaveDocument(ctx, testDocument("newer")))

	docs, err := store.ListDocuments(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "newer", docs[0].ID)
	assert.Equal(t, "older", docs[1].ID)

	page, err := store.ListDocuments(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "older", page[0].ID)
}

func TestSearchTextMatchesTitleSummaryTags(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	byTitle := testDocument("doc1")
	byTitle.Title = "Quarterly Revenue Report"
	require.NoError(t, store.SaveDocument(ctx, byTitle))

	bySummary := testDocument("doc2")
	bySummary.Summary = "Detailed revenue analysis for Q3."
	require.NoError(t, store.SaveDocument(ctx, bySummary))

	byTag := testDocument("doc3", "revenue")
	require.NoError(t, store.SaveDocument(ctx, byTag))

	unrelated := testDocument("doc4")
	unrelated.Title = "Vacation Photos"
	require.NoError(t, store.SaveDocument(ctx, unrelated))

	docs, err := store.SearchText(ctx, "REVENUE", 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	assert.ElementsMatch(t, []string{"doc1", "doc2", "doc3"}, ids)
}

func TestSearchTextTreatsWildcardsLiterally(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	doc := testDocument("doc1")
	doc.Title = "100% complete"
	require.NoError(t, store.SaveDocument(ctx, doc))

	other := testDocument("doc2")
	other.Title = "100 percent complete"
	require.NoError(t, store.SaveDocument(ctx, other))

	docs, err := store.SearchText(ctx, "100%", 10)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc1", docs[0].ID)
}

func TestListByAnyTagUnionDeduplicates(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc1", "finance", "tax")))
	require.NoError(t, store.SaveDocument(ctx, testDocument("doc2", "tax")))
	require.NoError(t, store.SaveDocument(ctx, testDocument("doc3", "travel")))

	docs, err := store.ListByAnyTag(ctx, []string{"finance", "tax"}, 10)
	require.NoError(t, err)

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	assert.ElementsMatch(t, []string{"doc1", "doc2"}, ids)
}

func TestListByAnyTagEmptyInput(t *testing.T) {
	store := setupTestStore(t)

	docs, err := store.ListByAnyTag(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestTagNamesSorted(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveDocument(ctx, testDocument("doc1", "zebra", "alpha", "middle")))

	names, err := store.TagNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "middle", "zebra"}, names)
}

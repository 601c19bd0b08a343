package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driving"
)

func TestServer_handleSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns search results", func(t *testing.T) {
		mockSearch := &mockSearchService{
			result: &domain.SearchResult{
				Query: "taxes",
				Documents: []domain.Document{
					{ID: "doc-1", Title: "Tax Return", Summary: "2023 filing", Tags: []string{"finance"}},
				},
				DocumentIDs:  []string{"doc-1"},
				RelevantTags: []string{"finance"},
			},
		}

		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, output, err := server.handleSearch(ctx, nil, SearchInput{Query: "taxes", Limit: 10})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		require.Len(t, output.Results, 1)
		assert.Equal(t, "doc-1", output.Results[0].DocumentID)
		assert.Equal(t, "Tax Return", output.Results[0].Title)
		assert.Equal(t, []string{"finance"}, output.Results[0].Tags)
		assert.Equal(t, []string{"finance"}, output.MatchedTags)
	})

	t.Run("returns error on search failure", func(t *testing.T) {
		mockSearch := &mockSearchService{err: errors.New("search failed")}

		server, err := NewServer(&Ports{Search: mockSearch})
		require.NoError(t, err)

		_, _, err = server.handleSearch(ctx, nil, SearchInput{Query: "taxes"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "search failed")
	})
}

func TestServer_handleAnswer(t *testing.T) {
	ctx := context.Background()

	t.Run("uses explicit document ids", func(t *testing.T) {
		mockAnswer := &mockAnswerService{
			result: &domain.AnswerResult{
				DirectAnswer: "The rent is 950 EUR.",
				Documents:    []domain.ProcessedDocument{{DocumentID: "doc-1", Title: "Contract"}},
			},
		}

		server, err := NewServer(&Ports{Search: &mockSearchService{}, Answer: mockAnswer})
		require.NoError(t, err)

		_, output, err := server.handleAnswer(ctx, nil, AnswerInput{
			Query:       "how much is the rent",
			DocumentIDs: []string{"doc-1"},
		})

		require.NoError(t, err)
		assert.Equal(t, "The rent is 950 EUR.", output.Answer)
		assert.Equal(t, []string{"Contract"}, output.Sources)
		assert.Equal(t, []string{"doc-1"}, mockAnswer.gotIDs)
	})

	t.Run("searches first when ids omitted", func(t *testing.T) {
		mockSearch := &mockSearchService{
			result: &domain.SearchResult{DocumentIDs: []string{"doc-7"}},
		}
		mockAnswer := &mockAnswerService{result: &domain.AnswerResult{DirectAnswer: "An answer."}}

		server, err := NewServer(&Ports{Search: mockSearch, Answer: mockAnswer})
		require.NoError(t, err)

		_, output, err := server.handleAnswer(ctx, nil, AnswerInput{Query: "question"})

		require.NoError(t, err)
		assert.Equal(t, "An answer.", output.Answer)
		assert.Equal(t, []string{"doc-7"}, mockAnswer.gotIDs)
	})
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("ingests a local file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "note.txt")
		require.NoError(t, os.WriteFile(path, []byte("note content"), 0o600))

		mockIngest := &mockIngestService{
			doc:      &domain.Document{ID: "doc-1", Title: "note", Tags: []string{"document"}},
			warnings: []string{"no model configured, stored without summary or tags"},
		}

		server, err := NewServer(&Ports{Search: &mockSearchService{}, Ingest: mockIngest})
		require.NoError(t, err)

		_, output, err := server.handleIngest(ctx, nil, IngestInput{Path: path})

		require.NoError(t, err)
		assert.Equal(t, "doc-1", output.DocumentID)
		assert.Len(t, output.Warnings, 1)
		assert.Equal(t, "note.txt", mockIngest.gotReq.Filename)
		assert.Equal(t, []byte("note content"), mockIngest.gotReq.Data)
	})

	t.Run("returns error for missing file", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Ingest: &mockIngestService{}})
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{Path: "/does/not/exist"})

		require.Error(t, err)
	})
}

func TestServer_handleContent(t *testing.T) {
	ctx := context.Background()

	mockDoc := &mockDocumentService{
		content: &driving.DocumentContent{Title: "Contract", Content: "the extracted text"},
	}

	server, err := NewServer(&Ports{Search: &mockSearchService{}, Document: mockDoc})
	require.NoError(t, err)

	_, output, err := server.handleContent(ctx, nil, ContentInput{DocumentID: "doc-1"})

	require.NoError(t, err)
	assert.Equal(t, "Contract", output.Title)
	assert.Equal(t, "the extracted text", output.Content)
}

func TestServer_handleListTags(t *testing.T) {
	ctx := context.Background()

	mockDoc := &mockDocumentService{tags: []string{"finance", "legal"}}

	server, err := NewServer(&Ports{Search: &mockSearchService{}, Document: mockDoc})
	require.NoError(t, err)

	_, output, err := server.handleListTags(ctx, nil, ListTagsInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{"finance", "legal"}, output.Tags)
}

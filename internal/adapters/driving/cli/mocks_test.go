package cli

import (
	"context"
	"errors"
	"time"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driving"
)

// setupTestServices installs mock services and returns a cleanup
// function restoring the previous ones.
func setupTestServices() func() {
	oldIngest := ingestService
	oldSearch := searchService
	oldAnswer := answerService
	oldDocument := documentService

	ingestService = &mockIngestService{}
	searchService = &mockSearchService{}
	answerService = &mockAnswerService{}
	documentService = &mockDocumentService{}

	return func() {
		ingestService = oldIngest
		searchService = oldSearch
		answerService = oldAnswer
		documentService = oldDocument
	}
}

func testDoc() *domain.Document {
	return &domain.Document{
		ID:         "doc-1",
		Title:      "Tax Return",
		MediaType:  "application/pdf",
		SizeBytes:  1024,
		Summary:    "The 2023 tax filing.",
		Tags:       []string{"finance", "tax"},
		ImportedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

type mockIngestService struct {
	err error
}

func (m *mockIngestService) Ingest(_ context.Context, req driving.IngestRequest) (*domain.Document, []string, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	doc := testDoc()
	if req.Title != "" {
		doc.Title = req.Title
	}
	return doc, []string{"no model configured, stored without summary or tags"}, nil
}

func (m *mockIngestService) Reprocess(_ context.Context, _ string) (*domain.Document, []string, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return testDoc(), nil, nil
}

type mockSearchService struct {
	err error
}

func (m *mockSearchService) Search(_ context.Context, query string, _ int) (*domain.SearchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.SearchResult{
		Query:        query,
		Documents:    []domain.Document{*testDoc()},
		DocumentIDs:  []string{"doc-1"},
		RelevantTags: []string{"finance"},
	}, nil
}

type mockAnswerService struct {
	err error
}

func (m *mockAnswerService) Answer(_ context.Context, query string, _ []string) (*domain.AnswerResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.AnswerResult{
		Query:        query,
		DirectAnswer: "You paid 1200 EUR in taxes.",
		Documents:    []domain.ProcessedDocument{{DocumentID: "doc-1", Title: "Tax Return"}},
	}, nil
}

type mockDocumentService struct {
	err error
}

func (m *mockDocumentService) Get(_ context.Context, id string) (*domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	if id != "doc-1" {
		return nil, domain.ErrNotFound
	}
	return testDoc(), nil
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (*driving.DocumentContent, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &driving.DocumentContent{
		ID:      "doc-1",
		Title:   "Tax Return",
		Content: "the extracted text",
	}, nil
}

func (m *mockDocumentService) List(_ context.Context, _, _ int) ([]domain.Document, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []domain.Document{*testDoc()}, nil
}

func (m *mockDocumentService) Delete(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if id != "doc-1" {
		return domain.ErrNotFound
	}
	return nil
}

func (m *mockDocumentService) TagNames(_ context.Context) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return []string{"finance", "tax"}, nil
}

var errMock = errors.New("mock failure")

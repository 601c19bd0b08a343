package mcp

import (
	"context"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driving"
)

// mockSearchService is a mock implementation of driving.SearchService.
type mockSearchService struct {
	result *domain.SearchResult
	err    error
}

func (m *mockSearchService) Search(_ context.Context, query string, _ int) (*domain.SearchResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &domain.SearchResult{Query: query}, nil
	}
	return m.result, nil
}

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	result *domain.AnswerResult
	err    error
	gotIDs []string
}

func (m *mockAnswerService) Answer(_ context.Context, _ string, documentIDs []string) (*domain.AnswerResult, error) {
	m.gotIDs = documentIDs
	return m.result, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	doc      *domain.Document
	warnings []string
	err      error
	gotReq   driving.IngestRequest
}

func (m *mockIngestService) Ingest(_ context.Context, req driving.IngestRequest) (*domain.Document, []string, error) {
	m.gotReq = req
	return m.doc, m.warnings, m.err
}

func (m *mockIngestService) Reprocess(_ context.Context, _ string) (*domain.Document, []string, error) {
	return m.doc, m.warnings, m.err
}

// mockDocumentService is a mock implementation of driving.DocumentService.
type mockDocumentService struct {
	document *domain.Document
	content  *driving.DocumentContent
	docs     []domain.Document
	tags     []string
	err      error
}

func (m *mockDocumentService) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentService) GetContent(_ context.Context, _ string) (*driving.DocumentContent, error) {
	return m.content, m.err
}

func (m *mockDocumentService) List(_ context.Context, _, _ int) ([]domain.Document, error) {
	return m.docs, m.err
}

func (m *mockDocumentService) Delete(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentService) TagNames(_ context.Context) ([]string, error) {
	return m.tags, m.err
}

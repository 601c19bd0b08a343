package mcp

import (
	"context"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/docvault-labs/docvault/internal/core/ports/driving"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the natural-language query to find documents"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results     []SearchResultOutput `json:"results"`
	MatchedTags []string             `json:"matched_tags,omitempty"`
	Warnings    []string             `json:"warnings,omitempty"`
	Count       int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	DocumentID string   `json:"document_id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// AnswerInput is the input schema for the answer tool.
type AnswerInput struct {
	Query       string   `json:"query" jsonschema:"the question to answer from stored documents"`
	DocumentIDs []string `json:"document_ids,omitempty" jsonschema:"documents to answer from; when omitted a search runs first"`
}

// AnswerOutput is the output schema for the answer tool.
type AnswerOutput struct {
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Path  string `json:"path" jsonschema:"path of the local file to ingest"`
	Title string `json:"title,omitempty" jsonschema:"optional title for the document"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	DocumentID string   `json:"document_id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
}

// ContentInput is the input schema for the document content tool.
type ContentInput struct {
	DocumentID string `json:"document_id" jsonschema:"the document to read"`
}

// ContentOutput is the output schema for the document content tool.
type ContentOutput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListTagsInput is the (empty) input schema for the tag listing tool.
type ListTagsInput struct{}

// ListTagsOutput is the output schema for the tag listing tool.
type ListTagsOutput struct {
	Tags []string `json:"tags"`
}

// registerTools registers all tool handlers with the MCP server.
// Tools whose backing service is absent are not offered.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search stored documents with a natural-language query",
	}, s.handleSearch)

	if s.ports.Answer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "answer",
			Description: "Answer a question from the content of stored documents",
		}, s.handleAnswer)
	}

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest",
			Description: "Ingest a local file into the vault",
		}, s.handleIngest)
	}

	if s.ports.Document != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "get_document_content",
			Description: "Read the extracted text of a stored document",
		}, s.handleContent)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_tags",
			Description: "List the tag vocabulary of the vault",
		}, s.handleListTags)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	result, err := s.ports.Search.Search(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results:     make([]SearchResultOutput, len(result.Documents)),
		MatchedTags: result.RelevantTags,
		Warnings:    result.Warnings,
		Count:       len(result.Documents),
	}

	for i := range result.Documents {
		output.Results[i] = SearchResultOutput{
			DocumentID: result.Documents[i].ID,
			Title:      result.Documents[i].Title,
			Summary:    result.Documents[i].Summary,
			Tags:       result.Documents[i].Tags,
		}
	}

	return nil, output, nil
}

// handleAnswer handles the answer tool invocation. Without explicit
// document IDs, a search over the query selects the candidates.
func (s *Server) handleAnswer(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnswerInput,
) (*mcp.CallToolResult, AnswerOutput, error) {
	ids := input.DocumentIDs
	if len(ids) == 0 {
		result, err := s.ports.Search.Search(ctx, input.Query, 0)
		if err != nil {
			return nil, AnswerOutput{}, err
		}
		ids = result.DocumentIDs
	}

	answer, err := s.ports.Answer.Answer(ctx, input.Query, ids)
	if err != nil {
		return nil, AnswerOutput{}, err
	}

	output := AnswerOutput{
		Answer:   answer.DirectAnswer,
		Warnings: answer.Warnings,
	}
	for _, doc := range answer.Documents {
		output.Sources = append(output.Sources, doc.Title)
	}

	return nil, output, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	data, err := os.ReadFile(input.Path)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	doc, warnings, err := s.ports.Ingest.Ingest(ctx, driving.IngestRequest{
		Data:     data,
		Filename: filepath.Base(input.Path),
		Title:    input.Title,
	})
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		DocumentID: doc.ID,
		Title:      doc.Title,
		Summary:    doc.Summary,
		Tags:       doc.Tags,
		Warnings:   warnings,
	}, nil
}

// handleContent handles the document content tool invocation.
func (s *Server) handleContent(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContentInput,
) (*mcp.CallToolResult, ContentOutput, error) {
	content, err := s.ports.Document.GetContent(ctx, input.DocumentID)
	if err != nil {
		return nil, ContentOutput{}, err
	}

	return nil, ContentOutput{
		Title:   content.Title,
		Content: content.Content,
	}, nil
}

// handleListTags handles the tag listing tool invocation.
func (s *Server) handleListTags(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListTagsInput,
) (*mcp.CallToolResult, ListTagsOutput, error) {
	tags, err := s.ports.Document.TagNames(ctx)
	if err != nil {
		return nil, ListTagsOutput{}, err
	}
	return nil, ListTagsOutput{Tags: tags}, nil
}

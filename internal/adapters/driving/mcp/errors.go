// Package mcp provides an MCP (Model Context Protocol) server adapter
// for docvault. It lets AI assistants search the vault, read stored
// documents, and ingest new ones.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")

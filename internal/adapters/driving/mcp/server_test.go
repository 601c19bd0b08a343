package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_RequiresSearchService(t *testing.T) {
	_, err := NewServer(&Ports{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSearchService)
}

func TestNewServer_SearchOnly(t *testing.T) {
	server, err := NewServer(&Ports{Search: &mockSearchService{}})

	require.NoError(t, err)
	assert.NotNil(t, server)
}

func TestNewServer_AllPorts(t *testing.T) {
	server, err := NewServer(&Ports{
		Search:   &mockSearchService{},
		Answer:   &mockAnswerService{},
		Ingest:   &mockIngestService{},
		Document: &mockDocumentService{},
	})

	require.NoError(t, err)
	assert.NotNil(t, server)
}

package modelout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayStrictJSON(t *testing.T) {
	items, err := StringArray(`["resume", "career", "software"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"resume", "career", "software"}, items)
}

func TestStringArrayEmbeddedInProse(t *testing.T) {
	response := `Sure! Here are the relevant tags:
["invoice", "financial"]
Let me know if you need anything else.`

	items, err := StringArray(response)
	require.NoError(t, err)
	assert.Equal(t, []string{"invoice", "financial"}, items)
}

func TestStringArrayCodeFence(t *testing.T) {
	items, err := StringArray("```json\n[\"a\", \"b\"]\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestStringArrayDelimiterFallback(t *testing.T) {
	items, err := StringArray("resume, career; software\nengineering")
	require.NoError(t, err)
	assert.Equal(t, []string{"resume", "career", "software", "engineering"}, items)
}

func TestStringArrayDropsEmptyEntries(t *testing.T) {
	items, err := StringArray(`["a", "", "  ", "b"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)
}

func TestStringArrayEmptyInput(t *testing.T) {
	_, err := StringArray("   ")
	assert.ErrorIs(t, err, ErrNoStructure)
}

func TestObjectStrict(t *testing.T) {
	var out struct {
		NeedsProcessing bool    `json:"needs_processing"`
		Instructions    *string `json:"instructions"`
	}
	err := Object(`{"needs_processing": true, "instructions": "summarize"}`, &out)
	require.NoError(t, err)
	assert.True(t, out.NeedsProcessing)
	require.NotNil(t, out.Instructions)
	assert.Equal(t, "summarize", *out.Instructions)
}

func TestObjectEmbeddedInProse(t *testing.T) {
	var out struct {
		Answer string `json:"answer"`
	}
	err := Object("Here is my decision:\n{\"answer\": \"yes\"}\nDone.", &out)
	require.NoError(t, err)
	assert.Equal(t, "yes", out.Answer)
}

func TestObjectNestedBraces(t *testing.T) {
	var out struct {
		Outer struct {
			Inner string `json:"inner"`
		} `json:"outer"`
	}
	err := Object(`prefix {"outer": {"inner": "v"}} suffix`, &out)
	require.NoError(t, err)
	assert.Equal(t, "v", out.Outer.Inner)
}

func TestObjectNoStructure(t *testing.T) {
	var out map[string]any
	err := Object("I cannot answer that.", &out)
	assert.ErrorIs(t, err, ErrNoStructure)
}

func TestObjectBraceInsideString(t *testing.T) {
	var out struct {
		Text string `json:"text"`
	}
	err := Object(`{"text": "a } inside"}`, &out)
	require.NoError(t, err)
	assert.Equal(t, "a } inside", out.Text)
}

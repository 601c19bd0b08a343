package domain

import (
	"strings"
	"time"
)

// Document is the catalog record for one ingested file.
// Exactly one Document exists per unique content hash: re-ingesting
// identical bytes returns the existing record rather than creating a
// duplicate.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// ContentHash is the SHA-256 hex digest of the raw bytes.
	// It doubles as the blob store key.
	ContentHash string

	// Title is the human-readable title, derived from the filename
	// when the caller does not supply one.
	Title string

	// MediaType is the normalized media type (e.g. "application/pdf").
	MediaType string

	// SizeBytes is the size of the raw bytes.
	SizeBytes int64

	// StorageLocation is where the blob store placed the raw bytes.
	StorageLocation string

	// Summary is the model-generated summary. Empty when no model
	// capability was available at ingestion time.
	Summary string

	// Tags is the set of normalized tag names attached to this document.
	Tags []string

	// CreatedAt is when the document was created.
	CreatedAt time.Time

	// ImportedAt is when the document was last ingested or reprocessed.
	ImportedAt time.Time
}

// IsImage reports whether the document's media type is an image format.
// Image documents are answered from their stored summary instead of
// being re-extracted per query.
func (d *Document) IsImage() bool {
	return strings.HasPrefix(d.MediaType, "image/")
}

// HasTag reports whether the document carries the named tag.
func (d *Document) HasTag(name string) bool {
	for _, t := range d.Tags {
		if t == name {
			return true
		}
	}
	return false
}

// Tag is a normalized tag name together with the ids of the documents
// carrying it. A tag whose document set becomes empty is pruned from
// the vocabulary.
type Tag struct {
	// Name is the unique normalized tag name.
	Name string

	// DocumentIDs is the set of documents carrying this tag.
	DocumentIDs []string
}

// NormalizeTag lowercases a tag name, trims whitespace, and replaces
// internal spaces with hyphens. Tags are stored and compared in this
// form only.
func NormalizeTag(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(name), "-")
}

package driven

import "context"

// BlobStore persists raw file bytes keyed by their content digest.
// The digest is the SHA-256 hex string of the exact bytes, so storing
// identical bytes twice is a no-op that returns the same key.
type BlobStore interface {
	// Put stores the bytes and returns (digest, storage location).
	// Identical bytes always produce identical digests; a second Put
	// of the same bytes does not rewrite the blob.
	Put(ctx context.Context, data []byte) (digest string, location string, err error)

	// Get retrieves the bytes for a digest.
	// Returns domain.ErrNotFound when no blob exists for it.
	Get(ctx context.Context, digest string) ([]byte, error)

	// Exists reports whether a blob exists for the digest.
	Exists(ctx context.Context, digest string) (bool, error)

	// Delete removes the blob for a digest. Returns true if a blob
	// was removed, false if none existed.
	Delete(ctx context.Context, digest string) (bool, error)
}

package memory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
)

// Ensure BlobStore implements the interface.
var _ driven.BlobStore = (*BlobStore)(nil)

// BlobStore is an in-memory implementation of driven.BlobStore.
type BlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobStore creates a new in-memory blob store.
func NewBlobStore() *BlobStore {
	return &BlobStore{blobs: make(map[string][]byte)}
}

// Put stores the bytes under their SHA-256 digest.
func (b *BlobStore) Put(_ context.Context, data []byte) (string, string, error) {
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.blobs[digest]; !ok {
		stored := make([]byte, len(data))
		copy(stored, data)
		b.blobs[digest] = stored
	}
	return digest, "memory://" + digest, nil
}

// Get retrieves the bytes for a digest.
func (b *BlobStore) Get(_ context.Context, digest string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.blobs[digest]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return data, nil
}

// Exists reports whether a blob exists for the digest.
func (b *BlobStore) Exists(_ context.Context, digest string) (bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.blobs[digest]
	return ok, nil
}

// Delete removes the blob for a digest.
func (b *BlobStore) Delete(_ context.Context, digest string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.blobs[digest]; !ok {
		return false, nil
	}
	delete(b.blobs, digest)
	return true, nil
}

// Package filesystem provides the filesystem-backed implementation of
// the BlobStore driven port.
//
// Blobs are content-addressed: the key is the SHA-256 hex digest of the
// exact bytes, and each blob lives at blobs/<digest[:2]>/<digest> under
// the data directory. The two-character fan-out keeps any single
// directory from accumulating every blob.
package filesystem

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docvault-labs/docvault/internal/core/domain"
	"github.com/docvault-labs/docvault/internal/core/ports/driven"
	"github.com/docvault-labs/docvault/internal/logger"
)

// BlobStore stores raw file bytes under a data directory.
type BlobStore struct {
	root string
}

var _ driven.BlobStore = (*BlobStore)(nil)

// NewBlobStore creates a blob store rooted at dataDir/blobs.
// If dataDir is empty, defaults to ~/.docvault/data.
func NewBlobStore(dataDir string) (*BlobStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".docvault", "data")
	}

	root := filepath.Join(dataDir, "blobs")
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("creating blob directory: %w", err)
	}

	return &BlobStore{root: root}, nil
}

// Root returns the blob directory path.
func (b *BlobStore) Root() string {
	return b.root
}

// Put stores the bytes under their SHA-256 digest. Storing identical
// bytes twice is a no-op that returns the same digest and location.
func (b *BlobStore) Put(_ context.Context, data []byte) (string, string, error) {
	sum := sha256.Sum256(data)
	digest := hex.EncodeToString(sum[:])
	path := b.blobPath(digest)

	if _, err := os.Stat(path); err == nil {
		logger.Debug("Blob %s already stored", digest[:12])
		return digest, path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return "", "", fmt.Errorf("creating blob fan-out directory: %w", err)
	}

	// Write to a temp file then rename so readers never see a partial
	// blob.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return "", "", fmt.Errorf("creating temp blob: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", "", fmt.Errorf("writing blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", "", fmt.Errorf("closing temp blob: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", "", fmt.Errorf("placing blob: %w", err)
	}

	logger.Debug("Stored blob %s (%d bytes)", digest[:12], len(data))
	return digest, path, nil
}

// Get retrieves the bytes for a digest.
func (b *BlobStore) Get(_ context.Context, digest string) ([]byte, error) {
	if err := validateDigest(digest); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(b.blobPath(digest))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading blob: %w", err)
	}
	return data, nil
}

// Exists reports whether a blob exists for the digest.
func (b *BlobStore) Exists(_ context.Context, digest string) (bool, error) {
	if err := validateDigest(digest); err != nil {
		return false, err
	}

	_, err := os.Stat(b.blobPath(digest))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("checking blob: %w", err)
}

// Delete removes the blob for a digest.
func (b *BlobStore) Delete(_ context.Context, digest string) (bool, error) {
	if err := validateDigest(digest); err != nil {
		return false, err
	}

	err := os.Remove(b.blobPath(digest))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("deleting blob: %w", err)
}

// blobPath maps a digest to blobs/<digest[:2]>/<digest>.
func (b *BlobStore) blobPath(digest string) string {
	return filepath.Join(b.root, digest[:2], digest)
}

// validateDigest rejects keys that are not SHA-256 hex strings before
// they reach the filesystem.
func validateDigest(digest string) error {
	if len(digest) != 64 {
		return domain.ErrInvalidInput
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return domain.ErrInvalidInput
	}
	return nil
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docvault-labs/docvault/internal/core/domain"
)

func TestBlobStorePutGet(t *testing.T) {
	b := NewBlobStore()
	ctx := context.Background()

	digest, location, err := b.Put(ctx, []byte("bytes"))
	require.NoError(t, err)
	assert.Len(t, digest, 64)
	assert.Equal(t, "memory://"+digest, location)

	got, err := b.Get(ctx, digest)
	require.NoError(t, err)
	assert.Equal(t, []byte("bytes"), got)

	_, err = b.Get(ctx, "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlobStoreExistsDelete(t *testing.T) {
	b := NewBlobStore()
	ctx := context.Background()

	digest, _, err := b.Put(ctx, []byte("bytes"))
	require.NoError(t, err)

	ok, err := b.Exists(ctx, digest)
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := b.Delete(ctx, digest)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = b.Delete(ctx, digest)
	require.NoError(t, err)
	assert.False(t, removed)
}

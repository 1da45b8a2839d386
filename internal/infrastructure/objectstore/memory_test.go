package objectstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("https://cdn.test")
	ctx := context.Background()

	ref, err := store.Upload(ctx, "portfolio/a.jpg", strings.NewReader("data"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/portfolio/a.jpg", ref)

	data, contentType, ok := store.Get("portfolio/a.jpg")
	require.True(t, ok)
	assert.Equal(t, "data", string(data))
	assert.Equal(t, "image/jpeg", contentType)

	require.NoError(t, store.Delete(ctx, ref))
	assert.Equal(t, 0, store.Len())

	assert.ErrorIs(t, store.Delete(ctx, "https://other/a.jpg"), ErrUnknownRef)
}

package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/tgmock/internal/domain/entity"
)

func TestSameContentSameUserReusesLocalID(t *testing.T) {
	state := NewMemoryState()

	first, err := state.ResolveOrCreateFile(1, entity.FileBytes("a.png", []byte("pixels")))
	require.NoError(t, err)
	second, err := state.ResolveOrCreateFile(1, entity.FileBytes("b.png", []byte("pixels")))
	require.NoError(t, err)

	assert.Equal(t, first.LocalID, second.LocalID)
	assert.Equal(t, first.ContentID, second.ContentID)
	assert.Equal(t, "a.png", first.Name)
	assert.Equal(t, 6, first.Size)
	assert.True(t, strings.HasPrefix(first.LocalID, "1-"))
}

func TestSameContentDifferentUsers(t *testing.T) {
	state := NewMemoryState()

	a, err := state.ResolveOrCreateFile(1, entity.FileBytes("", []byte("pixels")))
	require.NoError(t, err)
	b, err := state.ResolveOrCreateFile(2, entity.FileBytes("", []byte("pixels")))
	require.NoError(t, err)

	assert.NotEqual(t, a.LocalID, b.LocalID)
	assert.Equal(t, a.ContentID, b.ContentID)

	c, err := state.ResolveOrCreateFile(1, entity.FileBytes("", []byte("other")))
	require.NoError(t, err)
	assert.NotEqual(t, a.ContentID, c.ContentID)
}

func TestResolveLocalID(t *testing.T) {
	state := NewMemoryState()
	uploaded, err := state.ResolveOrCreateFile(1, entity.FileBytes("doc.pdf", []byte("content")))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ref, err := state.ResolveOrCreateFile(1, entity.FileRef(uploaded.LocalID))
		require.NoError(t, err)
		assert.Equal(t, uploaded.LocalID, ref.LocalID)
		assert.Equal(t, uploaded.ContentID, ref.ContentID)
		assert.Empty(t, ref.Name)
	}

	_, err = state.ResolveOrCreateFile(2, entity.FileRef(uploaded.LocalID))
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = state.ResolveOrCreateFile(1, entity.FileRef("1-unknown"))
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

package storage

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/searchpro/settings/engine/core"
)

func Test_FileStore(t *testing.T) {
	t.Run("Should round-trip a value under a key", func(t *testing.T) {
		s, err := NewFileStore(afero.NewMemMapFs(), "searchpro")
		require.NoError(t, err)
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "searchProLiveConfig", []byte(`{"a":1}`)))
		got, err := s.Get(ctx, "searchProLiveConfig")
		require.NoError(t, err)
		assert.JSONEq(t, `{"a":1}`, string(got))
	})
	t.Run("Should report ErrNotFound for a missing key", func(t *testing.T) {
		s := NewMemStore()
		_, err := s.Get(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("Should reject keys with path separators", func(t *testing.T) {
		s := NewMemStore()
		ctx := context.Background()
		assert.Error(t, s.Set(ctx, "../escape", []byte("x")))
		assert.Error(t, s.Set(ctx, "a/b", []byte("x")))
		assert.Error(t, s.Set(ctx, "", []byte("x")))
	})
	t.Run("Should delete without error when the key is absent", func(t *testing.T) {
		s := NewMemStore()
		assert.NoError(t, s.Delete(context.Background(), "never-written"))
	})
	t.Run("Should overwrite an existing key", func(t *testing.T) {
		s := NewMemStore()
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, "k", []byte("old")))
		require.NoError(t, s.Set(ctx, "k", []byte("new")))
		got, err := s.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
	})
}

func Test_WrappedConfig(t *testing.T) {
	t.Run("Should round-trip settings through the versioned wrapper", func(t *testing.T) {
		s := NewMemStore()
		ctx := context.Background()
		tr := core.ConfigTree{"searchBar": map[string]any{"width": float64(350)}}
		require.NoError(t, SaveWrapped(ctx, s, tr))

		loaded, ok := LoadWrapped(ctx, s)
		require.True(t, ok)
		assert.Equal(t, tr, loaded)
	})
	t.Run("Should report absent when nothing was persisted", func(t *testing.T) {
		s := NewMemStore()
		loaded, ok := LoadWrapped(context.Background(), s)
		assert.False(t, ok)
		assert.Nil(t, loaded)
	})
	t.Run("Should discard a wrapper with a mismatched version", func(t *testing.T) {
		s := NewMemStore()
		ctx := context.Background()
		stale := []byte(`{"version":1,"settings":{"searchBar":{"width":200}}}`)
		require.NoError(t, s.Set(ctx, WrappedConfigKey, stale))

		loaded, ok := LoadWrapped(ctx, s)
		assert.False(t, ok)
		assert.Nil(t, loaded)
		_, err := s.Get(ctx, WrappedConfigKey)
		assert.ErrorIs(t, err, ErrNotFound)
	})
	t.Run("Should reject a wrapper whose settings is not an object", func(t *testing.T) {
		s := NewMemStore()
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, WrappedConfigKey, []byte(`{"version":2,"settings":[1,2]}`)))
		_, ok := LoadWrapped(ctx, s)
		assert.False(t, ok)
	})
	t.Run("Should reject a wrapper missing the version field", func(t *testing.T) {
		s := NewMemStore()
		ctx := context.Background()
		require.NoError(t, s.Set(ctx, WrappedConfigKey, []byte(`{"settings":{}}`)))
		_, ok := LoadWrapped(ctx, s)
		assert.False(t, ok)
	})
}

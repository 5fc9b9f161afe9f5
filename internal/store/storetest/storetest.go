// Package storetest holds the behaviour every store.Store must share.
package storetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/phonebook/internal/model"
	"github.com/idilsaglam/phonebook/internal/store"
)

// Run exercises a fresh, empty store returned by open.
func Run(t *testing.T, open func(t *testing.T) store.Store) {
	t.Run("empty", func(t *testing.T) {
		s := open(t)
		got, err := s.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("create keeps insertion order", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()

		a, err := s.Create(ctx, "Arto Hellas", "040-123456")
		require.NoError(t, err)
		b, err := s.Create(ctx, "Ada Lovelace", "39-44-5323523")
		require.NoError(t, err)

		assert.NotEmpty(t, a.ID)
		assert.NotEqual(t, a.ID, b.ID)

		got, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Entry{a, b}, got)
	})

	t.Run("duplicates are allowed", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		_, err := s.Create(ctx, "Mira", "040-123")
		require.NoError(t, err)
		_, err = s.Create(ctx, "Mira", "040-123")
		require.NoError(t, err)

		got, err := s.List(ctx)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("get", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		a, err := s.Create(ctx, "Mira", "040-123")
		require.NoError(t, err)

		got, err := s.Get(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a, got)

		_, err = s.Get(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete removes exactly one", func(t *testing.T) {
		s := open(t)
		ctx := context.Background()
		a, err := s.Create(ctx, "A", "1")
		require.NoError(t, err)
		b, err := s.Create(ctx, "B", "2")
		require.NoError(t, err)

		removed, err := s.Delete(ctx, a.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = s.Delete(ctx, a.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		got, err := s.List(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.Entry{b}, got)
	})
}

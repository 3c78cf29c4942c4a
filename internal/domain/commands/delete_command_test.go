//go:build unit

package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

func TestDeleteCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should fail with a conflict and keep the remote file when the token is stale", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t).configured()
		h.openSeeded(t, "notes/idea.md", "# idea\n\n")
		h.remote.Seed("notes/idea.md", "# idea\n\nedited elsewhere\n")

		// when
		err := h.delete.Execute(context.Background(), "notes/idea.md")

		// then
		require.Error(t, err)
		assert.ErrorIs(t, err, entities.ErrConflict)
		content, ok := h.remote.Content("notes/idea.md")
		require.True(t, ok)
		assert.Equal(t, "# idea\n\nedited elsewhere\n", content)
		_, stillOpen := h.session.Document()
		assert.True(t, stillOpen)
	})

	t.Run("should delete the active note and close it", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t).configured()
		h.openSeeded(t, "notes/idea.md", "# idea\n\n")
		h.remote.Seed("notes/keep.md", "keep")

		// when
		err := h.delete.Execute(context.Background(), "")

		// then
		require.NoError(t, err)
		_, exists := h.remote.Content("notes/idea.md")
		assert.False(t, exists)
		_, hasDoc := h.session.Document()
		assert.False(t, hasDoc)
		_, listed := entities.FindEntry(h.session.Files(), "notes/idea.md")
		assert.False(t, listed)
		_, kept := entities.FindEntry(h.session.Files(), "notes/keep.md")
		assert.True(t, kept)
	})

	t.Run("should delete another listed note with its listed token", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		h := newHarness(t).configured()
		h.openSeeded(t, "notes/idea.md", "# idea\n\n")
		h.remote.Seed("notes/old.md", "old")
		_, err := h.refresh.Refresh(ctx)
		require.NoError(t, err)

		// when
		err = h.delete.Execute(ctx, "notes/old.md")

		// then
		require.NoError(t, err)
		_, exists := h.remote.Content("notes/old.md")
		assert.False(t, exists)
		doc, hasDoc := h.session.Document()
		require.True(t, hasDoc)
		assert.Equal(t, "notes/idea.md", doc.Path)
	})

	t.Run("should report a path missing from the listing as not found", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t).configured()

		// when
		err := h.delete.Execute(context.Background(), "notes/ghost.md")

		// then
		assert.ErrorIs(t, err, entities.ErrNotFound)
		assert.Empty(t, h.remote.Deletes)
	})

	t.Run("should discard a never-saved note without calling the remote store", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		h := newHarness(t).configured()
		_, err := h.open.Create(ctx, "notes/draft.md", commands.OpenOptions{})
		require.NoError(t, err)

		// when
		err = h.delete.Execute(ctx, "")

		// then
		require.NoError(t, err)
		assert.Empty(t, h.remote.Deletes)
		_, hasDoc := h.session.Document()
		assert.False(t, hasDoc)
	})

	t.Run("should discard a never-saved note before the repository is configured", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		h := newHarness(t)
		_, err := h.open.Create(ctx, "notes/draft.md", commands.OpenOptions{})
		require.NoError(t, err)

		// when
		err = h.delete.Execute(ctx, "")

		// then
		require.NoError(t, err)
		assert.Empty(t, h.remote.Deletes)
		_, hasDoc := h.session.Document()
		assert.False(t, hasDoc)
	})

	t.Run("should require an open note when no path is given", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t).configured()

		// when
		err := h.delete.Execute(context.Background(), "")

		// then
		assert.ErrorIs(t, err, commands.ErrNoDocument)
	})
}

//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/notesync/internal/domain/entities"
)

func paths(entries []entities.FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		out = append(out, entry.Path)
	}
	return out
}

func TestRefreshCommand(t *testing.T) {
	t.Parallel()

	t.Run("should replace the listing and return only notes", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t).configured()
		h.remote.Seed("notes/a.md", "a")
		h.remote.Seed("notes/assets/paste-1.png", "png")
		h.remote.Seed("readme.txt", "text")
		h.session.SetFiles([]entities.FileEntry{{Path: "stale.md", Kind: entities.EntryFile}})

		// when
		notes, err := h.refresh.Refresh(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"notes/a.md"}, paths(notes))
		assert.Contains(t, paths(h.session.Files()), "notes/assets")
		assert.NotContains(t, paths(h.session.Files()), "stale.md")
		assert.Nil(t, h.session.Index())
		assert.Empty(t, h.indexes.Decoded)
	})

	t.Run("should load the search index when the tree carries one", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		h := newHarness(t).configured()
		h.remote.Seed("notes/a.md", "alpha")
		h.remote.Seed("notes/b.md", "beta")
		h.remote.Seed(entities.SearchIndexPath, `{"tokens":{}}`)
		h.indexes.Index = &entities.SearchIndex{
			Tokens:   map[string][]string{"alpha": {"notes/a.md"}},
			Tags:     map[string][]string{"work": {"notes/b.md"}},
			FileTags: map[string][]string{"notes/b.md": {"work"}},
		}

		// when
		_, err := h.refresh.Refresh(ctx)
		byToken := h.refresh.List("alpha")
		byPath := h.refresh.List("b.md")
		selected := h.refresh.ToggleTag(ctx, "work")
		byTag := h.refresh.List("")
		cleared := h.refresh.ToggleTag(ctx, "work")

		// then
		require.NoError(t, err)
		require.Len(t, h.indexes.Decoded, 1)
		assert.JSONEq(t, `{"tokens":{}}`, string(h.indexes.Decoded[0]))
		assert.True(t, byToken.Indexed)
		assert.Equal(t, []string{"work"}, byToken.Tags)
		assert.Equal(t, []string{"notes/a.md"}, paths(byToken.Notes))
		assert.Equal(t, []string{"notes/b.md"}, paths(byPath.Notes))
		assert.Equal(t, []string{"work"}, selected)
		assert.Equal(t, []string{"notes/b.md"}, paths(byTag.Notes))
		assert.Empty(t, cleared)
		assert.Empty(t, h.store.Stored.Tags)
	})

	t.Run("should continue without an index when it is malformed", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t).configured()
		h.remote.Seed("notes/a.md", "alpha")
		h.remote.Seed(entities.SearchIndexPath, "not json")
		h.indexes.DecodeErr = errors.New("invalid index")

		// when
		notes, err := h.refresh.Refresh(context.Background())
		result := h.refresh.List("a.md")

		// then
		require.NoError(t, err)
		assert.Len(t, notes, 1)
		assert.False(t, result.Indexed)
		assert.Empty(t, result.Tags)
		assert.Equal(t, []string{"notes/a.md"}, paths(result.Notes))
	})

	t.Run("should keep the previous listing when the remote call fails", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t).configured()
		previous := []entities.FileEntry{{Path: "notes/a.md", Kind: entities.EntryFile}}
		h.session.SetFiles(previous)
		h.remote.ListErr = entities.NewSyncError(entities.KindAuth, "list", "", nil)

		// when
		_, err := h.refresh.Refresh(context.Background())

		// then
		assert.ErrorIs(t, err, entities.ErrAuth)
		assert.Equal(t, previous, h.session.Files())
	})

	t.Run("should require a configured session", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t)

		// when
		_, err := h.refresh.Refresh(context.Background())

		// then
		assert.ErrorIs(t, err, entities.ErrNotConfigured)
	})
}

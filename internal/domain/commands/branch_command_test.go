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

func TestSortBranches(t *testing.T) {
	t.Parallel()

	t.Run("should put the current branch first, then names, then versions newest first", func(t *testing.T) {
		t.Parallel()

		// given
		branches := []string{"v1.2.0", "feature/x", "main", "release/1.10.0", "develop", "v1.9"}

		// when
		sorted := commands.SortBranches(branches, "main")

		// then
		assert.Equal(t, []string{"main", "develop", "feature/x", "release/1.10.0", "v1.9", "v1.2.0"}, sorted)
		assert.Equal(t, "v1.2.0", branches[0], "input must not be reordered")
	})
}

func TestBranchVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		branch   string
		expected string
	}{
		{name: "should keep a v-prefixed version", branch: "v1.2", expected: "v1.2"},
		{name: "should use the last path segment", branch: "release/1.2.0", expected: "v1.2.0"},
		{name: "should prefix a bare version", branch: "1.4", expected: "v1.4"},
		{name: "should reject a plain name", branch: "main", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// given / when
			got := commands.BranchVersion(tt.branch)

			// then
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestBranchCommand(t *testing.T) {
	t.Parallel()

	t.Run("should list remote branches in display order", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t).configured()
		h.remote.Branches = []string{"v2.0.0", "drafts", "main"}

		// when
		branches, err := h.branch.List(context.Background())

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{"main", "drafts", "v2.0.0"}, branches)
	})

	t.Run("should switch branch, close the note and refresh the listing", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t).configured()
		h.openSeeded(t, "notes/idea.md", "# idea\n\n")

		// when
		err := h.branch.Switch(context.Background(), "drafts", commands.OpenOptions{})

		// then
		require.NoError(t, err)
		repo, _ := h.session.Repo()
		assert.Equal(t, "drafts", repo.Branch)
		_, hasDoc := h.session.Document()
		assert.False(t, hasDoc)
		assert.NotEmpty(t, h.session.Files())
		assert.Equal(t, "drafts", h.store.Stored.Repo.Branch)
	})

	t.Run("should refuse to drop unsaved changes unless forced", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		h := newHarness(t).configured()
		h.openSeeded(t, "notes/idea.md", "# idea\n\n")
		h.edit.Edit(ctx, "unsaved")

		// when
		refused := h.branch.Switch(ctx, "drafts", commands.OpenOptions{})
		repoAfterRefusal, _ := h.session.Repo()
		forced := h.branch.Switch(ctx, "drafts", commands.OpenOptions{Force: true})

		// then
		assert.ErrorIs(t, refused, commands.ErrUnsavedChanges)
		assert.Equal(t, entities.DefaultBranch, repoAfterRefusal.Branch)
		require.NoError(t, forced)
		assert.False(t, h.session.IsDirty())
	})

	t.Run("should reject a blank branch name", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t).configured()

		// when
		err := h.branch.Switch(context.Background(), "  ", commands.OpenOptions{})

		// then
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("should require a configured repository", func(t *testing.T) {
		t.Parallel()

		// given
		h := newHarness(t)

		// when
		err := h.branch.Switch(context.Background(), "drafts", commands.OpenOptions{})

		// then
		assert.ErrorIs(t, err, entities.ErrNotConfigured)
	})
}

//go:build unit

package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/notesync/internal/domain/entities"
)

func TestSessionRequireConfigured(t *testing.T) {
	t.Parallel()

	t.Run("should name the missing repository", func(t *testing.T) {
		t.Parallel()

		// given
		session := entities.NewSession()
		session.SetCredential("tok", false)

		// when
		_, _, err := session.RequireConfigured("save")

		// then
		assert.ErrorIs(t, err, entities.ErrNotConfigured)
		assert.Contains(t, err.Error(), "no repository configured")
	})

	t.Run("should name the missing credential", func(t *testing.T) {
		t.Parallel()

		// given
		session := entities.NewSession()
		session.SetRepo(entities.RepoRef{Owner: "octo", Name: "notes"})

		// when
		_, _, err := session.RequireConfigured("save")

		// then
		assert.ErrorIs(t, err, entities.ErrNotConfigured)
		assert.Contains(t, err.Error(), "no access token")
	})

	t.Run("should return the target and credential when both are set", func(t *testing.T) {
		t.Parallel()

		// given
		session := entities.NewSession()
		session.SetRepo(entities.RepoRef{Owner: "octo", Name: "notes"})
		session.SetCredential("tok", false)

		// when
		repo, token, err := session.RequireConfigured("save")

		// then
		require.NoError(t, err)
		assert.Equal(t, "main", repo.Branch)
		assert.Equal(t, "tok", token)
	})
}

func TestSessionSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("should round-trip the durable state through a snapshot", func(t *testing.T) {
		t.Parallel()

		// given
		original := entities.NewSession()
		original.SetRepo(entities.RepoRef{Owner: "octo", Name: "notes", Branch: "drafts"})
		original.SetCredential("tok", true)
		original.ToggleTag("work")
		original.Dispatch(entities.DocumentLoaded{Path: "notes/a.md", Content: "a", Token: "t0"})
		original.Dispatch(entities.ContentEdited{Content: "a, edited"})

		// when
		snapshot := original.Snapshot()
		restored := entities.NewSession()
		restored.Restore(snapshot)

		// then
		assert.Equal(t, entities.SessionSnapshotVersion, snapshot.Version)
		repo, _ := restored.Repo()
		assert.Equal(t, "drafts", repo.Branch)
		assert.Equal(t, "tok", restored.Credential())
		assert.True(t, restored.RememberCredential())
		assert.Equal(t, []string{"work"}, restored.SelectedTags())
		doc, ok := restored.Document()
		require.True(t, ok)
		assert.Equal(t, entities.ActiveDocument{Path: "notes/a.md", Content: "a, edited", Token: "t0", Dirty: true}, doc)
	})

	t.Run("should never carry pending assets", func(t *testing.T) {
		t.Parallel()

		// given
		session := entities.NewSession()
		session.Dispatch(entities.DocumentLoaded{Path: "notes/a.md", Content: "a", Token: "t0"})
		session.Dispatch(entities.AssetPasted{Asset: entities.PendingAsset{Placeholder: ".images/p.png"}, Offset: -1})

		// when
		restored := entities.NewSession()
		restored.Restore(session.Snapshot())

		// then
		assert.Empty(t, restored.Editor().Pending)
	})

	t.Run("should describe an empty session with an empty tag list and no repository", func(t *testing.T) {
		t.Parallel()

		// when
		snapshot := entities.NewSession().Snapshot()

		// then
		assert.Nil(t, snapshot.Repo)
		assert.Equal(t, []string{}, snapshot.Tags)
		assert.Empty(t, snapshot.ActivePath)
	})

	t.Run("should strip the credential on request", func(t *testing.T) {
		t.Parallel()

		// given
		snapshot := entities.SessionSnapshot{Credential: "tok", Content: "x"}

		// when
		stripped := snapshot.WithoutCredential()

		// then
		assert.Empty(t, stripped.Credential)
		assert.Equal(t, "tok", snapshot.Credential)
	})
}

func TestSessionToggleTag(t *testing.T) {
	t.Parallel()

	t.Run("should select one tag at a time and clear on the second toggle", func(t *testing.T) {
		t.Parallel()

		// given
		session := entities.NewSession()

		// when
		session.ToggleTag("a")
		afterA := session.SelectedTags()
		session.ToggleTag("b")
		afterB := session.SelectedTags()
		session.ToggleTag("b")

		// then
		assert.Equal(t, []string{"a"}, afterA)
		assert.Equal(t, []string{"b"}, afterB)
		assert.Empty(t, session.SelectedTags())
	})
}

//go:build unit

package session_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
	"github.com/rios0rios0/notesync/internal/infrastructure/repositories/session"
	"github.com/rios0rios0/notesync/test/domain/entitybuilders"
)

func newRepository(t *testing.T) (*session.FileSessionRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "session.json")
	settings := entitybuilders.NewSettingsBuilder().WithSessionFile(path).BuildSettings()
	return session.NewFileSessionRepository(settings), path
}

func sampleSnapshot() entities.SessionSnapshot {
	return entities.SessionSnapshot{
		Repo:        &entities.RepoRef{Owner: "octo", Name: "notes", Branch: "main"},
		Credential:  "secret-token",
		ActivePath:  "notes/idea.md",
		ActiveToken: "abc123",
		Dirty:       true,
		Content:     "# idea\n\nunsaved",
		Tags:        []string{"work"},
	}
}

func TestFileSessionRepositorySave(t *testing.T) {
	t.Parallel()

	t.Run("should round-trip a snapshot without the credential by default", func(t *testing.T) {
		t.Parallel()

		// given
		repo, path := newRepository(t)
		ctx := context.Background()

		// when
		err := repo.Save(ctx, sampleSnapshot(), repositories.SaveSessionOptions{})
		loaded, loadErr := repo.Load(ctx)

		// then
		require.NoError(t, err)
		require.NoError(t, loadErr)
		require.NotNil(t, loaded)
		assert.Equal(t, entities.SessionSnapshotVersion, loaded.Version)
		assert.Empty(t, loaded.Credential)
		assert.Equal(t, "notes/idea.md", loaded.ActivePath)
		assert.Equal(t, "abc123", loaded.ActiveToken)
		assert.True(t, loaded.Dirty)
		assert.Equal(t, "# idea\n\nunsaved", loaded.Content)
		assert.Equal(t, []string{"work"}, loaded.Tags)

		raw, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.NotContains(t, string(raw), "secret-token")
	})

	t.Run("should keep the credential when the caller opts in", func(t *testing.T) {
		t.Parallel()

		// given
		repo, _ := newRepository(t)
		ctx := context.Background()

		// when
		err := repo.Save(ctx, sampleSnapshot(), repositories.SaveSessionOptions{IncludeCredential: true})
		loaded, loadErr := repo.Load(ctx)

		// then
		require.NoError(t, err)
		require.NoError(t, loadErr)
		assert.Equal(t, "secret-token", loaded.Credential)
	})

	t.Run("should write the file readable by the owner only", func(t *testing.T) {
		t.Parallel()

		// given
		repo, path := newRepository(t)

		// when
		err := repo.Save(context.Background(), sampleSnapshot(), repositories.SaveSessionOptions{})

		// then
		require.NoError(t, err)
		info, statErr := os.Stat(path)
		require.NoError(t, statErr)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("should write an empty tag list instead of null", func(t *testing.T) {
		t.Parallel()

		// given
		repo, path := newRepository(t)
		snapshot := sampleSnapshot()
		snapshot.Tags = nil

		// when
		err := repo.Save(context.Background(), snapshot, repositories.SaveSessionOptions{})

		// then
		require.NoError(t, err)
		raw, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(raw, &decoded))
		assert.Equal(t, []any{}, decoded["tags"])
	})

	t.Run("should refuse snapshots over the size limit", func(t *testing.T) {
		t.Parallel()

		// given
		repo, path := newRepository(t)
		snapshot := sampleSnapshot()
		snapshot.Content = strings.Repeat("x", session.MaxSnapshotBytes)

		// when
		err := repo.Save(context.Background(), snapshot, repositories.SaveSessionOptions{})

		// then
		require.Error(t, err)
		_, statErr := os.Stat(path)
		assert.ErrorIs(t, statErr, os.ErrNotExist)
	})
}

func TestFileSessionRepositoryLoad(t *testing.T) {
	t.Parallel()

	t.Run("should return nothing when no session was stored", func(t *testing.T) {
		t.Parallel()

		// given
		repo, _ := newRepository(t)

		// when
		loaded, err := repo.Load(context.Background())

		// then
		require.NoError(t, err)
		assert.Nil(t, loaded)
	})

	t.Run("should fail on a corrupt file", func(t *testing.T) {
		t.Parallel()

		// given
		repo, path := newRepository(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		// when
		_, err := repo.Load(context.Background())

		// then
		require.Error(t, err)
	})

	t.Run("should fail on an unknown version", func(t *testing.T) {
		t.Parallel()

		// given
		repo, path := newRepository(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(`{"version":2,"content":"","tags":[]}`), 0o600))

		// when
		_, err := repo.Load(context.Background())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported session version 2")
	})

	t.Run("should fail on a stored repository that does not validate", func(t *testing.T) {
		t.Parallel()

		// given
		repo, path := newRepository(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, []byte(`{"version":1,"repo":{"owner":"","name":"notes"},"tags":[]}`), 0o600))

		// when
		_, err := repo.Load(context.Background())

		// then
		assert.ErrorIs(t, err, entities.ErrValidation)
	})

	t.Run("should fail on an oversized file", func(t *testing.T) {
		t.Parallel()

		// given
		repo, path := newRepository(t)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
		require.NoError(t, os.WriteFile(path, make([]byte, session.MaxSnapshotBytes+1), 0o600))

		// when
		_, err := repo.Load(context.Background())

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "larger than")
	})
}

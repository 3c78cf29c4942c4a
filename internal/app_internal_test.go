//go:build unit

package internal_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/notesync/internal"
	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

type countingSessionManager struct {
	bootstraps int
}

func (c *countingSessionManager) Bootstrap(context.Context) bool {
	c.bootstraps++
	return true
}

func (c *countingSessionManager) Configure(context.Context, commands.ConfigureInput) error { return nil }

func (c *countingSessionManager) Status() commands.SessionStatus { return commands.SessionStatus{} }

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notesync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestAppInternalStart(t *testing.T) {
	t.Run("should load settings in place and bootstrap the session", func(t *testing.T) {
		// given
		settings := entities.DefaultSettings()
		session := &countingSessionManager{}
		app := internal.NewAppInternal(&[]entities.Controller{}, settings, session)
		path := writeConfig(t, "repo:\n  owner: octo\n  name: notes\ntoken: from-file\n")

		// when
		err := app.Start(context.Background(), internal.StartupOptions{ConfigPath: path})

		// then
		require.NoError(t, err)
		assert.Equal(t, "octo", settings.Repo.Owner)
		assert.Equal(t, "from-file", settings.Token)
		assert.Equal(t, 1, session.bootstraps)
	})

	t.Run("should prefer the token flag over the config file", func(t *testing.T) {
		// given
		settings := entities.DefaultSettings()
		app := internal.NewAppInternal(&[]entities.Controller{}, settings, &countingSessionManager{})
		path := writeConfig(t, "token: from-file\n")

		// when
		err := app.Start(context.Background(), internal.StartupOptions{ConfigPath: path, Token: "from-flag"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-flag", settings.Token)
	})

	t.Run("should fall back to the GitHub environment variables", func(t *testing.T) {
		// given
		t.Setenv("NOTESYNC_TOKEN", "")
		t.Setenv("GITHUB_TOKEN", "")
		t.Setenv("GH_TOKEN", "from-gh")
		settings := entities.DefaultSettings()
		app := internal.NewAppInternal(&[]entities.Controller{}, settings, &countingSessionManager{})
		path := writeConfig(t, "autosave_delay: 2s\n")

		// when
		err := app.Start(context.Background(), internal.StartupOptions{ConfigPath: path})

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-gh", settings.Token)
	})

	t.Run("should prefer NOTESYNC_TOKEN over the GitHub variables", func(t *testing.T) {
		// given
		t.Setenv("NOTESYNC_TOKEN", "from-notesync")
		t.Setenv("GITHUB_TOKEN", "from-github")
		settings := entities.DefaultSettings()
		app := internal.NewAppInternal(&[]entities.Controller{}, settings, &countingSessionManager{})
		path := writeConfig(t, "autosave_delay: 2s\n")

		// when
		err := app.Start(context.Background(), internal.StartupOptions{ConfigPath: path})

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-notesync", settings.Token)
	})

	t.Run("should resolve an environment reference passed as the token flag", func(t *testing.T) {
		// given
		t.Setenv("NOTESYNC_FLAG_TOKEN", "from-reference")
		settings := entities.DefaultSettings()
		app := internal.NewAppInternal(&[]entities.Controller{}, settings, &countingSessionManager{})
		path := writeConfig(t, "token: from-file\n")

		// when
		err := app.Start(context.Background(), internal.StartupOptions{ConfigPath: path, Token: "${NOTESYNC_FLAG_TOKEN}"})

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-reference", settings.Token)
	})

	t.Run("should fall back to the environment", func(t *testing.T) {
		// given
		t.Setenv("NOTESYNC_TOKEN", "")
		t.Setenv("GITHUB_TOKEN", "from-env")
		settings := entities.DefaultSettings()
		app := internal.NewAppInternal(&[]entities.Controller{}, settings, &countingSessionManager{})
		path := writeConfig(t, "autosave_delay: 2s\n")

		// when
		err := app.Start(context.Background(), internal.StartupOptions{ConfigPath: path})

		// then
		require.NoError(t, err)
		assert.Equal(t, "from-env", settings.Token)
	})

	t.Run("should fail on a broken config file", func(t *testing.T) {
		// given
		session := &countingSessionManager{}
		app := internal.NewAppInternal(&[]entities.Controller{}, entities.DefaultSettings(), session)
		path := writeConfig(t, "repo: [unclosed\n")

		// when
		err := app.Start(context.Background(), internal.StartupOptions{ConfigPath: path})

		// then
		require.Error(t, err)
		assert.Zero(t, session.bootstraps)
	})
}

//go:build unit

package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
	doubles "github.com/rios0rios0/notesync/test/infrastructure/repositorydoubles"
)

func TestPreviewCommandExecute(t *testing.T) {
	t.Parallel()

	t.Run("should render the in-memory text including unsaved edits", func(t *testing.T) {
		t.Parallel()

		// given
		ctx := context.Background()
		h := newHarness(t).configured()
		h.openSeeded(t, "notes/idea.md", "# idea\n\n")
		h.edit.Edit(ctx, "# idea\n\nunsaved\n")
		preview := commands.NewPreviewCommand(h.session, &doubles.StubRendererRepository{Prefix: "html:"})

		// when
		out, err := preview.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, "html:# idea\n\nunsaved\n", out)
	})

	t.Run("should require an open note", func(t *testing.T) {
		t.Parallel()

		// given
		preview := commands.NewPreviewCommand(entities.NewSession(), &doubles.StubRendererRepository{})

		// when
		_, err := preview.Execute()

		// then
		assert.ErrorIs(t, err, commands.ErrNoDocument)
	})

	t.Run("should wrap renderer failures", func(t *testing.T) {
		t.Parallel()

		// given
		session := entities.NewSession()
		session.Dispatch(entities.DocumentCreated{Path: "a.md", Content: "# a"})
		preview := commands.NewPreviewCommand(session, &doubles.StubRendererRepository{RenderErr: errors.New("bad")})

		// when
		_, err := preview.Execute()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"a.md"`)
	})
}

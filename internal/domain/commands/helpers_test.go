//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/notesync/internal/infrastructure/repositories"
	"github.com/rios0rios0/notesync/test/domain/commanddoubles"
	"github.com/rios0rios0/notesync/test/domain/entitybuilders"
	doubles "github.com/rios0rios0/notesync/test/infrastructure/repositorydoubles"
)

// pasteTime is the fixed clock used for placeholder names.
var pasteTime = time.UnixMilli(1700000000000) //nolint:gochecknoglobals // test fixture

// harness wires real commands around in-memory doubles, the same way the
// dig container does at runtime.
type harness struct {
	session  *entities.Session
	settings *entities.Settings
	store    *doubles.SpySessionRepository
	remote   *doubles.FakeContentRepository
	metrics  *doubles.SpySaveMetricsRepository
	indexes  *doubles.StubSearchIndexRepository
	registry *infraRepos.ContentRegistry
	clock    *commanddoubles.FakeClock
	tokens   []string

	sessionCmd *commands.SessionCommand
	refresh    *commands.RefreshCommand
	save       *commands.SaveCommand
	scheduler  *commands.AutosaveScheduler
	edit       *commands.EditCommand
	open       *commands.OpenCommand
	delete     *commands.DeleteCommand
	branch     *commands.BranchCommand
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		session:  entities.NewSession(),
		settings: entitybuilders.NewSettingsBuilder().WithRepo(entities.RepoRef{}).WithToken("").BuildSettings(),
		store:    &doubles.SpySessionRepository{},
		remote:   doubles.NewFakeContentRepository(),
		metrics:  &doubles.SpySaveMetricsRepository{},
		indexes:  &doubles.StubSearchIndexRepository{},
		registry: infraRepos.NewContentRegistry(),
		clock:    commanddoubles.NewFakeClock(),
	}
	h.registry.Register(entities.DefaultProvider, func(token string) repositories.ContentRepository {
		h.tokens = append(h.tokens, token)
		return h.remote
	})

	h.sessionCmd = commands.NewSessionCommand(h.session, h.store, h.settings)
	h.refresh = commands.NewRefreshCommand(h.session, h.sessionCmd, h.registry, h.settings, h.indexes)
	resolver := commands.NewAssetResolver(h.settings, h.metrics)
	h.save = commands.NewSaveCommand(h.session, h.sessionCmd, resolver, h.refresh, h.registry, h.settings, h.metrics)
	h.scheduler = commands.NewAutosaveScheduler(h.clock, h.save, h.session, h.settings)
	h.edit = commands.NewEditCommand(h.session, h.sessionCmd, h.scheduler, h.settings)
	h.edit.UseAssetNamer(entities.NewTimestampNamer(func() time.Time { return pasteTime }))
	h.open = commands.NewOpenCommand(h.session, h.sessionCmd, h.registry, h.settings)
	h.delete = commands.NewDeleteCommand(h.session, h.sessionCmd, h.refresh, h.registry, h.settings)
	h.branch = commands.NewBranchCommand(h.session, h.sessionCmd, h.refresh, h.registry, h.settings)
	return h
}

// configured points the session at octo/notes with an in-memory credential.
func (h *harness) configured() *harness {
	h.session.SetRepo(entities.RepoRef{Owner: "octo", Name: "notes"})
	h.session.SetCredential("tok", false)
	return h
}

// openSeeded stores content remotely and opens it, returning its token.
func (h *harness) openSeeded(t *testing.T, path, content string) string {
	t.Helper()
	token := h.remote.Seed(path, content)
	_, err := h.open.Open(context.Background(), path, commands.OpenOptions{})
	require.NoError(t, err)
	return token
}

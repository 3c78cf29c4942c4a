package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/notesync/internal/infrastructure/repositories"
)

// Listing is the interface for browsing the notes of the repository.
type Listing interface {
	Refresh(ctx context.Context) ([]entities.FileEntry, error)
	List(query string) ListResult
	ToggleTag(ctx context.Context, tag string) []string
}

// ListResult is a filtered view of the last listing.
type ListResult struct {
	Notes        []entities.FileEntry
	Tags         []string
	SelectedTags []string
	Indexed      bool
}

// RefreshCommand replaces the cached listing with the remote tree and loads
// the reverse search index when the tree carries one.
type RefreshCommand struct {
	session    *entities.Session
	sessionCmd *SessionCommand
	registry   *infraRepos.ContentRegistry
	settings   *entities.Settings
	indexes    repositories.SearchIndexRepository
}

// NewRefreshCommand creates a new RefreshCommand.
func NewRefreshCommand(
	session *entities.Session,
	sessionCmd *SessionCommand,
	registry *infraRepos.ContentRegistry,
	settings *entities.Settings,
	indexes repositories.SearchIndexRepository,
) *RefreshCommand {
	return &RefreshCommand{
		session:    session,
		sessionCmd: sessionCmd,
		registry:   registry,
		settings:   settings,
		indexes:    indexes,
	}
}

// Refresh lists the branch and returns its notes.
func (it *RefreshCommand) Refresh(ctx context.Context) ([]entities.FileEntry, error) {
	repo, client, err := connect(it.session, it.registry, it.settings, "refresh")
	if err != nil {
		return nil, err
	}

	entries, err := client.ListTree(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", repo, err)
	}
	it.session.SetFiles(entries)

	if _, indexed := entities.FindEntry(entries, entities.SearchIndexPath); indexed {
		it.session.SetIndex(it.loadIndex(ctx, client, repo))
	} else {
		it.session.SetIndex(nil)
	}

	notes := entities.NoteFiles(entries)
	logger.Debugf("Listed %d note(s) in %s", len(notes), repo)
	return notes, nil
}

// List filters the cached notes by query and the selected tags.
func (it *RefreshCommand) List(query string) ListResult {
	index := it.session.Index()
	selected := it.session.SelectedTags()

	notes := entities.NoteFiles(it.session.Files())
	notes = entities.FilterFiles(notes, query, index)
	notes = entities.FilterByTags(notes, selected, index)

	return ListResult{
		Notes:        notes,
		Tags:         index.AllTags(),
		SelectedTags: selected,
		Indexed:      index != nil,
	}
}

// ToggleTag selects or clears tag and returns the new selection.
func (it *RefreshCommand) ToggleTag(ctx context.Context, tag string) []string {
	it.session.ToggleTag(tag)
	if err := it.sessionCmd.Persist(ctx); err != nil {
		logger.Warnf("%v", err)
	}
	return it.session.SelectedTags()
}

// loadIndex returns nil for any unreadable or malformed index.
func (it *RefreshCommand) loadIndex(
	ctx context.Context,
	client repositories.ContentRepository,
	repo entities.RepoRef,
) *entities.SearchIndex {
	file, err := client.ReadFile(ctx, repo, entities.SearchIndexPath)
	if err != nil {
		logger.Debugf("Ignoring search index: %v", err)
		return nil
	}
	index, err := it.indexes.Decode([]byte(file.Content))
	if err != nil {
		logger.Debugf("Ignoring malformed search index: %v", err)
		return nil
	}
	return index
}

package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	infraRepos "github.com/rios0rios0/notesync/internal/infrastructure/repositories"
)

// Open is the interface for switching the active document.
type Open interface {
	Open(ctx context.Context, path string, opts OpenOptions) (entities.ActiveDocument, error)
	Create(ctx context.Context, path string, opts OpenOptions) (entities.ActiveDocument, error)
}

// OpenOptions holds runtime options for switching documents.
type OpenOptions struct {
	Force bool // discard unsaved changes of the current note
}

// OpenCommand loads remote notes and starts new ones. Switching away from a
// dirty note requires Force; unsaved edits are then discarded, never merged.
type OpenCommand struct {
	session    *entities.Session
	sessionCmd *SessionCommand
	registry   *infraRepos.ContentRegistry
	settings   *entities.Settings
}

// NewOpenCommand creates a new OpenCommand.
func NewOpenCommand(
	session *entities.Session,
	sessionCmd *SessionCommand,
	registry *infraRepos.ContentRegistry,
	settings *entities.Settings,
) *OpenCommand {
	return &OpenCommand{session: session, sessionCmd: sessionCmd, registry: registry, settings: settings}
}

// Open reads path from the remote store and makes it the active document.
func (it *OpenCommand) Open(ctx context.Context, path string, opts OpenOptions) (entities.ActiveDocument, error) {
	if err := it.checkSwitch(opts); err != nil {
		return entities.ActiveDocument{}, err
	}

	repo, client, err := connect(it.session, it.registry, it.settings, "open")
	if err != nil {
		return entities.ActiveDocument{}, err
	}

	file, err := client.ReadFile(ctx, repo, path)
	if err != nil {
		return entities.ActiveDocument{}, fmt.Errorf("failed to open %q: %w", path, err)
	}

	it.sessionCmd.Dispatch(ctx, entities.DocumentLoaded{Path: path, Content: file.Content, Token: file.Token})
	logger.Infof("Opened %q", path)

	doc, _ := it.session.Document()
	return doc, nil
}

// Create starts a never-saved note at path with a heading named after it.
func (it *OpenCommand) Create(ctx context.Context, path string, opts OpenOptions) (entities.ActiveDocument, error) {
	if err := entities.ValidateNotePath(path); err != nil {
		return entities.ActiveDocument{}, err
	}
	if err := it.checkSwitch(opts); err != nil {
		return entities.ActiveDocument{}, err
	}
	if _, exists := entities.FindEntry(it.session.Files(), path); exists {
		return entities.ActiveDocument{}, entities.NewValidationError("create", path, "a note with this path already exists")
	}

	it.sessionCmd.Dispatch(ctx, entities.DocumentCreated{Path: path, Content: entities.NewNoteContent(path)})
	logger.Infof("Created %q (not saved yet)", path)

	doc, _ := it.session.Document()
	return doc, nil
}

func (it *OpenCommand) checkSwitch(opts OpenOptions) error {
	if it.session.IsDirty() && !opts.Force {
		return ErrUnsavedChanges
	}
	return nil
}

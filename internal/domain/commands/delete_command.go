package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	infraRepos "github.com/rios0rios0/notesync/internal/infrastructure/repositories"
)

// Delete is the interface for removing notes from the remote store.
type Delete interface {
	Execute(ctx context.Context, path string) error
}

// DeleteCommand removes a note using the latest token known for it. A stale
// token is rejected by the remote store and reported, never retried.
type DeleteCommand struct {
	session    *entities.Session
	sessionCmd *SessionCommand
	refresh    *RefreshCommand
	registry   *infraRepos.ContentRegistry
	settings   *entities.Settings
}

// NewDeleteCommand creates a new DeleteCommand.
func NewDeleteCommand(
	session *entities.Session,
	sessionCmd *SessionCommand,
	refresh *RefreshCommand,
	registry *infraRepos.ContentRegistry,
	settings *entities.Settings,
) *DeleteCommand {
	return &DeleteCommand{
		session:    session,
		sessionCmd: sessionCmd,
		refresh:    refresh,
		registry:   registry,
		settings:   settings,
	}
}

// Execute deletes path, or the active note when path is empty. Deleting the
// active note closes it.
func (it *DeleteCommand) Execute(ctx context.Context, path string) error {
	doc, hasDoc := it.session.Document()
	if path == "" {
		if !hasDoc {
			return ErrNoDocument
		}
		path = doc.Path
	}
	isActive := hasDoc && doc.Path == path

	// A never-saved note only exists locally.
	if isActive && doc.IsNew() {
		it.sessionCmd.Dispatch(ctx, entities.DocumentClosed{})
		logger.Infof("Discarded unsaved note %q", path)
		return nil
	}

	repo, client, err := connect(it.session, it.registry, it.settings, "delete")
	if err != nil {
		return err
	}

	token := ""
	if isActive {
		token = doc.Token
	} else if entry, listed := entities.FindEntry(it.session.Files(), path); listed {
		token = entry.Token
	} else {
		return entities.NewSyncError(entities.KindNotFound, "delete", path, errors.New("not in the last listing; run `notesync ls` first"))
	}

	if err = client.DeleteFile(ctx, repo, path, token, it.settings.Messages.Delete); err != nil {
		return fmt.Errorf("failed to delete %q: %w", path, err)
	}
	logger.Infof("Deleted %q", path)

	if isActive {
		it.sessionCmd.Dispatch(ctx, entities.DocumentClosed{})
	}
	if _, refreshErr := it.refresh.Refresh(ctx); refreshErr != nil {
		logger.Warnf("Failed to refresh listing after delete: %v", refreshErr)
	}
	return nil
}

package commands

import (
	"errors"
	"fmt"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/notesync/internal/infrastructure/repositories"
)

// ErrUnsavedChanges is returned when an operation would discard the dirty
// active document and the caller did not force it.
var ErrUnsavedChanges = errors.New("the active note has unsaved changes")

// ErrNoDocument is returned by operations that need an active document.
var ErrNoDocument = errors.New("no note is open")

// connect resolves the configured target and a client for it. A missing repo
// or credential fails here, before any remote call.
func connect(
	session *entities.Session,
	registry *infraRepos.ContentRegistry,
	settings *entities.Settings,
	op string,
) (entities.RepoRef, repositories.ContentRepository, error) {
	repo, token, err := session.RequireConfigured(op)
	if err != nil {
		return entities.RepoRef{}, nil, err
	}
	client, err := registry.Get(settings.Provider, token)
	if err != nil {
		return entities.RepoRef{}, nil, fmt.Errorf("failed to initialize provider %q: %w", settings.Provider, err)
	}
	return repo, client, nil
}

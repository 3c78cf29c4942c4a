package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

// SessionManager is the interface for loading, configuring and inspecting the session.
type SessionManager interface {
	Bootstrap(ctx context.Context) bool
	Configure(ctx context.Context, input ConfigureInput) error
	Status() SessionStatus
}

// ConfigureInput carries a repository target and credential chosen by the user.
type ConfigureInput struct {
	Repo     entities.RepoRef
	Token    string // empty keeps the current credential
	Remember bool
	Force    bool // discard unsaved changes when the target changes
}

// SessionStatus is a read-only view of the session.
type SessionStatus struct {
	Repo          entities.RepoRef
	Configured    bool
	HasCredential bool
	Remembered    bool
	Document      *entities.ActiveDocument
	PendingAssets int
	Tags          []string
}

// SessionCommand owns the session lifecycle: restoring it at startup,
// applying editor events and persisting the result.
type SessionCommand struct {
	session  *entities.Session
	store    repositories.SessionRepository
	settings *entities.Settings
}

// NewSessionCommand creates a new SessionCommand.
func NewSessionCommand(
	session *entities.Session,
	store repositories.SessionRepository,
	settings *entities.Settings,
) *SessionCommand {
	return &SessionCommand{session: session, store: store, settings: settings}
}

// Bootstrap restores the stored session and layers the configured settings on
// top: the file's repo seeds an empty session, a configured token always wins.
// It reports whether a stored session was found.
func (it *SessionCommand) Bootstrap(ctx context.Context) bool {
	restored := it.Restore(ctx)

	if _, ok := it.session.Repo(); !ok && !it.settings.Repo.IsZero() {
		it.session.SetRepo(it.settings.Repo)
	}
	if it.settings.Token != "" {
		remember := it.settings.RememberToken || it.session.RememberCredential()
		it.session.SetCredential(it.settings.Token, remember)
	}
	return restored
}

// Restore loads the stored snapshot. Every failure degrades to an empty session.
func (it *SessionCommand) Restore(ctx context.Context) bool {
	snapshot, err := it.store.Load(ctx)
	if err != nil {
		logger.Warnf("Ignoring stored session: %v", err)
		return false
	}
	if snapshot == nil {
		logger.Debug("No stored session found")
		return false
	}
	it.session.Restore(*snapshot)
	logger.Debugf("Restored session (active note %q)", snapshot.ActivePath)
	return true
}

// Persist writes the current snapshot. The credential is included only when
// the user chose to remember it.
func (it *SessionCommand) Persist(ctx context.Context) error {
	opts := repositories.SaveSessionOptions{IncludeCredential: it.session.RememberCredential()}
	if err := it.store.Save(ctx, it.session.Snapshot(), opts); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

// Dispatch applies an editor event, runs the persistence effect and returns
// the effects left for the caller.
func (it *SessionCommand) Dispatch(ctx context.Context, event entities.Event) []entities.Effect {
	var remaining []entities.Effect
	for _, effect := range it.session.Dispatch(event) {
		if effect != entities.EffectPersistSession {
			remaining = append(remaining, effect)
			continue
		}
		if err := it.Persist(ctx); err != nil {
			logger.Warnf("%v", err)
		}
	}
	return remaining
}

// Configure points the session at a repository and stores the credential.
// Changing the target closes the active note.
func (it *SessionCommand) Configure(ctx context.Context, input ConfigureInput) error {
	repo := input.Repo.WithDefaults()
	if err := repo.Validate(); err != nil {
		return err
	}

	current, _ := it.session.Repo()
	changed := current != repo
	if changed && it.session.IsDirty() && !input.Force {
		return ErrUnsavedChanges
	}

	it.session.SetRepo(repo)
	if input.Token != "" {
		it.session.SetCredential(input.Token, input.Remember)
	} else {
		it.session.SetCredential(it.session.Credential(), input.Remember)
	}

	if changed {
		it.session.SetFiles(nil)
		it.session.SetIndex(nil)
		it.Dispatch(ctx, entities.DocumentClosed{})
	} else if err := it.Persist(ctx); err != nil {
		logger.Warnf("%v", err)
	}

	logger.Infof("Configured repository %s", repo)
	return nil
}

// Status reports the session without changing it.
func (it *SessionCommand) Status() SessionStatus {
	repo, configured := it.session.Repo()
	editor := it.session.Editor()
	return SessionStatus{
		Repo:          repo,
		Configured:    configured,
		HasCredential: it.session.Credential() != "",
		Remembered:    it.session.RememberCredential(),
		Document:      editor.Document,
		PendingAssets: len(editor.Pending),
		Tags:          it.session.SelectedTags(),
	}
}

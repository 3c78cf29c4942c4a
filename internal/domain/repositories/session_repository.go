package repositories

import (
	"context"

	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// SaveSessionOptions controls a single session write.
type SaveSessionOptions struct {
	// IncludeCredential persists the credential for this write only; every
	// write without it stores no credential.
	IncludeCredential bool
}

// SessionRepository persists the session snapshot locally.
type SessionRepository interface {
	// Load returns the stored snapshot, or nil when there is none. A non-nil
	// error explains why nothing usable was found; callers degrade to an empty
	// session instead of surfacing it.
	Load(ctx context.Context) (*entities.SessionSnapshot, error)

	// Save replaces the stored snapshot.
	Save(ctx context.Context, snapshot entities.SessionSnapshot, opts SaveSessionOptions) error
}

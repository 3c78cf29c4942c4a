package repositories

import (
	"context"

	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// ContentRepository abstracts the remote store's HTTP content API. Every
// method performs exactly one logical remote operation, never retries, and
// fails with an *entities.SyncError.
type ContentRepository interface {
	// ListTree returns the full recursive listing of the branch.
	ListTree(ctx context.Context, repo entities.RepoRef) ([]entities.FileEntry, error)

	// ReadFile fetches and decodes a single file.
	ReadFile(ctx context.Context, repo entities.RepoRef, path string) (entities.RemoteFile, error)

	// WriteFile creates input.Path when input.Token is empty, otherwise updates
	// it only if input.Token still matches the remote state. Returns the new token.
	WriteFile(ctx context.Context, repo entities.RepoRef, input entities.WriteInput) (string, error)

	// DeleteFile removes path if token still matches the remote state.
	DeleteFile(ctx context.Context, repo entities.RepoRef, path, token, message string) error

	// ListBranches returns the branch names of the repository.
	ListBranches(ctx context.Context, repo entities.RepoRef) ([]string, error)
}

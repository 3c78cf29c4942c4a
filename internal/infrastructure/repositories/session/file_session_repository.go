package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

const (
	// MaxSnapshotBytes bounds the stored record; larger snapshots are not written.
	MaxSnapshotBytes = 5 << 20

	dirMode  = 0o700
	fileMode = 0o600
)

// FileSessionRepository stores the session snapshot as a single JSON file.
// The path is read from the settings on every call.
type FileSessionRepository struct {
	settings *entities.Settings
}

// NewFileSessionRepository creates a new FileSessionRepository.
func NewFileSessionRepository(settings *entities.Settings) *FileSessionRepository {
	return &FileSessionRepository{settings: settings}
}

var _ repositories.SessionRepository = (*FileSessionRepository)(nil)

func (r *FileSessionRepository) Load(_ context.Context) (*entities.SessionSnapshot, error) {
	path := r.path()
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat session file %q: %w", path, err)
	}
	if info.Size() > MaxSnapshotBytes {
		return nil, fmt.Errorf("session file %q is larger than %d bytes", path, MaxSnapshotBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file %q: %w", path, err)
	}

	var snapshot entities.SessionSnapshot
	if err = json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse session file %q: %w", path, err)
	}
	if snapshot.Version != entities.SessionSnapshotVersion {
		return nil, fmt.Errorf("unsupported session version %d", snapshot.Version)
	}
	if snapshot.Repo != nil {
		if err = snapshot.Repo.Validate(); err != nil {
			return nil, fmt.Errorf("stored repo: %w", err)
		}
	}
	return &snapshot, nil
}

func (r *FileSessionRepository) Save(
	_ context.Context,
	snapshot entities.SessionSnapshot,
	opts repositories.SaveSessionOptions,
) error {
	if !opts.IncludeCredential {
		snapshot = snapshot.WithoutCredential()
	}
	snapshot.Version = entities.SessionSnapshotVersion
	if snapshot.Tags == nil {
		snapshot.Tags = []string{}
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if len(data) > MaxSnapshotBytes {
		return fmt.Errorf("session snapshot is %d bytes, over the %d byte limit", len(data), MaxSnapshotBytes)
	}

	path := r.path()
	if err = os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	if err = writeFileAtomic(path, data, fileMode); err != nil {
		return fmt.Errorf("failed to write session file %q: %w", path, err)
	}
	return nil
}

func (r *FileSessionRepository) path() string {
	if r.settings.SessionFile != "" {
		return r.settings.SessionFile
	}
	return entities.DefaultSessionFile()
}

func writeFileAtomic(path string, data []byte, mode os.FileMode) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()
	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Chmod(mode); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}

package workingcopy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

const fileMode = 0o600

// FsnotifyWorkingCopyRepository keeps the working copy in a plain file and
// watches it with fsnotify.
type FsnotifyWorkingCopyRepository struct{}

// NewFsnotifyWorkingCopyRepository creates a new FsnotifyWorkingCopyRepository.
func NewFsnotifyWorkingCopyRepository() *FsnotifyWorkingCopyRepository {
	return &FsnotifyWorkingCopyRepository{}
}

var _ repositories.WorkingCopyRepository = (*FsnotifyWorkingCopyRepository)(nil)

func (r *FsnotifyWorkingCopyRepository) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read working copy %q: %w", path, err)
	}
	return string(data), nil
}

func (r *FsnotifyWorkingCopyRepository) Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), fileMode); err != nil {
		return fmt.Errorf("failed to write working copy %q: %w", path, err)
	}
	return nil
}

// Watch observes the parent directory, since many editors save by writing a
// new file and renaming it over the old one.
func (r *FsnotifyWorkingCopyRepository) Watch(
	ctx context.Context,
	path string,
	onChange func(content string),
) error {
	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err = watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch directory of %s: %w", target, err)
	}

	last, _ := r.Read(target)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			content, readErr := r.Read(target)
			if readErr != nil {
				logger.Debugf("Skipping unreadable working copy: %v", readErr)
				continue
			}
			if content == last {
				continue
			}
			last = content
			onChange(content)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("Working copy watcher error: %v", watchErr)
		}
	}
}

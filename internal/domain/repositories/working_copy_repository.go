package repositories

import "context"

// WorkingCopyRepository mirrors the active document into a local file that
// any editor can change.
type WorkingCopyRepository interface {
	Read(path string) (string, error)
	Write(path, content string) error
	// Watch calls onChange with the file content after every change until ctx
	// is done.
	Watch(ctx context.Context, path string, onChange func(content string)) error
}

package entities

import (
	"path"
	"strings"
)

// NoteExtension is the suffix every note path must carry.
const NoteExtension = ".md"

// ActiveDocument is the single document being edited in a session.
// Token is empty for documents that were never saved.
type ActiveDocument struct {
	Path    string
	Content string
	Token   string
	Dirty   bool
}

// Dir returns the directory part of the document path ("" at the repository root).
func (d ActiveDocument) Dir() string {
	dir := path.Dir(d.Path)
	if dir == "." || dir == "/" {
		return ""
	}
	return dir
}

// IsNew reports whether the document has never been committed.
func (d ActiveDocument) IsNew() bool {
	return d.Token == ""
}

// ValidateNotePath rejects paths that cannot name a note in the repository.
func ValidateNotePath(notePath string) error {
	trimmed := strings.TrimSpace(notePath)
	switch {
	case trimmed == "":
		return NewValidationError("validate path", notePath, "path is required")
	case trimmed != notePath:
		return NewValidationError("validate path", notePath, "path must not start or end with spaces")
	case strings.HasPrefix(notePath, "/"):
		return NewValidationError("validate path", notePath, "path must be relative to the repository root")
	case !strings.HasSuffix(notePath, NoteExtension):
		return NewValidationError("validate path", notePath, "filename must end with "+NoteExtension)
	case path.Base(notePath) == NoteExtension:
		return NewValidationError("validate path", notePath, "filename must not be empty")
	}
	for _, segment := range strings.Split(notePath, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return NewValidationError("validate path", notePath, "path contains an empty or relative segment")
		}
	}
	return nil
}

// NewNoteContent is the initial body of a freshly created note: a heading
// named after the file.
func NewNoteContent(notePath string) string {
	title := strings.TrimSuffix(path.Base(notePath), NoteExtension)
	return "# " + title + "\n\n"
}

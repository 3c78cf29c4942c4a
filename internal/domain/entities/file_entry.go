package entities

import "strings"

// FileKind distinguishes files from directories in a tree listing.
type FileKind string

const (
	EntryFile FileKind = "file"
	EntryDir  FileKind = "dir"
)

// FileEntry is one row of a recursive tree listing. Listings are replaced
// wholesale on every refresh, never patched.
type FileEntry struct {
	Path  string
	Token string
	Kind  FileKind
}

// RemoteFile is the decoded content of a single file plus its concurrency token.
type RemoteFile struct {
	Content string
	Token   string
}

// WriteInput describes a create-or-update of a single path. An empty Token
// means create; Binary means Content is already base64 encoded.
type WriteInput struct {
	Path    string
	Content string
	Token   string
	Message string
	Binary  bool
}

// NoteFiles keeps the markdown files of a listing, preserving order.
func NoteFiles(entries []FileEntry) []FileEntry {
	notes := make([]FileEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Kind == EntryFile && strings.HasSuffix(entry.Path, NoteExtension) {
			notes = append(notes, entry)
		}
	}
	return notes
}

// FindEntry returns the entry at path, if listed.
func FindEntry(entries []FileEntry, path string) (FileEntry, bool) {
	for _, entry := range entries {
		if entry.Path == path {
			return entry, true
		}
	}
	return FileEntry{}, false
}

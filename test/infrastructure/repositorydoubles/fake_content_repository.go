//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, fakes) for
// repository interfaces. These are hand-crafted implementations, no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"encoding/base64"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

// FakeContentRepository is an in-memory remote store. Tokens are Git blob
// SHAs of the stored bytes, so stale tokens are rejected exactly like the
// real API does.
type FakeContentRepository struct {
	mu       sync.Mutex
	files    map[string][]byte
	Branches []string

	// --- failure injection ---
	// WriteErrs fails writes to a path with the mapped error, once per entry.
	WriteErrs map[string][]error
	ListErr   error
	ReadErrs  map[string]error

	// --- hooks ---
	// BeforeWrite runs before every write, outside the lock.
	BeforeWrite func(input entities.WriteInput)

	// --- spy ---
	Writes  []entities.WriteInput
	Deletes []string
	Reads   []string
}

// NewFakeContentRepository creates an empty store.
func NewFakeContentRepository() *FakeContentRepository {
	return &FakeContentRepository{
		files:     make(map[string][]byte),
		WriteErrs: make(map[string][]error),
		ReadErrs:  make(map[string]error),
		Branches:  []string{entities.DefaultBranch},
	}
}

var _ repositories.ContentRepository = (*FakeContentRepository)(nil)

// Seed stores content at path and returns its token.
func (f *FakeContentRepository) Seed(path, content string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.files[path] = []byte(content)
	return entities.BlobToken([]byte(content))
}

// Content returns what is stored at path.
func (f *FakeContentRepository) Content(path string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	return string(data), ok
}

// TokenOf returns the current token of path, or "" when absent.
func (f *FakeContentRepository) TokenOf(path string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.files[path]
	if !ok {
		return ""
	}
	return entities.BlobToken(data)
}

// Paths lists the stored paths, sorted.
func (f *FakeContentRepository) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	paths := make([]string, 0, len(f.files))
	for path := range f.files {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// WritesTo counts write attempts for path.
func (f *FakeContentRepository) WritesTo(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, write := range f.Writes {
		if write.Path == path {
			count++
		}
	}
	return count
}

func (f *FakeContentRepository) ListTree(_ context.Context, _ entities.RepoRef) ([]entities.FileEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	dirs := map[string]struct{}{}
	var entries []entities.FileEntry
	for path, data := range f.files {
		entries = append(entries, entities.FileEntry{Path: path, Token: entities.BlobToken(data), Kind: entities.EntryFile})
		parts := strings.Split(path, "/")
		for i := 1; i < len(parts); i++ {
			dirs[strings.Join(parts[:i], "/")] = struct{}{}
		}
	}
	for dir := range dirs {
		entries = append(entries, entities.FileEntry{Path: dir, Kind: entities.EntryDir})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func (f *FakeContentRepository) ReadFile(_ context.Context, _ entities.RepoRef, path string) (entities.RemoteFile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Reads = append(f.Reads, path)
	if err := f.ReadErrs[path]; err != nil {
		return entities.RemoteFile{}, err
	}
	data, ok := f.files[path]
	if !ok {
		return entities.RemoteFile{}, entities.NewSyncError(entities.KindNotFound, "read", path, nil)
	}
	return entities.RemoteFile{Content: string(data), Token: entities.BlobToken(data)}, nil
}

func (f *FakeContentRepository) WriteFile(
	_ context.Context,
	_ entities.RepoRef,
	input entities.WriteInput,
) (string, error) {
	if f.BeforeWrite != nil {
		f.BeforeWrite(input)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Writes = append(f.Writes, input)

	if queued := f.WriteErrs[input.Path]; len(queued) > 0 {
		f.WriteErrs[input.Path] = queued[1:]
		return "", queued[0]
	}

	content := []byte(input.Content)
	if input.Binary {
		decoded, err := base64.StdEncoding.DecodeString(input.Content)
		if err != nil {
			return "", entities.NewValidationError("write", input.Path, "invalid base64")
		}
		content = decoded
	}

	current, exists := f.files[input.Path]
	switch {
	case input.Token == "" && exists:
		return "", entities.NewSyncError(entities.KindConflict, "write", input.Path, errors.New("file already exists"))
	case input.Token != "" && !exists:
		return "", entities.NewSyncError(entities.KindNotFound, "write", input.Path, nil)
	case input.Token != "" && entities.BlobToken(current) != input.Token:
		return "", entities.NewSyncError(entities.KindConflict, "write", input.Path, errors.New("token mismatch"))
	}

	f.files[input.Path] = content
	return entities.BlobToken(content), nil
}

func (f *FakeContentRepository) DeleteFile(
	_ context.Context,
	_ entities.RepoRef,
	path, token, _ string,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deletes = append(f.Deletes, path)

	current, exists := f.files[path]
	switch {
	case token == "":
		return entities.NewValidationError("delete", path, "token required")
	case !exists:
		return entities.NewSyncError(entities.KindNotFound, "delete", path, nil)
	case entities.BlobToken(current) != token:
		return entities.NewSyncError(entities.KindConflict, "delete", path, errors.New("token mismatch"))
	}
	delete(f.files, path)
	return nil
}

func (f *FakeContentRepository) ListBranches(_ context.Context, _ entities.RepoRef) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Branches...), nil
}

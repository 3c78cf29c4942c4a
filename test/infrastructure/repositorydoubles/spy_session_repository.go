//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

// SavedSession records one Save call.
type SavedSession struct {
	Snapshot entities.SessionSnapshot
	Opts     repositories.SaveSessionOptions
}

// SpySessionRepository implements repositories.SessionRepository in memory,
// honouring the credential option like the file repository does.
type SpySessionRepository struct {
	mu sync.Mutex

	// --- Load ---
	Stored  *entities.SessionSnapshot
	LoadErr error

	// --- Save ---
	SaveErr error
	Saves   []SavedSession
}

var _ repositories.SessionRepository = (*SpySessionRepository)(nil)

func (s *SpySessionRepository) Load(_ context.Context) (*entities.SessionSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	if s.Stored == nil {
		return nil, nil
	}
	snapshot := *s.Stored
	return &snapshot, nil
}

func (s *SpySessionRepository) Save(
	_ context.Context,
	snapshot entities.SessionSnapshot,
	opts repositories.SaveSessionOptions,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Saves = append(s.Saves, SavedSession{Snapshot: snapshot, Opts: opts})
	if s.SaveErr != nil {
		return s.SaveErr
	}
	if !opts.IncludeCredential {
		snapshot = snapshot.WithoutCredential()
	}
	s.Stored = &snapshot
	return nil
}

// SaveCount returns how many times Save was called.
func (s *SpySessionRepository) SaveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Saves)
}

// LastSave returns the most recent Save call.
func (s *SpySessionRepository) LastSave() (SavedSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Saves) == 0 {
		return SavedSession{}, false
	}
	return s.Saves[len(s.Saves)-1], true
}

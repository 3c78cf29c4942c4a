//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sync"
	"time"

	"github.com/rios0rios0/notesync/internal/domain/commands"
)

// StubSaveCommand is a stub implementation of commands.Save.
type StubSaveCommand struct {
	mu         sync.Mutex
	Result     commands.SaveResult
	ExecuteErr error
	// FiredAt records the fake time of every call when Clock is set.
	Clock   *FakeClock
	FiredAt []time.Duration
	calls   int
}

var _ commands.Save = (*StubSaveCommand)(nil)

func (s *StubSaveCommand) Execute(_ context.Context) (commands.SaveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.Clock != nil {
		s.FiredAt = append(s.FiredAt, s.Clock.Now())
	}
	return s.Result, s.ExecuteErr
}

// Calls returns how many times Execute ran.
func (s *StubSaveCommand) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

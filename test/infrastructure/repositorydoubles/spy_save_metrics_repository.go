//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"sync"
	"time"

	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

// SpySaveMetricsRepository counts what the save pipeline reports.
type SpySaveMetricsRepository struct {
	mu       sync.Mutex
	Outcomes []string
	ErrKinds []string
	Rejected int
	Assets   int
	Bytes    int
}

var _ repositories.SaveMetricsRepository = (*SpySaveMetricsRepository)(nil)

func (s *SpySaveMetricsRepository) SaveFinished(outcome string, errKind string, _ time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Outcomes = append(s.Outcomes, outcome)
	s.ErrKinds = append(s.ErrKinds, errKind)
}

func (s *SpySaveMetricsRepository) SaveRejected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Rejected++
}

func (s *SpySaveMetricsRepository) AssetUploaded(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Assets++
	s.Bytes += size
}

// RejectedCount returns how many requests were dropped as busy.
func (s *SpySaveMetricsRepository) RejectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Rejected
}

//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

// StubSearchIndexRepository returns a fixed index or error.
type StubSearchIndexRepository struct {
	Index     *entities.SearchIndex
	DecodeErr error
	Decoded   [][]byte
}

var _ repositories.SearchIndexRepository = (*StubSearchIndexRepository)(nil)

func (s *StubSearchIndexRepository) Decode(raw []byte) (*entities.SearchIndex, error) {
	s.Decoded = append(s.Decoded, raw)
	if s.DecodeErr != nil {
		return nil, s.DecodeErr
	}
	return s.Index, nil
}

// StubRendererRepository echoes the markdown wrapped in a fixed prefix.
type StubRendererRepository struct {
	Prefix    string
	RenderErr error
}

var _ repositories.RendererRepository = (*StubRendererRepository)(nil)

func (s *StubRendererRepository) Render(markdown string) (string, error) {
	if s.RenderErr != nil {
		return "", s.RenderErr
	}
	return s.Prefix + markdown, nil
}

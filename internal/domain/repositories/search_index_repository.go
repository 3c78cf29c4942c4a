package repositories

import "github.com/rios0rios0/notesync/internal/domain/entities"

// SearchIndexRepository decodes the externally built reverse index.
type SearchIndexRepository interface {
	// Decode validates and parses raw index JSON.
	Decode(raw []byte) (*entities.SearchIndex, error)
}

package commands

import (
	"fmt"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

// Preview is the interface for rendering the active document.
type Preview interface {
	Execute() (string, error)
}

// PreviewCommand renders the active document, unsaved edits included.
type PreviewCommand struct {
	session  *entities.Session
	renderer repositories.RendererRepository
}

// NewPreviewCommand creates a new PreviewCommand.
func NewPreviewCommand(session *entities.Session, renderer repositories.RendererRepository) *PreviewCommand {
	return &PreviewCommand{session: session, renderer: renderer}
}

func (it *PreviewCommand) Execute() (string, error) {
	doc, ok := it.session.Document()
	if !ok {
		return "", ErrNoDocument
	}
	out, err := it.renderer.Render(doc.Content)
	if err != nil {
		return "", fmt.Errorf("failed to render %q: %w", doc.Path, err)
	}
	return out, nil
}

package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

// GoldmarkRendererRepository renders CommonMark to HTML.
type GoldmarkRendererRepository struct {
	md goldmark.Markdown
}

// NewGoldmarkRendererRepository creates a renderer with goldmark's defaults.
func NewGoldmarkRendererRepository() *GoldmarkRendererRepository {
	return &GoldmarkRendererRepository{md: goldmark.New()}
}

var _ repositories.RendererRepository = (*GoldmarkRendererRepository)(nil)

func (r *GoldmarkRendererRepository) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return buf.String(), nil
}

package repositories

// RendererRepository turns document markdown into a display format.
type RendererRepository interface {
	Render(markdown string) (string, error)
}

//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/rios0rios0/notesync/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// DocumentBuilder helps create test documents with a fluent interface.
type DocumentBuilder struct {
	*testkit.BaseBuilder
	path    string
	content string
	token   string
	dirty   bool
}

// NewDocumentBuilder creates a new document builder with sensible defaults.
func NewDocumentBuilder() *DocumentBuilder {
	return &DocumentBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		path:        "notes/idea.md",
		content:     "# idea\n\n",
	}
}

// WithPath sets the document path.
func (b *DocumentBuilder) WithPath(path string) *DocumentBuilder {
	b.path = path
	return b
}

// WithContent sets the document text.
func (b *DocumentBuilder) WithContent(content string) *DocumentBuilder {
	b.content = content
	return b
}

// WithToken sets the concurrency token.
func (b *DocumentBuilder) WithToken(token string) *DocumentBuilder {
	b.token = token
	return b
}

// WithSyncedToken sets the token to the blob SHA of the current content.
func (b *DocumentBuilder) WithSyncedToken() *DocumentBuilder {
	b.token = entities.BlobToken([]byte(b.content))
	return b
}

// WithDirty sets whether the document has unsaved changes.
func (b *DocumentBuilder) WithDirty(dirty bool) *DocumentBuilder {
	b.dirty = dirty
	return b
}

// Build creates the document (satisfies testkit.Builder interface).
func (b *DocumentBuilder) Build() interface{} {
	return b.BuildDocument()
}

// BuildDocument creates the document with a concrete return type.
func (b *DocumentBuilder) BuildDocument() entities.ActiveDocument {
	return entities.ActiveDocument{
		Path:    b.path,
		Content: b.content,
		Token:   b.token,
		Dirty:   b.dirty,
	}
}

// BuildLoadedEvent creates the event that loads this document into a session.
func (b *DocumentBuilder) BuildLoadedEvent() entities.DocumentLoaded {
	return entities.DocumentLoaded{Path: b.path, Content: b.content, Token: b.token}
}

// Reset clears the builder state, allowing it to be reused.
func (b *DocumentBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.path = "notes/idea.md"
	b.content = "# idea\n\n"
	b.token = ""
	b.dirty = false
	return b
}

// Clone creates a deep copy of the DocumentBuilder.
func (b *DocumentBuilder) Clone() testkit.Builder {
	return &DocumentBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		path:        b.path,
		content:     b.content,
		token:       b.token,
		dirty:       b.dirty,
	}
}

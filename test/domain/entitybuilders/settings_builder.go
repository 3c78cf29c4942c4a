//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"time"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	testkit "github.com/rios0rios0/testkit/pkg/test"
)

// SettingsBuilder helps create test settings with a fluent interface.
type SettingsBuilder struct {
	*testkit.BaseBuilder
	repo          entities.RepoRef
	token         string
	sessionFile   string
	autosaveDelay time.Duration
	assetNaming   string
}

// NewSettingsBuilder creates a new settings builder with sensible defaults.
func NewSettingsBuilder() *SettingsBuilder {
	return &SettingsBuilder{
		BaseBuilder:   testkit.NewBaseBuilder(),
		repo:          entities.RepoRef{Owner: "octo", Name: "notes", Branch: entities.DefaultBranch},
		token:         "test-token",
		autosaveDelay: entities.DefaultAutosaveDelay,
		assetNaming:   entities.NamingTimestamp,
	}
}

// WithRepo sets the target repository.
func (b *SettingsBuilder) WithRepo(repo entities.RepoRef) *SettingsBuilder {
	b.repo = repo
	return b
}

// WithToken sets the access token.
func (b *SettingsBuilder) WithToken(token string) *SettingsBuilder {
	b.token = token
	return b
}

// WithSessionFile sets the session file path.
func (b *SettingsBuilder) WithSessionFile(path string) *SettingsBuilder {
	b.sessionFile = path
	return b
}

// WithAutosaveDelay sets the debounce delay.
func (b *SettingsBuilder) WithAutosaveDelay(delay time.Duration) *SettingsBuilder {
	b.autosaveDelay = delay
	return b
}

// WithAssetNaming sets the asset naming strategy.
func (b *SettingsBuilder) WithAssetNaming(strategy string) *SettingsBuilder {
	b.assetNaming = strategy
	return b
}

// Build creates the settings (satisfies testkit.Builder interface).
func (b *SettingsBuilder) Build() interface{} {
	return b.BuildSettings()
}

// BuildSettings creates the settings with defaults applied for every field
// the builder does not set.
func (b *SettingsBuilder) BuildSettings() *entities.Settings {
	settings := entities.DefaultSettings()
	settings.Repo = b.repo
	settings.Token = b.token
	settings.AutosaveDelay = b.autosaveDelay
	settings.AssetNaming = b.assetNaming
	if b.sessionFile != "" {
		settings.SessionFile = b.sessionFile
	}
	return settings
}

// Reset clears the builder state, allowing it to be reused.
func (b *SettingsBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	b.repo = entities.RepoRef{Owner: "octo", Name: "notes", Branch: entities.DefaultBranch}
	b.token = "test-token"
	b.sessionFile = ""
	b.autosaveDelay = entities.DefaultAutosaveDelay
	b.assetNaming = entities.NamingTimestamp
	return b
}

// Clone creates a deep copy of the SettingsBuilder.
func (b *SettingsBuilder) Clone() testkit.Builder {
	return &SettingsBuilder{
		BaseBuilder:   b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		repo:          b.repo,
		token:         b.token,
		sessionFile:   b.sessionFile,
		autosaveDelay: b.autosaveDelay,
		assetNaming:   b.assetNaming,
	}
}

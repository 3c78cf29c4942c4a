package entities

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	configEntities "github.com/rios0rios0/gitforge/pkg/config/domain/entities"
	"gopkg.in/yaml.v3"
)

const (
	AppName              = "notesync"
	DefaultProvider      = "github"
	DefaultAutosaveDelay = 2500 * time.Millisecond
	DefaultTimeout       = 30 * time.Second
)

// Settings is the notesync configuration file.
type Settings struct {
	Provider      string         `yaml:"provider"`       // "github"
	APIURL        string         `yaml:"api_url"`        // GitHub Enterprise base URL, empty for github.com
	Repo          RepoRef        `yaml:"repo"`           // target repository
	Token         string         `yaml:"token"`          // Inline, ${ENV_VAR}, or file path
	RememberToken bool           `yaml:"remember_token"` // persist the token in the session file
	SessionFile   string         `yaml:"session_file"`   // defaults to <user config dir>/notesync/session.json
	AutosaveDelay time.Duration  `yaml:"autosave_delay"` // inactivity before an autosave fires
	Timeout       time.Duration  `yaml:"timeout"`        // per-request HTTP timeout
	AssetNaming   string         `yaml:"asset_naming"`   // "timestamp" or "content-hash"
	Messages      CommitMessages `yaml:"messages"`
}

// CommitMessages are the commit messages used for each kind of remote write.
type CommitMessages struct {
	Save   string `yaml:"save"`
	Asset  string `yaml:"asset"`
	Delete string `yaml:"delete"`
}

// DefaultSettings returns the settings used when no file is found.
func DefaultSettings() *Settings {
	settings := &Settings{}
	settings.applyDefaults()
	return settings
}

// NewSettings reads and parses a configuration file, expanding environment
// variables and resolving token file paths.
func NewSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	var settings Settings
	if unmarshalErr := yaml.Unmarshal(data, &settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	settings.Token = configEntities.ResolveToken(settings.Token)
	settings.applyDefaults()

	if validateErr := ValidateSettings(&settings); validateErr != nil {
		return nil, validateErr
	}

	return &settings, nil
}

func (s *Settings) applyDefaults() {
	if s.Provider == "" {
		s.Provider = DefaultProvider
	}
	if s.AutosaveDelay <= 0 {
		s.AutosaveDelay = DefaultAutosaveDelay
	}
	if s.Timeout <= 0 {
		s.Timeout = DefaultTimeout
	}
	if s.AssetNaming == "" {
		s.AssetNaming = NamingTimestamp
	}
	if s.Messages.Save == "" {
		s.Messages.Save = "Update note"
	}
	if s.Messages.Asset == "" {
		s.Messages.Asset = "Add pasted image"
	}
	if s.Messages.Delete == "" {
		s.Messages.Delete = "Delete note"
	}
	if s.SessionFile == "" {
		s.SessionFile = DefaultSessionFile()
	}
	if !s.Repo.IsZero() {
		s.Repo = s.Repo.WithDefaults()
	}
}

// DefaultSessionFile is the session location under the user config directory.
func DefaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, AppName, "session.json")
}

// ValidateSettings checks the values that cannot be defaulted.
func ValidateSettings(settings *Settings) error {
	if settings.Provider != DefaultProvider {
		return fmt.Errorf("provider %q is not supported (only %q)", settings.Provider, DefaultProvider)
	}
	if !settings.Repo.IsZero() {
		if err := settings.Repo.Validate(); err != nil {
			return fmt.Errorf("repo: %w", err)
		}
	}
	if _, err := NewAssetNamer(settings.AssetNaming); err != nil {
		return err
	}
	if settings.APIURL != "" && !strings.HasPrefix(settings.APIURL, "http") {
		return fmt.Errorf("api_url %q must be an http(s) URL", settings.APIURL)
	}
	return nil
}

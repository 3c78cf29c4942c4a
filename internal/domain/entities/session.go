package entities

import (
	"slices"
	"sync"
)

// Session is the editing context shared by every command of one process:
// repository target, credential, remote listing, editor state and tag
// selection. It is created once and handed to constructors; all access goes
// through its methods.
type Session struct {
	mu                 sync.Mutex
	repo               RepoRef
	credential         string
	rememberCredential bool
	files              []FileEntry
	editor             EditorState
	tags               []string
	index              *SearchIndex
}

// NewSession returns an empty, unconfigured session.
func NewSession() *Session {
	return &Session{}
}

// Repo returns the configured target and whether one is set.
func (s *Session) Repo() (RepoRef, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo, !s.repo.IsZero()
}

// SetRepo switches the target. The branch is defaulted.
func (s *Session) SetRepo(ref RepoRef) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repo = ref.WithDefaults()
}

// SetBranch changes the branch of the current target.
func (s *Session) SetBranch(branch string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repo.Branch = branch
	s.repo = s.repo.WithDefaults()
}

// Credential returns the bearer token held in memory.
func (s *Session) Credential() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential
}

// SetCredential stores the token in memory. remember records whether the user
// opted into durable storage of it.
func (s *Session) SetCredential(token string, remember bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = token
	s.rememberCredential = remember
}

// RememberCredential reports the user's durable-storage choice.
func (s *Session) RememberCredential() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rememberCredential
}

// RequireConfigured returns a not_configured error naming what is missing.
func (s *Session) RequireConfigured(op string) (RepoRef, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.repo.IsZero() {
		return RepoRef{}, "", NewNotConfiguredError(op, "no repository configured; run `notesync configure owner/name`")
	}
	if err := s.repo.Validate(); err != nil {
		return RepoRef{}, "", err
	}
	if s.credential == "" {
		return RepoRef{}, "", NewNotConfiguredError(op, "no access token configured; pass --token or set NOTESYNC_TOKEN")
	}
	return s.repo, s.credential, nil
}

// Dispatch applies an editor event and returns the effects the caller must run.
func (s *Session) Dispatch(event Event) []Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, effects := Reduce(s.editor, event)
	s.editor = next
	return effects
}

// Editor returns a copy of the editor state.
func (s *Session) Editor() EditorState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Clone()
}

// Document returns a copy of the active document, if any.
func (s *Session) Document() (ActiveDocument, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor.Document == nil {
		return ActiveDocument{}, false
	}
	return *s.editor.Document, true
}

// IsDirty reports whether the active document has unsaved changes.
func (s *Session) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Document != nil && s.editor.Document.Dirty
}

// Files returns the last tree listing.
func (s *Session) Files() []FileEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.files)
}

// SetFiles replaces the listing wholesale.
func (s *Session) SetFiles(files []FileEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files = slices.Clone(files)
}

// Index returns the reverse search index, nil when none was loaded.
func (s *Session) Index() *SearchIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// SetIndex replaces the reverse search index; nil clears it.
func (s *Session) SetIndex(index *SearchIndex) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = index
}

// SelectedTags returns the active tag selection.
func (s *Session) SelectedTags() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tags)
}

// ToggleTag selects tag as the only active tag, or clears the selection when
// it is already the active one.
func (s *Session) ToggleTag(tag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.tags) == 1 && s.tags[0] == tag {
		s.tags = nil
		return
	}
	s.tags = []string{tag}
}

// Snapshot projects the durable part of the session, credential included.
// The session repository drops the credential unless told otherwise.
func (s *Session) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := SessionSnapshot{
		Version:    SessionSnapshotVersion,
		Credential: s.credential,
		Tags:       slices.Clone(s.tags),
	}
	if snapshot.Tags == nil {
		snapshot.Tags = []string{}
	}
	if !s.repo.IsZero() {
		repo := s.repo
		snapshot.Repo = &repo
	}
	if doc := s.editor.Document; doc != nil {
		snapshot.ActivePath = doc.Path
		snapshot.ActiveToken = doc.Token
		snapshot.Dirty = doc.Dirty
		snapshot.Content = doc.Content
	}
	return snapshot
}

// Restore loads a persisted snapshot into the session. A stored credential
// implies the user had opted in to remembering it.
func (s *Session) Restore(snapshot SessionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot.Repo != nil {
		s.repo = snapshot.Repo.WithDefaults()
	}
	if snapshot.Credential != "" {
		s.credential = snapshot.Credential
		s.rememberCredential = true
	}
	s.tags = slices.Clone(snapshot.Tags)
	if snapshot.ActivePath != "" {
		s.editor, _ = Reduce(EditorState{}, DocumentRestored{
			Path:    snapshot.ActivePath,
			Content: snapshot.Content,
			Token:   snapshot.ActiveToken,
			Dirty:   snapshot.Dirty,
		})
	}
}

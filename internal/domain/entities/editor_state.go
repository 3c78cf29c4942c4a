package entities

import "unicode/utf8"

// EditorState is the mutable part of a session: the active document and the
// binaries pasted into it that are not uploaded yet.
type EditorState struct {
	Document *ActiveDocument
	Pending  []PendingAsset
}

// Clone returns a copy that shares no slices or pointers with s (payload bytes excepted).
func (s EditorState) Clone() EditorState {
	clone := EditorState{}
	if s.Document != nil {
		doc := *s.Document
		clone.Document = &doc
	}
	if len(s.Pending) > 0 {
		clone.Pending = append([]PendingAsset(nil), s.Pending...)
	}
	return clone
}

// Event is an input to Reduce.
type Event interface {
	isEditorEvent()
}

// ContentEdited replaces the document text with what the user typed.
type ContentEdited struct {
	Content string
}

// ContentAppended adds Text to the end of the document as it is when the
// event is applied, so concurrent edits are not overwritten.
type ContentAppended struct {
	Text string
}

// FocusLost signals that the editor lost focus.
type FocusLost struct{}

// AssetPasted inserts a reference to a pasted binary at byte Offset
// (negative or past the end appends) and queues the binary for upload. An
// offset inside a multi-byte character moves back to the start of it.
type AssetPasted struct {
	Asset  PendingAsset
	Offset int
}

// DocumentLoaded replaces the active document with a freshly read remote file.
type DocumentLoaded struct {
	Path    string
	Content string
	Token   string
}

// DocumentRestored brings back the document of a persisted session as it was.
type DocumentRestored struct {
	Path    string
	Content string
	Token   string
	Dirty   bool
}

// DocumentCreated starts a new, never-saved document.
type DocumentCreated struct {
	Path    string
	Content string
}

// DocumentClosed drops the active document, e.g. after deleting it.
type DocumentClosed struct{}

// AssetsResolved records uploaded assets for the document at Path: their
// placeholders are rewritten and they leave the pending list.
type AssetsResolved struct {
	Path    string
	Renames []AssetRename
}

// DocumentCommitted records a successful commit of Content at Path.
type DocumentCommitted struct {
	Path    string
	Token   string
	Content string
}

func (ContentEdited) isEditorEvent()     {}
func (ContentAppended) isEditorEvent()   {}
func (FocusLost) isEditorEvent()         {}
func (AssetPasted) isEditorEvent()       {}
func (DocumentLoaded) isEditorEvent()    {}
func (DocumentRestored) isEditorEvent()  {}
func (DocumentCreated) isEditorEvent()   {}
func (DocumentClosed) isEditorEvent()    {}
func (AssetsResolved) isEditorEvent()    {}
func (DocumentCommitted) isEditorEvent() {}

// Effect is a side effect the caller of Reduce must carry out.
type Effect int

const (
	EffectScheduleAutosave Effect = iota + 1
	EffectPersistSession
)

func (e Effect) String() string {
	switch e {
	case EffectScheduleAutosave:
		return "schedule-autosave"
	case EffectPersistSession:
		return "persist-session"
	default:
		return "unknown"
	}
}

// Reduce computes the next editor state for an event, plus the side effects
// to run. It never mutates state.
func Reduce(state EditorState, event Event) (EditorState, []Effect) {
	next := state.Clone()
	doc := next.Document

	switch ev := event.(type) {
	case ContentEdited:
		if doc == nil || doc.Content == ev.Content {
			return state, nil
		}
		doc.Content = ev.Content
		doc.Dirty = true
		return next, []Effect{EffectScheduleAutosave, EffectPersistSession}

	case ContentAppended:
		if doc == nil || ev.Text == "" {
			return state, nil
		}
		doc.Content += ev.Text
		doc.Dirty = true
		return next, []Effect{EffectScheduleAutosave, EffectPersistSession}

	case FocusLost:
		if doc == nil {
			return state, nil
		}
		return state, []Effect{EffectScheduleAutosave}

	case AssetPasted:
		if doc == nil || ev.Asset.Placeholder == "" {
			return state, nil
		}
		doc.Content = insertAt(doc.Content, MarkdownImage(ev.Asset.Placeholder), ev.Offset)
		doc.Dirty = true
		next.Pending = append(next.Pending, ev.Asset)
		return next, []Effect{EffectScheduleAutosave, EffectPersistSession}

	case DocumentLoaded:
		next.Document = &ActiveDocument{Path: ev.Path, Content: ev.Content, Token: ev.Token}
		next.Pending = nil
		return next, []Effect{EffectPersistSession}

	case DocumentRestored:
		next.Document = &ActiveDocument{Path: ev.Path, Content: ev.Content, Token: ev.Token, Dirty: ev.Dirty}
		next.Pending = nil
		return next, nil

	case DocumentCreated:
		next.Document = &ActiveDocument{Path: ev.Path, Content: ev.Content, Dirty: true}
		next.Pending = nil
		return next, []Effect{EffectPersistSession}

	case DocumentClosed:
		return EditorState{}, []Effect{EffectPersistSession}

	case AssetsResolved:
		if doc == nil || doc.Path != ev.Path || len(ev.Renames) == 0 {
			return state, nil
		}
		rewritten := RewritePlaceholders(doc.Content, ev.Renames)
		if rewritten != doc.Content {
			doc.Content = rewritten
			doc.Dirty = true
		}
		next.Pending = withoutResolved(next.Pending, ev.Renames)
		return next, []Effect{EffectPersistSession}

	case DocumentCommitted:
		if doc == nil || doc.Path != ev.Path {
			return state, nil
		}
		doc.Token = ev.Token
		doc.Dirty = doc.Content != ev.Content
		return next, []Effect{EffectPersistSession}
	}
	return state, nil
}

func insertAt(content, text string, offset int) string {
	if offset < 0 || offset >= len(content) {
		return content + text
	}
	for offset > 0 && !utf8.RuneStart(content[offset]) {
		offset--
	}
	return content[:offset] + text + content[offset:]
}

func withoutResolved(pending []PendingAsset, renames []AssetRename) []PendingAsset {
	resolved := make(map[string]struct{}, len(renames))
	for _, rename := range renames {
		resolved[rename.From] = struct{}{}
	}
	var remaining []PendingAsset
	for _, asset := range pending {
		if _, ok := resolved[asset.Placeholder]; ok {
			continue
		}
		remaining = append(remaining, asset)
	}
	return remaining
}

package entities

// SessionSnapshotVersion is the current version of the persisted session record.
const SessionSnapshotVersion = 1

// SessionSnapshot is the durable subset of a Session. Credential is only
// filled when the caller opted in for that particular write.
type SessionSnapshot struct {
	Version     int      `json:"version"`
	Repo        *RepoRef `json:"repo"`
	Credential  string   `json:"credential,omitempty"`
	ActivePath  string   `json:"activePath,omitempty"`
	ActiveToken string   `json:"activeToken,omitempty"`
	Dirty       bool     `json:"dirty,omitempty"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
}

// WithoutCredential returns a copy with the credential removed.
func (s SessionSnapshot) WithoutCredential() SessionSnapshot {
	s.Credential = ""
	return s
}

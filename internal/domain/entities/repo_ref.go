package entities

import (
	"fmt"
	"strings"
)

// DefaultBranch is used whenever a RepoRef has no branch set.
const DefaultBranch = "main"

// RepoRef identifies the remote store target.
type RepoRef struct {
	Owner  string `json:"owner"  yaml:"owner"`
	Name   string `json:"name"   yaml:"name"`
	Branch string `json:"branch" yaml:"branch"`
}

// BranchOrDefault returns the configured branch, falling back to DefaultBranch.
func (r RepoRef) BranchOrDefault() string {
	if b := strings.TrimSpace(r.Branch); b != "" {
		return b
	}
	return DefaultBranch
}

// WithDefaults returns a trimmed copy with the branch filled in.
func (r RepoRef) WithDefaults() RepoRef {
	return RepoRef{
		Owner:  strings.TrimSpace(r.Owner),
		Name:   strings.TrimSpace(r.Name),
		Branch: r.BranchOrDefault(),
	}
}

// IsZero reports whether neither owner nor name is set.
func (r RepoRef) IsZero() bool {
	return strings.TrimSpace(r.Owner) == "" && strings.TrimSpace(r.Name) == ""
}

// Validate checks that owner and name are usable path segments.
func (r RepoRef) Validate() error {
	owner := strings.TrimSpace(r.Owner)
	name := strings.TrimSpace(r.Name)
	if owner == "" || name == "" {
		return NewValidationError("validate repo", r.String(), "owner and name are required")
	}
	if strings.Contains(owner, "/") || strings.Contains(name, "/") {
		return NewValidationError("validate repo", r.String(), "owner and name must not contain '/'")
	}
	return nil
}

func (r RepoRef) String() string {
	return fmt.Sprintf("%s/%s@%s", r.Owner, r.Name, r.BranchOrDefault())
}

// ParseRepoRef parses "owner/name" or "owner/name@branch".
func ParseRepoRef(raw string) (RepoRef, error) {
	raw = strings.TrimSpace(raw)
	branch := ""
	if at := strings.LastIndex(raw, "@"); at >= 0 {
		branch = raw[at+1:]
		raw = raw[:at]
	}
	owner, name, ok := strings.Cut(raw, "/")
	if !ok {
		return RepoRef{}, NewValidationError("parse repo", raw, "expected owner/name[@branch]")
	}
	ref := RepoRef{Owner: owner, Name: name, Branch: branch}
	if err := ref.Validate(); err != nil {
		return RepoRef{}, err
	}
	return ref.WithDefaults(), nil
}

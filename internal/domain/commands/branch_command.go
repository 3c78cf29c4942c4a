package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	infraRepos "github.com/rios0rios0/notesync/internal/infrastructure/repositories"
)

// Branch is the interface for listing and switching branches.
type Branch interface {
	List(ctx context.Context) ([]string, error)
	Switch(ctx context.Context, branch string, opts OpenOptions) error
}

// BranchCommand lists branches and moves the session to another one.
type BranchCommand struct {
	session    *entities.Session
	sessionCmd *SessionCommand
	refresh    *RefreshCommand
	registry   *infraRepos.ContentRegistry
	settings   *entities.Settings
}

// NewBranchCommand creates a new BranchCommand.
func NewBranchCommand(
	session *entities.Session,
	sessionCmd *SessionCommand,
	refresh *RefreshCommand,
	registry *infraRepos.ContentRegistry,
	settings *entities.Settings,
) *BranchCommand {
	return &BranchCommand{
		session:    session,
		sessionCmd: sessionCmd,
		refresh:    refresh,
		registry:   registry,
		settings:   settings,
	}
}

// List returns the branches with the current one first, then plain names in
// alphabetical order, then version branches newest first.
func (it *BranchCommand) List(ctx context.Context) ([]string, error) {
	repo, client, err := connect(it.session, it.registry, it.settings, "branches")
	if err != nil {
		return nil, err
	}
	branches, err := client.ListBranches(ctx, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches of %s: %w", repo, err)
	}
	return SortBranches(branches, repo.BranchOrDefault()), nil
}

// Switch moves the session to branch. The active note belongs to the old
// branch and is closed, so a dirty note needs Force.
func (it *BranchCommand) Switch(ctx context.Context, branch string, opts OpenOptions) error {
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return entities.NewValidationError("switch branch", "", "branch name is required")
	}
	if _, ok := it.session.Repo(); !ok {
		return entities.NewNotConfiguredError("switch branch", "no repository configured; run `notesync configure owner/name`")
	}
	if it.session.IsDirty() && !opts.Force {
		return ErrUnsavedChanges
	}

	it.session.SetBranch(branch)
	it.session.SetFiles(nil)
	it.session.SetIndex(nil)
	it.sessionCmd.Dispatch(ctx, entities.DocumentClosed{})
	logger.Infof("Switched to branch %q", branch)

	if _, err := it.refresh.Refresh(ctx); err != nil {
		logger.Warnf("Failed to refresh listing after switching branch: %v", err)
	}
	return nil
}

// SortBranches orders branch names for display.
func SortBranches(branches []string, current string) []string {
	sorted := append([]string(nil), branches...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if (a == current) != (b == current) {
			return a == current
		}
		va, vb := branchVersion(a), branchVersion(b)
		switch {
		case va == "" && vb == "":
			return a < b
		case va == "" || vb == "":
			return va == ""
		}
		if cmp := semver.Compare(va, vb); cmp != 0 {
			return cmp > 0
		}
		return a < b
	})
	return sorted
}

// branchVersion extracts a semantic version from names like "v1.2",
// "release/1.2.0" or "1.4". It returns "" when there is none.
func branchVersion(name string) string {
	candidate := name[strings.LastIndex(name, "/")+1:]
	if !strings.HasPrefix(candidate, "v") {
		candidate = "v" + candidate
	}
	if !semver.IsValid(candidate) {
		return ""
	}
	return candidate
}

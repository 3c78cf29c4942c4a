package github

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
)

const (
	providerName = "github"
	perPage      = 100

	treeType   = "tree"
	blobType   = "blob"
	noEncoding = "none"

	headerRateRemaining = "X-RateLimit-Remaining"
)

// GitHubContentRepository implements repositories.ContentRepository over the
// GitHub contents and git data APIs. Tokens are Git blob SHAs.
type GitHubContentRepository struct {
	client *gh.Client
}

// NewGitHubContentRepository creates a client for github.com, or for a GitHub
// Enterprise server when apiURL is set. timeout bounds every request.
func NewGitHubContentRepository(token, apiURL string, timeout time.Duration) repositories.ContentRepository {
	client := gh.NewClient(&http.Client{Timeout: timeout}).WithAuthToken(token)
	if apiURL != "" {
		enterprise, err := client.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			logger.Warnf("Ignoring invalid api_url %q: %v", apiURL, err)
		} else {
			client = enterprise
		}
	}
	return NewGitHubContentRepositoryWithClient(client)
}

// NewGitHubContentRepositoryWithClient wraps an already configured client.
func NewGitHubContentRepositoryWithClient(client *gh.Client) *GitHubContentRepository {
	return &GitHubContentRepository{client: client}
}

func (p *GitHubContentRepository) ListTree(
	ctx context.Context,
	repo entities.RepoRef,
) ([]entities.FileEntry, error) {
	branch := repo.BranchOrDefault()
	tree, resp, err := p.client.Git.GetTree(ctx, repo.Owner, repo.Name, branch, true)
	if err != nil {
		return nil, classify("list tree", branch, resp, err, false)
	}
	if tree.GetTruncated() {
		logger.Warnf("Tree of %s is truncated by the API, some notes are not listed", repo)
	}

	entries := make([]entities.FileEntry, 0, len(tree.Entries))
	for _, entry := range tree.Entries {
		var kind entities.FileKind
		switch entry.GetType() {
		case treeType:
			kind = entities.EntryDir
		case blobType:
			kind = entities.EntryFile
		default:
			continue // submodules
		}
		entries = append(entries, entities.FileEntry{
			Path:  entry.GetPath(),
			Token: entry.GetSHA(),
			Kind:  kind,
		})
	}
	return entries, nil
}

func (p *GitHubContentRepository) ReadFile(
	ctx context.Context,
	repo entities.RepoRef,
	path string,
) (entities.RemoteFile, error) {
	fileContent, _, resp, err := p.client.Repositories.GetContents(
		ctx, repo.Owner, repo.Name, path,
		&gh.RepositoryContentGetOptions{Ref: repo.BranchOrDefault()},
	)
	if err != nil {
		return entities.RemoteFile{}, classify("read", path, resp, err, false)
	}
	if fileContent == nil {
		return entities.RemoteFile{}, entities.NewValidationError("read", path, "path is a directory, not a file")
	}

	// files over 1 MB come without inline content
	if fileContent.GetEncoding() == noEncoding {
		raw, blobResp, blobErr := p.client.Git.GetBlobRaw(ctx, repo.Owner, repo.Name, fileContent.GetSHA())
		if blobErr != nil {
			return entities.RemoteFile{}, classify("read", path, blobResp, blobErr, false)
		}
		return entities.RemoteFile{Content: string(raw), Token: fileContent.GetSHA()}, nil
	}

	content, err := fileContent.GetContent()
	if err != nil {
		return entities.RemoteFile{}, entities.NewValidationError("read", path, fmt.Sprintf("failed to decode file content: %v", err))
	}
	return entities.RemoteFile{Content: content, Token: fileContent.GetSHA()}, nil
}

func (p *GitHubContentRepository) WriteFile(
	ctx context.Context,
	repo entities.RepoRef,
	input entities.WriteInput,
) (string, error) {
	content := []byte(input.Content)
	if input.Binary {
		// go-github encodes the payload itself
		decoded, err := base64.StdEncoding.DecodeString(input.Content)
		if err != nil {
			return "", entities.NewValidationError("write", input.Path, "binary content is not valid base64")
		}
		content = decoded
	}

	opts := &gh.RepositoryContentFileOptions{
		Message: gh.String(input.Message),
		Content: content,
		Branch:  gh.String(repo.BranchOrDefault()),
	}

	var (
		result *gh.RepositoryContentResponse
		resp   *gh.Response
		err    error
	)
	creating := input.Token == ""
	if creating {
		result, resp, err = p.client.Repositories.CreateFile(ctx, repo.Owner, repo.Name, input.Path, opts)
	} else {
		opts.SHA = gh.String(input.Token)
		result, resp, err = p.client.Repositories.UpdateFile(ctx, repo.Owner, repo.Name, input.Path, opts)
	}
	if err != nil {
		return "", classify("write", input.Path, resp, err, creating)
	}
	return result.GetContent().GetSHA(), nil
}

func (p *GitHubContentRepository) DeleteFile(
	ctx context.Context,
	repo entities.RepoRef,
	path, token, message string,
) error {
	if token == "" {
		return entities.NewValidationError("delete", path, "a token is required to delete a file")
	}
	_, resp, err := p.client.Repositories.DeleteFile(ctx, repo.Owner, repo.Name, path, &gh.RepositoryContentFileOptions{
		Message: gh.String(message),
		SHA:     gh.String(token),
		Branch:  gh.String(repo.BranchOrDefault()),
	})
	if err != nil {
		return classify("delete", path, resp, err, false)
	}
	return nil
}

func (p *GitHubContentRepository) ListBranches(
	ctx context.Context,
	repo entities.RepoRef,
) ([]string, error) {
	var names []string
	opts := &gh.BranchListOptions{
		ListOptions: gh.ListOptions{PerPage: perPage},
	}

	for {
		branches, resp, err := p.client.Repositories.ListBranches(ctx, repo.Owner, repo.Name, opts)
		if err != nil {
			return nil, classify("list branches", "", resp, err, false)
		}
		for _, branch := range branches {
			names = append(names, branch.GetName())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return names, nil
}

// classify maps a go-github failure onto the error taxonomy. creating marks
// writes sent without a SHA, where GitHub reports an existing file as 422.
func classify(op, path string, resp *gh.Response, err error, creating bool) error {
	var (
		rateErr  *gh.RateLimitError
		abuseErr *gh.AbuseRateLimitError
		respErr  *gh.ErrorResponse
	)
	kind := entities.KindNetwork

	switch {
	case errors.As(err, &rateErr), errors.As(err, &abuseErr):
		kind = entities.KindRateLimited
	case errors.As(err, &respErr) && respErr.Response != nil:
		kind = kindForStatus(respErr.Response, creating)
	case resp != nil && resp.Response != nil && resp.StatusCode >= http.StatusBadRequest:
		kind = kindForStatus(resp.Response, creating)
	}
	return entities.NewSyncError(kind, op, path, err)
}

func kindForStatus(resp *http.Response, creating bool) entities.ErrorKind {
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return entities.KindAuth
	case http.StatusForbidden:
		if strings.TrimSpace(resp.Header.Get(headerRateRemaining)) == "0" {
			return entities.KindRateLimited
		}
		return entities.KindAuth
	case http.StatusNotFound:
		return entities.KindNotFound
	case http.StatusConflict, http.StatusPreconditionFailed:
		return entities.KindConflict
	case http.StatusUnprocessableEntity:
		if creating {
			return entities.KindConflict
		}
		return entities.KindValidation
	case http.StatusTooManyRequests:
		return entities.KindRateLimited
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return entities.KindNetwork
	}
	return entities.KindValidation
}

// Name is the provider name this repository registers under.
func Name() string { return providerName }

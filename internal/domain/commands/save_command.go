package commands

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/notesync/internal/infrastructure/repositories"
)

// Save is the interface for the save pipeline.
type Save interface {
	Execute(ctx context.Context) (SaveResult, error)
}

// SaveStage is the state of the save pipeline.
type SaveStage int

const (
	StageIdle SaveStage = iota
	StageResolvingAssets
	StageRewritingContent
	StageCommitting
	StageDone
	StageFailed
)

func (s SaveStage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageResolvingAssets:
		return "resolving-assets"
	case StageRewritingContent:
		return "rewriting-content"
	case StageCommitting:
		return "committing"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SaveOutcome says what a save request ended up doing.
type SaveOutcome string

const (
	OutcomeSaved      SaveOutcome = "saved"
	OutcomeUnchanged  SaveOutcome = "unchanged"
	OutcomeNoDocument SaveOutcome = "no_document"
	OutcomeBusy       SaveOutcome = "busy"
	OutcomeFailed     SaveOutcome = "failed"
)

// SaveResult describes one save request.
type SaveResult struct {
	Outcome   SaveOutcome
	AttemptID string
	Path      string
	Token     string
	Assets    int
}

// SaveCommand commits the active document: pending assets are uploaded, their
// placeholders rewritten, then the text is written with the document's token.
// Only one attempt runs at a time; requests made meanwhile are dropped.
type SaveCommand struct {
	session    *entities.Session
	sessionCmd *SessionCommand
	resolver   *AssetResolver
	refresh    *RefreshCommand
	registry   *infraRepos.ContentRegistry
	settings   *entities.Settings
	metrics    repositories.SaveMetricsRepository

	mu    sync.Mutex
	stage SaveStage
	last  SaveStage
}

// NewSaveCommand creates a new SaveCommand.
func NewSaveCommand(
	session *entities.Session,
	sessionCmd *SessionCommand,
	resolver *AssetResolver,
	refresh *RefreshCommand,
	registry *infraRepos.ContentRegistry,
	settings *entities.Settings,
	metrics repositories.SaveMetricsRepository,
) *SaveCommand {
	return &SaveCommand{
		session:    session,
		sessionCmd: sessionCmd,
		resolver:   resolver,
		refresh:    refresh,
		registry:   registry,
		settings:   settings,
		metrics:    metrics,
	}
}

// Stage returns the current stage and the final stage of the last attempt.
func (it *SaveCommand) Stage() (SaveStage, SaveStage) {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.stage, it.last
}

// Execute runs one save attempt. A request made while another attempt is in
// flight returns OutcomeBusy without error. Conflicts are surfaced as errors
// matching entities.ErrConflict and are never retried or overwritten.
func (it *SaveCommand) Execute(ctx context.Context) (SaveResult, error) {
	if !it.begin() {
		it.metrics.SaveRejected()
		logger.Debug("Save already in flight, dropping request")
		return SaveResult{Outcome: OutcomeBusy}, nil
	}

	doc, ok := it.session.Document()
	if !ok {
		it.end(StageIdle)
		return SaveResult{Outcome: OutcomeNoDocument}, nil
	}
	pending := it.session.Editor().Pending
	if !doc.Dirty && !doc.IsNew() && len(pending) == 0 {
		it.end(StageIdle)
		return SaveResult{Outcome: OutcomeUnchanged, Path: doc.Path, Token: doc.Token}, nil
	}

	started := time.Now()
	result := SaveResult{AttemptID: ulid.Make().String(), Path: doc.Path}
	log := logger.WithFields(logger.Fields{"attempt": result.AttemptID, "path": doc.Path})

	token, err := it.run(ctx, log, doc.Path, pending, &result)
	if err != nil {
		it.end(StageFailed)
		it.metrics.SaveFinished(string(OutcomeFailed), string(entities.KindOf(err)), time.Since(started))
		log.Warnf("Save failed: %v", err)
		result.Outcome = OutcomeFailed
		return result, err
	}

	it.end(StageDone)
	it.metrics.SaveFinished(string(OutcomeSaved), "", time.Since(started))
	log.Infof("Saved with token %s", token)
	result.Outcome = OutcomeSaved
	result.Token = token

	if _, refreshErr := it.refresh.Refresh(ctx); refreshErr != nil {
		log.Warnf("Failed to refresh listing after save: %v", refreshErr)
	}
	return result, nil
}

func (it *SaveCommand) run(
	ctx context.Context,
	log *logger.Entry,
	path string,
	pending []entities.PendingAsset,
	result *SaveResult,
) (string, error) {
	repo, client, err := connect(it.session, it.registry, it.settings, "save")
	if err != nil {
		return "", err
	}

	if len(pending) > 0 {
		log.Debugf("Resolving %d pending asset(s)", len(pending))
		renames, resolveErr := it.resolver.Resolve(ctx, client, repo, path, pending)
		if resolveErr != nil {
			return "", resolveErr
		}
		result.Assets = len(renames)

		it.enter(StageRewritingContent)
		it.sessionCmd.Dispatch(ctx, entities.AssetsResolved{Path: path, Renames: renames})
	}

	it.enter(StageCommitting)
	// the rewrite above and any edit made during the upload are both in memory now
	doc, ok := it.session.Document()
	if !ok || doc.Path != path {
		return "", fmt.Errorf("note %q was closed while saving", path)
	}

	newToken, err := client.WriteFile(ctx, repo, entities.WriteInput{
		Path:    doc.Path,
		Content: doc.Content,
		Token:   doc.Token,
		Message: it.settings.Messages.Save,
	})
	if err != nil {
		return "", fmt.Errorf("failed to commit note: %w", err)
	}

	it.sessionCmd.Dispatch(ctx, entities.DocumentCommitted{Path: doc.Path, Token: newToken, Content: doc.Content})
	return newToken, nil
}

func (it *SaveCommand) begin() bool {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.stage != StageIdle {
		return false
	}
	it.stage = StageResolvingAssets
	return true
}

func (it *SaveCommand) enter(stage SaveStage) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.stage = stage
}

func (it *SaveCommand) end(final SaveStage) {
	it.mu.Lock()
	defer it.mu.Unlock()
	it.last = final
	it.stage = StageIdle
}

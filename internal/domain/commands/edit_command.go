package commands

import (
	"context"
	"sync"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// Edit is the interface for interactive changes to the active document.
type Edit interface {
	Edit(ctx context.Context, content string)
	Append(ctx context.Context, text string)
	LoseFocus(ctx context.Context)
	Paste(ctx context.Context, payload []byte, mediaType string, offset int) (string, error)
	Close()
}

// EditCommand turns user input into editor events and runs their effects:
// persistence through the session command and autosave through the scheduler.
type EditCommand struct {
	session    *entities.Session
	sessionCmd *SessionCommand
	scheduler  *AutosaveScheduler
	settings   *entities.Settings

	namerOnce sync.Once
	namer     entities.AssetNamer
	namerErr  error
}

// NewEditCommand creates a new EditCommand.
func NewEditCommand(
	session *entities.Session,
	sessionCmd *SessionCommand,
	scheduler *AutosaveScheduler,
	settings *entities.Settings,
) *EditCommand {
	return &EditCommand{
		session:    session,
		sessionCmd: sessionCmd,
		scheduler:  scheduler,
		settings:   settings,
	}
}

// UseAssetNamer replaces the naming strategy selected by the settings.
func (it *EditCommand) UseAssetNamer(namer entities.AssetNamer) {
	it.namerOnce.Do(func() {})
	it.namer = namer
	it.namerErr = nil
}

// Edit replaces the document text.
func (it *EditCommand) Edit(ctx context.Context, content string) {
	it.apply(ctx, entities.ContentEdited{Content: content})
}

// Append adds text to the end of the document under the session lock, so it
// cannot race with a concurrent Edit.
func (it *EditCommand) Append(ctx context.Context, text string) {
	it.apply(ctx, entities.ContentAppended{Text: text})
}

// LoseFocus restarts the autosave countdown.
func (it *EditCommand) LoseFocus(ctx context.Context) {
	it.apply(ctx, entities.FocusLost{})
}

// Paste inserts a reference to payload at offset and queues the binary for the
// next save. It returns the placeholder written into the text.
func (it *EditCommand) Paste(ctx context.Context, payload []byte, mediaType string, offset int) (string, error) {
	if _, ok := it.session.Document(); !ok {
		return "", ErrNoDocument
	}
	if len(payload) == 0 {
		return "", entities.NewValidationError("paste", "", "pasted payload is empty")
	}

	namer, err := it.assetNamer()
	if err != nil {
		return "", err
	}
	placeholder := namer.Placeholder(payload, mediaType)
	it.apply(ctx, entities.AssetPasted{
		Asset:  entities.PendingAsset{Placeholder: placeholder, Payload: payload, MediaType: mediaType},
		Offset: offset,
	})
	logger.Debugf("Pasted %d bytes as %q", len(payload), placeholder)
	return placeholder, nil
}

// Close stops the autosave countdown.
func (it *EditCommand) Close() {
	it.scheduler.Stop()
}

func (it *EditCommand) apply(ctx context.Context, event entities.Event) {
	for _, effect := range it.sessionCmd.Dispatch(ctx, event) {
		if effect == entities.EffectScheduleAutosave {
			it.scheduler.Touch()
		}
	}
}

func (it *EditCommand) assetNamer() (entities.AssetNamer, error) {
	it.namerOnce.Do(func() {
		it.namer, it.namerErr = entities.NewAssetNamer(it.settings.AssetNaming)
	})
	return it.namer, it.namerErr
}

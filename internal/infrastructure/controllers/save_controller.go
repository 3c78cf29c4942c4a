package controllers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// SaveController handles the "save" subcommand.
type SaveController struct {
	command commands.Save
}

// NewSaveController creates a new SaveController.
func NewSaveController(command commands.Save) *SaveController {
	return &SaveController{command: command}
}

// GetBind returns the Cobra command metadata for the save controller.
func (it *SaveController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "save",
		Short: "Commit the active note",
		Long: `Upload pasted images, rewrite their references and commit the active note.
If the note changed on the remote since it was opened the save is refused;
reopen it with "notesync open --force <path>" to take the remote version.`,
		Args: cobra.NoArgs,
	}
}

// Execute runs one save.
func (it *SaveController) Execute(cmd *cobra.Command, _ []string) error {
	result, err := it.command.Execute(context.Background())
	return reportSave(cmd.OutOrStdout(), result, err)
}

func reportSave(out io.Writer, result commands.SaveResult, err error) error {
	if err != nil {
		if errors.Is(err, entities.ErrConflict) {
			return fmt.Errorf("%w\nthe note changed on the remote; your edits are kept locally, "+
				"reopen with `notesync open --force %s` to discard them", err, result.Path)
		}
		return err
	}

	switch result.Outcome {
	case commands.OutcomeSaved:
		if result.Assets > 0 {
			_, _ = fmt.Fprintf(out, "Saved %s with %d image(s) (%s)\n", result.Path, result.Assets, shortToken(result.Token))
		} else {
			_, _ = fmt.Fprintf(out, "Saved %s (%s)\n", result.Path, shortToken(result.Token))
		}
	case commands.OutcomeUnchanged:
		_, _ = fmt.Fprintf(out, "%s has no changes\n", result.Path)
	case commands.OutcomeNoDocument:
		_, _ = fmt.Fprintln(out, "No note is open")
	case commands.OutcomeBusy:
		_, _ = fmt.Fprintln(out, "A save is already running")
	}
	return nil
}

func shortToken(token string) string {
	const length = 7
	if len(token) > length {
		return token[:length]
	}
	return token
}

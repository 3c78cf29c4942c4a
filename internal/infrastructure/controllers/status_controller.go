package controllers

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// StatusController handles the "status" subcommand.
type StatusController struct {
	command commands.SessionManager
}

// NewStatusController creates a new StatusController.
func NewStatusController(command commands.SessionManager) *StatusController {
	return &StatusController{command: command}
}

// GetBind returns the Cobra command metadata for the status controller.
func (it *StatusController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "status",
		Short: "Show the repository, the active note and whether it is saved",
		Args:  cobra.NoArgs,
	}
}

// Execute prints the session status.
func (it *StatusController) Execute(cmd *cobra.Command, _ []string) error {
	status := it.command.Status()
	out := cmd.OutOrStdout()

	if status.Configured {
		_, _ = fmt.Fprintf(out, "repository: %s\n", status.Repo)
	} else {
		_, _ = fmt.Fprintln(out, "repository: (not configured)")
	}
	switch {
	case !status.HasCredential:
		_, _ = fmt.Fprintln(out, "token:      (missing)")
	case status.Remembered:
		_, _ = fmt.Fprintln(out, "token:      set, remembered")
	default:
		_, _ = fmt.Fprintln(out, "token:      set")
	}

	if doc := status.Document; doc != nil {
		state := "saved"
		switch {
		case doc.IsNew():
			state = "new, never saved"
		case doc.Dirty:
			state = "unsaved changes"
		}
		_, _ = fmt.Fprintf(out, "note:       %s (%s)\n", doc.Path, state)
	} else {
		_, _ = fmt.Fprintln(out, "note:       (none)")
	}
	if status.PendingAssets > 0 {
		_, _ = fmt.Fprintf(out, "images:     %d waiting for upload\n", status.PendingAssets)
	}
	if len(status.Tags) > 0 {
		_, _ = fmt.Fprintf(out, "tags:       %s\n", strings.Join(status.Tags, ", "))
	}
	return nil
}

package controllers

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// DeleteController handles the "rm" subcommand.
type DeleteController struct {
	command   commands.Delete
	session   commands.SessionManager
	confirmer Confirmer
}

// NewDeleteController creates a new DeleteController.
func NewDeleteController(
	command commands.Delete,
	session commands.SessionManager,
	confirmer Confirmer,
) *DeleteController {
	return &DeleteController{command: command, session: session, confirmer: confirmer}
}

// GetBind returns the Cobra command metadata for the delete controller.
func (it *DeleteController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "rm [path]",
		Short: "Delete a note (the active one by default)",
		Long: `Delete a note from the remote branch. The delete carries the last known
version of the note and is refused when the remote has a newer one.`,
		Args: cobra.MaximumNArgs(1),
	}
}

// Execute confirms and deletes.
func (it *DeleteController) Execute(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	target := path
	if target == "" {
		doc := it.session.Status().Document
		if doc == nil {
			return commands.ErrNoDocument
		}
		target = doc.Path
	}

	if !yes {
		confirmed, err := it.confirmer.Confirm("Delete "+target+"?", "The note is removed from the remote branch.")
		if err != nil {
			return fmt.Errorf("could not ask for confirmation (pass --yes to delete): %w", err)
		}
		if !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Nothing deleted")
			return nil
		}
	}

	if err := it.command.Execute(context.Background(), path); err != nil {
		if errors.Is(err, entities.ErrConflict) {
			return fmt.Errorf("%w\n%s changed on the remote; run `notesync ls` and try again", err, target)
		}
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", target)
	return nil
}

// AddFlags adds the rm-specific flags to the given Cobra command.
func (it *DeleteController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// NewNoteController handles the "new" subcommand.
type NewNoteController struct {
	command   commands.Open
	confirmer Confirmer
}

// NewNewNoteController creates a new NewNoteController.
func NewNewNoteController(command commands.Open, confirmer Confirmer) *NewNoteController {
	return &NewNoteController{command: command, confirmer: confirmer}
}

// GetBind returns the Cobra command metadata for the new controller.
func (it *NewNoteController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "new <path.md>",
		Short: "Start a new note (saved on the next save)",
		Args:  cobra.ExactArgs(1),
	}
}

// Execute creates the note locally.
func (it *NewNoteController) Execute(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	var doc entities.ActiveDocument
	err := withDiscardConfirmation(it.confirmer, force, func(force bool) error {
		var createErr error
		doc, createErr = it.command.Create(context.Background(), args[0], commands.OpenOptions{Force: force})
		return createErr
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s (run `notesync save` to commit it)\n", doc.Path)
	return nil
}

// AddFlags adds the new-specific flags to the given Cobra command.
func (it *NewNoteController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("force", false, "Discard unsaved changes of the current note")
}

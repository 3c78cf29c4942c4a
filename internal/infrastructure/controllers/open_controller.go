package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// OpenController handles the "open" subcommand.
type OpenController struct {
	command   commands.Open
	confirmer Confirmer
}

// NewOpenController creates a new OpenController.
func NewOpenController(command commands.Open, confirmer Confirmer) *OpenController {
	return &OpenController{command: command, confirmer: confirmer}
}

// GetBind returns the Cobra command metadata for the open controller.
func (it *OpenController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "open <path>",
		Short: "Make a remote note the active one",
		Args:  cobra.ExactArgs(1),
	}
}

// Execute loads the note and prints it.
func (it *OpenController) Execute(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	var doc entities.ActiveDocument
	err := withDiscardConfirmation(it.confirmer, force, func(force bool) error {
		var openErr error
		doc, openErr = it.command.Open(context.Background(), args[0], commands.OpenOptions{Force: force})
		return openErr
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), doc.Content)
	return nil
}

// AddFlags adds the open-specific flags to the given Cobra command.
func (it *OpenController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("force", false, "Discard unsaved changes of the current note")
}

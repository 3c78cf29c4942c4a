package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// PreviewController handles the "preview" subcommand.
type PreviewController struct {
	command commands.Preview
}

// NewPreviewController creates a new PreviewController.
func NewPreviewController(command commands.Preview) *PreviewController {
	return &PreviewController{command: command}
}

// GetBind returns the Cobra command metadata for the preview controller.
func (it *PreviewController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "preview",
		Short: "Render the active note to HTML",
		Args:  cobra.NoArgs,
	}
}

// Execute prints the rendered note.
func (it *PreviewController) Execute(cmd *cobra.Command, _ []string) error {
	html, err := it.command.Execute()
	if err != nil {
		return err
	}
	_, _ = fmt.Fprint(cmd.OutOrStdout(), html)
	return nil
}

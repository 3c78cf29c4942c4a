package controllers

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// PasteController handles the "paste" subcommand.
type PasteController struct {
	edit commands.Edit
	save commands.Save
}

// NewPasteController creates a new PasteController.
func NewPasteController(edit commands.Edit, save commands.Save) *PasteController {
	return &PasteController{edit: edit, save: save}
}

// GetBind returns the Cobra command metadata for the paste controller.
func (it *PasteController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "paste <image-file>",
		Short: "Insert an image into the active note and save it",
		Long: `Insert a reference to the image into the active note, then save: the image
is committed under assets/ next to the note and the reference is rewritten to
point at it. Pending images only live in memory, so the save happens right away.`,
		Args: cobra.ExactArgs(1),
	}
}

// Execute pastes the file and saves.
func (it *PasteController) Execute(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	offset, _ := cmd.Flags().GetInt("offset")

	defer it.edit.Close()

	placeholder, err := pasteFile(ctx, it.edit, args[0], offset)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Inserted %s\n", placeholder)

	result, err := it.save.Execute(ctx)
	return reportSave(cmd.OutOrStdout(), result, err)
}

// AddFlags adds the paste-specific flags to the given Cobra command.
func (it *PasteController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Int("offset", -1, "Byte offset to insert the image at (default: end of note)")
}

func pasteFile(ctx context.Context, edit commands.Edit, path string, offset int) (string, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", path, err)
	}
	return edit.Paste(ctx, payload, http.DetectContentType(payload), offset)
}

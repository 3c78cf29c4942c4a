package controllers

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// ListController handles the "ls" subcommand.
type ListController struct {
	command commands.Listing
	session commands.SessionManager
}

// NewListController creates a new ListController.
func NewListController(command commands.Listing, session commands.SessionManager) *ListController {
	return &ListController{command: command, session: session}
}

// GetBind returns the Cobra command metadata for the list controller.
func (it *ListController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "ls",
		Short: "List the notes of the repository",
		Long: `Refresh the listing from the remote branch and print its Markdown notes.
--query narrows the list using the repository's search index when one exists
at .search/index.json, and the path otherwise. --tag toggles a tag filter
that is remembered between runs.`,
		Args: cobra.NoArgs,
	}
}

// Execute refreshes and prints the listing.
func (it *ListController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	query, _ := cmd.Flags().GetString("query")
	tag, _ := cmd.Flags().GetString("tag")

	if _, err := it.command.Refresh(ctx); err != nil {
		return err
	}
	if tag != "" {
		it.command.ToggleTag(ctx, tag)
	}

	result := it.command.List(query)
	active := ""
	if doc := it.session.Status().Document; doc != nil {
		active = doc.Path
	}

	out := cmd.OutOrStdout()
	for _, note := range result.Notes {
		marker := " "
		if note.Path == active {
			marker = "*"
		}
		_, _ = fmt.Fprintf(out, "%s %s\n", marker, note.Path)
	}
	if len(result.Notes) == 0 {
		_, _ = fmt.Fprintln(out, "(no notes)")
	}
	if len(result.Tags) > 0 {
		_, _ = fmt.Fprintf(out, "\ntags: %s\n", strings.Join(result.Tags, ", "))
	}
	if len(result.SelectedTags) > 0 {
		_, _ = fmt.Fprintf(out, "filtering by: %s\n", strings.Join(result.SelectedTags, ", "))
	}
	return nil
}

// AddFlags adds the ls-specific flags to the given Cobra command.
func (it *ListController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("query", "q", "", "Only list notes matching this search")
	cmd.Flags().String("tag", "", "Toggle filtering by this tag")
}

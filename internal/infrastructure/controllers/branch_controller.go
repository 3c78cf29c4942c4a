package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// BranchesController handles the "branches" subcommand.
type BranchesController struct {
	command commands.Branch
	session commands.SessionManager
}

// NewBranchesController creates a new BranchesController.
func NewBranchesController(command commands.Branch, session commands.SessionManager) *BranchesController {
	return &BranchesController{command: command, session: session}
}

// GetBind returns the Cobra command metadata for the branches controller.
func (it *BranchesController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "branches",
		Short: "List the branches of the repository",
		Args:  cobra.NoArgs,
	}
}

// Execute prints the branches, marking the current one.
func (it *BranchesController) Execute(cmd *cobra.Command, _ []string) error {
	branches, err := it.command.List(context.Background())
	if err != nil {
		return err
	}
	current := it.session.Status().Repo.BranchOrDefault()
	for _, branch := range branches {
		marker := " "
		if branch == current {
			marker = "*"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, branch)
	}
	return nil
}

// BranchController handles the "branch" subcommand.
type BranchController struct {
	command   commands.Branch
	confirmer Confirmer
}

// NewBranchController creates a new BranchController.
func NewBranchController(command commands.Branch, confirmer Confirmer) *BranchController {
	return &BranchController{command: command, confirmer: confirmer}
}

// GetBind returns the Cobra command metadata for the branch controller.
func (it *BranchController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "branch <name>",
		Short: "Switch to another branch (closes the active note)",
		Args:  cobra.ExactArgs(1),
	}
}

// Execute switches the branch.
func (it *BranchController) Execute(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	err := withDiscardConfirmation(it.confirmer, force, func(force bool) error {
		return it.command.Switch(context.Background(), args[0], commands.OpenOptions{Force: force})
	})
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Switched to %s\n", args[0])
	return nil
}

// AddFlags adds the branch-specific flags to the given Cobra command.
func (it *BranchController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("force", false, "Discard unsaved changes of the current note")
}

package controllers

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// ConfigureController handles the "configure" subcommand.
type ConfigureController struct {
	command   commands.SessionManager
	confirmer Confirmer
}

// NewConfigureController creates a new ConfigureController.
func NewConfigureController(command commands.SessionManager, confirmer Confirmer) *ConfigureController {
	return &ConfigureController{command: command, confirmer: confirmer}
}

// GetBind returns the Cobra command metadata for the configure controller.
func (it *ConfigureController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "configure owner/name[@branch]",
		Short: "Point notesync at a repository",
		Long: `Select the GitHub repository (and optionally the branch) that holds
your notes. The access token comes from --token, the config file or the
NOTESYNC_TOKEN / GITHUB_TOKEN / GH_TOKEN environment variables. It is only written to
the session file when --remember is given.`,
		Args: cobra.ExactArgs(1),
	}
}

// Execute stores the repository and credential in the session.
func (it *ConfigureController) Execute(cmd *cobra.Command, args []string) error {
	repo, err := entities.ParseRepoRef(args[0])
	if err != nil {
		return err
	}
	token, _ := cmd.Flags().GetString("token")
	remember, _ := cmd.Flags().GetBool("remember")
	force, _ := cmd.Flags().GetBool("force")

	err = withDiscardConfirmation(it.confirmer, force, func(force bool) error {
		return it.command.Configure(context.Background(), commands.ConfigureInput{
			Repo:     repo,
			Token:    token,
			Remember: remember,
			Force:    force,
		})
	})
	if err != nil {
		return err
	}

	status := it.command.Status()
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Using %s\n", status.Repo)
	if !status.HasCredential {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No access token yet: pass --token or set NOTESYNC_TOKEN")
	}
	return nil
}

// AddFlags adds the configure-specific flags to the given Cobra command.
func (it *ConfigureController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("remember", false, "Store the access token in the session file")
	cmd.Flags().Bool("force", false, "Discard unsaved changes when switching repository")
}

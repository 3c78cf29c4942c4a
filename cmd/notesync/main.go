package main

import (
	"context"
	"io"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/rios0rios0/notesync/internal"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

func buildRootCommand(appContext *internal.AppInternal) *cobra.Command {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:   "notesync",
		Short: "Edit Markdown notes stored in a GitHub repository",
		Long: `notesync keeps Markdown notes in a GitHub repository. Open a note, edit it
with autosave, paste images (they are committed next to the note under assets/),
and commit. Saves use the version of the note you opened, so a note changed on
the remote in the meantime is never overwritten silently.

Getting started:
  notesync configure owner/notes --token $GITHUB_TOKEN
  notesync ls
  notesync open ideas/today.md
  notesync edit today.md --watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, _ []string) error {
			verbose, _ := command.Flags().GetBool("verbose")
			if verbose {
				logger.SetLevel(logger.DebugLevel)
			}
			logFile, _ := command.Flags().GetString("log-file")
			if logFile != "" {
				logger.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
					Filename:   logFile,
					MaxSize:    logMaxSizeMB,
					MaxBackups: logMaxBackups,
					MaxAge:     logMaxAgeDays,
				}))
			}

			configPath, _ := command.Flags().GetString("config")
			token, _ := command.Flags().GetString("token")
			return appContext.Start(context.Background(), internal.StartupOptions{
				ConfigPath: configPath,
				Token:      token,
			})
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().String("token", "",
		"GitHub token, ${ENV_VAR} or token file (default: NOTESYNC_TOKEN, GITHUB_TOKEN or GH_TOKEN)")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")
	cmd.PersistentFlags().String("log-file", "",
		"Also write logs to this file, rotated")

	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  bind.Args,
			RunE: func(command *cobra.Command, arguments []string) error {
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if fc, ok := ctrl.(entities.FlagController); ok {
			fc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	appContext := injectAppContext()
	cobraRoot := buildRootCommand(appContext)
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		logger.Fatalf("Error executing 'notesync': %s", err)
	}
}

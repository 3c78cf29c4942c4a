package controllers

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
	"github.com/rios0rios0/notesync/internal/domain/repositories"
	metricsRepo "github.com/rios0rios0/notesync/internal/infrastructure/repositories/metrics"
)

const (
	editHelp = `Type text to append it to the note. Commands:
  :save                 save now
  :blur                 restart the autosave countdown (as when leaving the editor)
  :paste <file> [n]     insert an image at byte offset n (end by default)
  :reload               take the content of the working file
  :status               show whether the note is saved
  :quit                 leave
`
	metricsReadHeaderTimeout = 5 * time.Second
)

// EditController handles the "edit" subcommand: an editing session where
// changes are autosaved after a period of inactivity.
type EditController struct {
	edit        commands.Edit
	save        commands.Save
	session     commands.SessionManager
	scheduler   *commands.AutosaveScheduler
	workingCopy repositories.WorkingCopyRepository
	metrics     *metricsRepo.PrometheusSaveMetricsRepository
	confirmer   Confirmer
}

// NewEditController creates a new EditController.
func NewEditController(
	edit commands.Edit,
	save commands.Save,
	session commands.SessionManager,
	scheduler *commands.AutosaveScheduler,
	workingCopy repositories.WorkingCopyRepository,
	metrics *metricsRepo.PrometheusSaveMetricsRepository,
	confirmer Confirmer,
) *EditController {
	return &EditController{
		edit:        edit,
		save:        save,
		session:     session,
		scheduler:   scheduler,
		workingCopy: workingCopy,
		metrics:     metrics,
		confirmer:   confirmer,
	}
}

// GetBind returns the Cobra command metadata for the edit controller.
func (it *EditController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "edit [working-file]",
		Short: "Edit the active note with autosave",
		Long: `Start an editing session on the active note. Lines typed on standard input
are appended to the note; commands start with a colon (type :help).

With a working file the note is written to it, and --watch follows changes
made to it by any editor. Every change restarts the autosave countdown.`,
		Args: cobra.MaximumNArgs(1),
	}
}

// Execute runs the editing session until :quit or end of input.
func (it *EditController) Execute(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if it.session.Status().Document == nil {
		return commands.ErrNoDocument
	}
	out := cmd.OutOrStdout()
	watch, _ := cmd.Flags().GetBool("watch")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	workFile := ""
	if len(args) > 0 {
		workFile = args[0]
		if err := it.syncWorkingCopy(workFile); err != nil {
			return err
		}
	}

	it.scheduler.OnResult(func(result commands.SaveResult, err error) {
		if reportErr := reportSave(out, result, err); reportErr != nil {
			_, _ = fmt.Fprintf(out, "autosave: %v\n", reportErr)
			return
		}
		if result.Outcome == commands.OutcomeSaved && workFile != "" {
			if syncErr := it.syncWorkingCopy(workFile); syncErr != nil {
				logger.Warnf("%v", syncErr)
			}
		}
	})
	defer it.edit.Close()

	if watch && workFile != "" {
		go func() {
			if err := it.workingCopy.Watch(ctx, workFile, func(content string) {
				it.edit.Edit(ctx, content)
			}); err != nil {
				logger.Errorf("Stopped watching %s: %v", workFile, err)
			}
		}()
	}

	if metricsAddr != "" {
		server := &http.Server{
			Addr:              metricsAddr,
			Handler:           it.metrics.Handler(),
			ReadHeaderTimeout: metricsReadHeaderTimeout,
		}
		go func() {
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Errorf("Metrics server stopped: %v", err)
			}
		}()
		defer server.Close()
		logger.Infof("Serving metrics on %s/metrics", metricsAddr)
	}

	_, _ = fmt.Fprint(out, editHelp)
	if err := it.loop(ctx, cmd.InOrStdin(), out, workFile); err != nil {
		return err
	}
	return it.finish(ctx, out, workFile)
}

// AddFlags adds the edit-specific flags to the given Cobra command.
func (it *EditController) AddFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("watch", false, "Follow changes made to the working file")
	cmd.Flags().String("metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")
}

func (it *EditController) loop(ctx context.Context, in io.Reader, out io.Writer, workFile string) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		quit, err := it.handle(ctx, out, scanner.Text(), workFile)
		if err != nil {
			_, _ = fmt.Fprintf(out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

func (it *EditController) handle(ctx context.Context, out io.Writer, line, workFile string) (bool, error) {
	if !strings.HasPrefix(line, ":") {
		if it.session.Status().Document == nil {
			return false, commands.ErrNoDocument
		}
		it.edit.Append(ctx, line+"\n")
		return false, nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case ":save", ":w":
		result, err := it.save.Execute(ctx)
		if reportErr := reportSave(out, result, err); reportErr != nil {
			return false, reportErr
		}
		if result.Outcome == commands.OutcomeSaved && workFile != "" {
			return false, it.syncWorkingCopy(workFile)
		}
	case ":blur":
		it.edit.LoseFocus(ctx)
	case ":paste":
		if len(fields) < 2 {
			return false, errors.New("usage: :paste <file> [offset]")
		}
		offset := -1
		if len(fields) > 2 {
			parsed, err := strconv.Atoi(fields[2])
			if err != nil {
				return false, fmt.Errorf("invalid offset %q", fields[2])
			}
			offset = parsed
		}
		placeholder, err := pasteFile(ctx, it.edit, fields[1], offset)
		if err != nil {
			return false, err
		}
		_, _ = fmt.Fprintf(out, "Inserted %s\n", placeholder)
	case ":reload":
		if workFile == "" {
			return false, errors.New("no working file")
		}
		content, err := it.workingCopy.Read(workFile)
		if err != nil {
			return false, err
		}
		it.edit.Edit(ctx, content)
	case ":status":
		status := it.session.Status()
		if doc := status.Document; doc != nil {
			_, _ = fmt.Fprintf(out, "%s dirty=%t images=%d\n", doc.Path, doc.Dirty, status.PendingAssets)
		}
	case ":quit", ":q":
		return true, nil
	case ":help":
		_, _ = fmt.Fprint(out, editHelp)
	default:
		return false, fmt.Errorf("unknown command %q (type :help)", fields[0])
	}
	return false, nil
}

// finish offers to save what the autosave did not get to.
func (it *EditController) finish(ctx context.Context, out io.Writer, workFile string) error {
	it.edit.Close()
	status := it.session.Status()
	if status.Document == nil || !status.Document.Dirty && status.PendingAssets == 0 {
		return nil
	}

	confirmed, err := it.confirmer.Confirm("Save before leaving?", "The note has changes that are not saved yet.")
	if err != nil || !confirmed {
		if status.PendingAssets > 0 {
			_, _ = fmt.Fprintf(out, "%d pasted image(s) were not uploaded and are dropped\n", status.PendingAssets)
		}
		_, _ = fmt.Fprintln(out, "Unsaved text is kept in the session; run `notesync save` later")
		return nil
	}

	result, err := it.save.Execute(ctx)
	if reportErr := reportSave(out, result, err); reportErr != nil {
		return reportErr
	}
	if result.Outcome == commands.OutcomeSaved && workFile != "" {
		return it.syncWorkingCopy(workFile)
	}
	return nil
}

func (it *EditController) syncWorkingCopy(path string) error {
	doc := it.session.Status().Document
	if doc == nil {
		return nil
	}
	return it.workingCopy.Write(path, doc.Content)
}

package controllers

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/rios0rios0/notesync/internal/domain/commands"
)

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(title, description string) (bool, error)
}

// HuhConfirmer asks on the terminal with a huh confirm field.
type HuhConfirmer struct{}

// NewHuhConfirmer creates a new HuhConfirmer.
func NewHuhConfirmer() *HuhConfirmer {
	return &HuhConfirmer{}
}

func (it *HuhConfirmer) Confirm(title, description string) (bool, error) {
	confirmed := false
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		return false, err
	}
	return confirmed, nil
}

// withDiscardConfirmation runs action and, when it refuses to drop unsaved
// changes, asks the user and runs it again with force.
func withDiscardConfirmation(confirmer Confirmer, force bool, action func(force bool) error) error {
	err := action(force)
	if !errors.Is(err, commands.ErrUnsavedChanges) {
		return err
	}
	confirmed, promptErr := confirmer.Confirm(
		"Discard unsaved changes?",
		"The open note has edits that were never saved. They will be lost.",
	)
	if promptErr != nil {
		return fmt.Errorf("%w (pass --force to discard them)", err)
	}
	if !confirmed {
		return err
	}
	return action(true)
}

package controllers

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// RegisterProviders registers all controller providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewHuhConfirmer); err != nil {
		return err
	}
	if err := container.Provide(func(impl *HuhConfirmer) Confirmer { return impl }); err != nil {
		return err
	}

	// Register controller constructors
	constructors := []interface{}{
		NewConfigureController,
		NewListController,
		NewOpenController,
		NewNewNoteController,
		NewEditController,
		NewPasteController,
		NewSaveController,
		NewDeleteController,
		NewBranchesController,
		NewBranchController,
		NewStatusController,
		NewPreviewController,
		NewControllers,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	return nil
}

// NewControllers aggregates all controllers into a slice for the AppInternal.
func NewControllers(
	configureController *ConfigureController,
	listController *ListController,
	openController *OpenController,
	newNoteController *NewNoteController,
	editController *EditController,
	pasteController *PasteController,
	saveController *SaveController,
	deleteController *DeleteController,
	branchesController *BranchesController,
	branchController *BranchController,
	statusController *StatusController,
	previewController *PreviewController,
) *[]entities.Controller {
	return &[]entities.Controller{
		configureController,
		listController,
		openController,
		newNoteController,
		editController,
		pasteController,
		saveController,
		deleteController,
		branchesController,
		branchController,
		statusController,
		previewController,
	}
}

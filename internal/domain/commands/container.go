package commands

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all command providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register command constructors
	constructors := []interface{}{
		NewSystemClock,
		NewSessionCommand,
		NewAssetResolver,
		NewRefreshCommand,
		NewSaveCommand,
		NewAutosaveScheduler,
		NewEditCommand,
		NewOpenCommand,
		NewDeleteCommand,
		NewBranchCommand,
		NewPreviewCommand,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	bindings := []interface{}{
		func(impl *SessionCommand) SessionManager { return impl },
		func(impl *SaveCommand) Save { return impl },
		func(impl *EditCommand) Edit { return impl },
		func(impl *OpenCommand) Open { return impl },
		func(impl *DeleteCommand) Delete { return impl },
		func(impl *RefreshCommand) Listing { return impl },
		func(impl *BranchCommand) Branch { return impl },
		func(impl *PreviewCommand) Preview { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}

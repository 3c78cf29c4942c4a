package entities

import (
	"go.uber.org/dig"
)

// RegisterProviders registers all entity providers with the DIG container.
// Settings start at their defaults; the root command overwrites them in place
// once the config file and flags are parsed.
func RegisterProviders(container *dig.Container) error {
	if err := container.Provide(NewSession); err != nil {
		return err
	}
	if err := container.Provide(DefaultSettings); err != nil {
		return err
	}
	return nil
}

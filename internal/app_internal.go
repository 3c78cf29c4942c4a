package internal

import (
	"context"
	"os"

	configEntities "github.com/rios0rios0/gitforge/pkg/config/domain/entities"
	configHelpers "github.com/rios0rios0/gitforge/pkg/config/domain/helpers"
	globalEntities "github.com/rios0rios0/gitforge/pkg/global/domain/entities"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/notesync/internal/domain/commands"
	"github.com/rios0rios0/notesync/internal/domain/entities"
)

// tokenEnvVar is consulted before the provider's own variables when neither
// flag nor file sets a token.
const tokenEnvVar = "NOTESYNC_TOKEN"

// StartupOptions are the global flags that shape every command.
type StartupOptions struct {
	ConfigPath string
	Token      string
}

// AppInternal holds the controllers and prepares the shared session before
// any of them runs.
type AppInternal struct {
	controllers []entities.Controller
	settings    *entities.Settings
	session     commands.SessionManager
}

// NewAppInternal creates the application context.
func NewAppInternal(
	controllers *[]entities.Controller,
	settings *entities.Settings,
	session commands.SessionManager,
) *AppInternal {
	return &AppInternal{
		controllers: *controllers,
		settings:    settings,
		session:     session,
	}
}

// GetControllers returns every registered controller.
func (it *AppInternal) GetControllers() []entities.Controller {
	return it.controllers
}

// Start loads the settings in place and restores the session. A missing config
// file is fine; a broken one is an error.
func (it *AppInternal) Start(ctx context.Context, opts StartupOptions) error {
	settings, err := loadSettings(opts.ConfigPath)
	if err != nil {
		return err
	}

	switch {
	case opts.Token != "":
		settings.Token = configEntities.ResolveToken(opts.Token)
	case settings.Token == "":
		settings.Token = tokenFromEnv()
	}

	*it.settings = *settings
	it.session.Bootstrap(ctx)
	return nil
}

func loadSettings(configPath string) (*entities.Settings, error) {
	path := configPath
	if path == "" {
		found, err := configHelpers.FindConfigFile(entities.AppName)
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return entities.DefaultSettings(), nil
		}
		path = found
	}

	logger.Debugf("Using config file: %s", path)
	return entities.NewSettings(path)
}

func tokenFromEnv() string {
	if value := os.Getenv(tokenEnvVar); value != "" {
		logger.Debugf("Using token from $%s", tokenEnvVar)
		return value
	}
	if value := configHelpers.ResolveTokenFromEnv(globalEntities.GITHUB); value != "" {
		logger.Debugf("Using token from %s", configHelpers.TokenEnvHint(globalEntities.GITHUB))
		return value
	}
	return ""
}

package repositories

import (
	"go.uber.org/dig"

	"github.com/rios0rios0/notesync/internal/domain/entities"
	domainRepos "github.com/rios0rios0/notesync/internal/domain/repositories"
	ghRepo "github.com/rios0rios0/notesync/internal/infrastructure/repositories/github"
	mdRepo "github.com/rios0rios0/notesync/internal/infrastructure/repositories/markdown"
	metricsRepo "github.com/rios0rios0/notesync/internal/infrastructure/repositories/metrics"
	indexRepo "github.com/rios0rios0/notesync/internal/infrastructure/repositories/searchindex"
	sessionRepo "github.com/rios0rios0/notesync/internal/infrastructure/repositories/session"
	wcRepo "github.com/rios0rios0/notesync/internal/infrastructure/repositories/workingcopy"
)

// RegisterProviders registers all repository providers with the DIG container.
func RegisterProviders(container *dig.Container) error {
	// Register content registry with all provider factories. Settings are read
	// when a client is created, after the config file has been loaded.
	if err := container.Provide(func(settings *entities.Settings) *ContentRegistry {
		reg := NewContentRegistry()
		reg.Register(ghRepo.Name(), func(token string) domainRepos.ContentRepository {
			return ghRepo.NewGitHubContentRepository(token, settings.APIURL, settings.Timeout)
		})
		return reg
	}); err != nil {
		return err
	}

	constructors := []interface{}{
		sessionRepo.NewFileSessionRepository,
		indexRepo.NewSchemaSearchIndexRepository,
		mdRepo.NewGoldmarkRendererRepository,
		metricsRepo.NewPrometheusSaveMetricsRepository,
		wcRepo.NewFsnotifyWorkingCopyRepository,
	}
	for _, constructor := range constructors {
		if err := container.Provide(constructor); err != nil {
			return err
		}
	}

	// Bind interfaces to implementations
	bindings := []interface{}{
		func(impl *sessionRepo.FileSessionRepository) domainRepos.SessionRepository { return impl },
		func(impl *indexRepo.SchemaSearchIndexRepository) domainRepos.SearchIndexRepository { return impl },
		func(impl *mdRepo.GoldmarkRendererRepository) domainRepos.RendererRepository { return impl },
		func(impl *metricsRepo.PrometheusSaveMetricsRepository) domainRepos.SaveMetricsRepository { return impl },
		func(impl *wcRepo.FsnotifyWorkingCopyRepository) domainRepos.WorkingCopyRepository { return impl },
	}
	for _, binding := range bindings {
		if err := container.Provide(binding); err != nil {
			return err
		}
	}

	return nil
}

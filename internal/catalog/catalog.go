package catalog

import (
	"context"
	"fmt"

	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/github"
	"github.com/quantmind-br/gitpilot/internal/heuristics"
	"github.com/quantmind-br/gitpilot/internal/security"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
)

// RepositoryLister lists the public repositories of an account
type RepositoryLister interface {
	ListRepositories(ctx context.Context, username string) ([]github.Repository, error)
}

// ReadmeFetcher downloads a repository README from one branch
type ReadmeFetcher interface {
	FetchReadme(ctx context.Context, username, repo, branch string) (string, error)
}

// Builder turns a repository listing into classified records
type Builder struct {
	lister  RepositoryLister
	readmes ReadmeFetcher
	cfg     config.GitHubConfig
	console *ui.Console
	logger  *zerolog.Logger
}

// NewBuilder creates a catalog builder
func NewBuilder(lister RepositoryLister, readmes ReadmeFetcher, cfg config.GitHubConfig, console *ui.Console, log *zerolog.Logger) *Builder {
	if console == nil {
		console = ui.NewConsole(nil, nil)
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}

	return &Builder{
		lister:  lister,
		readmes: readmes,
		cfg:     cfg,
		console: console,
		logger:  log,
	}
}

// Build lists every repository of username and classifies each one from its
// README. Records keep listing order.
func (b *Builder) Build(ctx context.Context, username string) ([]core.RepositoryRecord, error) {
	b.console.Notice("Fetching repositories for %s ...", username)

	repos, err := b.lister.ListRepositories(ctx, username)
	if err != nil {
		return nil, err
	}

	b.logger.Debug().
		Str("username", username).
		Int("count", len(repos)).
		Msg("repositories listed")

	records := make([]core.RepositoryRecord, 0, len(repos))
	for _, repo := range repos {
		if err := security.ValidateRepoName(repo.Name); err != nil {
			b.logger.Warn().Err(err).Str("repository", repo.Name).Msg("skipping repository")
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("build catalog: %w", err)
		}

		records = append(records, core.RepositoryRecord{
			Name:             repo.Name,
			URL:              b.cfg.RepoURL(repo.Name),
			Description:      repo.Description,
			SupportedSystems: b.classify(ctx, username, repo.Name),
		})
	}

	return records, nil
}

// classify tries each README branch in order. The first README fetched
// decides; a repository without one is assumed to run everywhere.
func (b *Builder) classify(ctx context.Context, username, name string) core.PlatformSet {
	for _, branch := range b.cfg.ReadmeBranches {
		readme, err := b.readmes.FetchReadme(ctx, username, name, branch)
		if err != nil {
			b.logger.Debug().
				Err(err).
				Str("repository", name).
				Str("branch", branch).
				Msg("readme not available")
			continue
		}

		systems := heuristics.ClassifyReadme(readme)
		b.logger.Debug().
			Str("repository", name).
			Str("branch", branch).
			Str("systems", systems.String()).
			Msg("repository classified")
		return systems
	}

	return core.BothPlatforms()
}

package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/quantmind-br/gitpilot/internal/acquire"
	"github.com/quantmind-br/gitpilot/internal/catalog"
	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/db"
	"github.com/quantmind-br/gitpilot/internal/github"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/quantmind-br/gitpilot/internal/menu"
	"github.com/quantmind-br/gitpilot/internal/runner"
	"github.com/quantmind-br/gitpilot/internal/syspkg"
	"github.com/quantmind-br/gitpilot/internal/syspkg/pip"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Catalog produces the classified repository list
type Catalog interface {
	Build(ctx context.Context, username string) ([]core.RepositoryRecord, error)
}

// Selector lets the user pick a repository
type Selector interface {
	Run(ctx context.Context, records []core.RepositoryRecord, platform core.Platform) (string, error)
}

// Acquirer puts a repository on disk and moves the session into it
type Acquirer interface {
	Acquire(ctx context.Context, session *core.Session, repoURL string) (*core.AcquiredRepository, error)
}

// Installer installs repository dependencies
type Installer interface {
	InstallAll(ctx context.Context, session *core.Session) syspkg.Summary
}

// Executor discovers and runs the repository's script
type Executor interface {
	Run(ctx context.Context, session *core.Session) (runner.Result, error)
}

// HistoryStore records finished runs
type HistoryStore interface {
	Create(ctx context.Context, run *db.Run) error
}

// Pipeline wires the stages of one gitpilot run
type Pipeline struct {
	Catalog   Catalog
	Selector  Selector
	Acquirer  Acquirer
	Installer Installer
	Executor  Executor
	History   HistoryStore // optional
	GitHub    config.GitHubConfig
	Log       *zerolog.Logger
}

// New builds the production pipeline for session. history may be nil.
func New(cfg *config.Config, log *zerolog.Logger, session *core.Session, history HistoryStore) *Pipeline {
	fs := afero.NewOsFs()
	cmdRunner := helpers.NewOSCommandRunner()
	client := github.NewClient(cfg.GitHub, log)

	return &Pipeline{
		Catalog:   catalog.NewBuilder(client, client, cfg.GitHub, session.Console, log),
		Selector:  menu.NewSelector(session.Console, menu.NewTerminalKeyReader(), log),
		Acquirer:  acquire.NewRegistry(cfg, log),
		Installer: syspkg.NewInstaller(fs, pip.NewProvider(cmdRunner, cfg.Tools.Python), log),
		Executor:  runner.NewExecutor(fs, cmdRunner, ui.NewLinePrompter(), cfg.Tools, log),
		History:   history,
		GitHub:    cfg.GitHub,
		Log:       log,
	}
}

// Run lists, selects, acquires, installs and executes in order. Advisory
// failures are printed by the stages; only fatal ones come back as errors.
func (p *Pipeline) Run(ctx context.Context, session *core.Session) error {
	log := p.logger()

	records, err := p.Catalog.Build(ctx, p.GitHub.Username)
	if err != nil {
		return fmt.Errorf("list repositories: %w", err)
	}
	log.Debug().Int("repositories", len(records)).Msg("catalog built")

	name, err := p.Selector.Run(ctx, records, session.Platform)
	if err != nil {
		return err
	}

	session.Console.Success("Selected repository: %s", name)

	run := &db.Run{
		RunID:      helpers.GenerateRunID(name),
		Repository: name,
		Platform:   string(session.Platform),
		StartedAt:  time.Now().UTC(),
	}

	repo, err := p.Acquirer.Acquire(ctx, session, p.repoURL(records, name))
	if err != nil {
		run.Status = core.RunAcquireFailed
		p.record(ctx, run)
		return err
	}
	run.Method = string(repo.Method)
	run.Directory = repo.Dir

	summary := p.Installer.InstallAll(ctx, session)
	log.Debug().
		Int("installed", summary.Installed).
		Int("failed", summary.Failed).
		Msg("dependencies processed")

	result, err := p.Executor.Run(ctx, session)
	run.Script = result.Script
	run.Status = result.Status()
	p.record(ctx, run)

	return err
}

func (p *Pipeline) repoURL(records []core.RepositoryRecord, name string) string {
	for _, r := range records {
		if r.Name == name && r.URL != "" {
			return r.URL
		}
	}
	return p.GitHub.RepoURL(name)
}

// record stores run in the history. Failures only reach the log.
func (p *Pipeline) record(ctx context.Context, run *db.Run) {
	if p.History == nil {
		return
	}
	// Recorded even after an interrupt
	if err := p.History.Create(context.WithoutCancel(ctx), run); err != nil {
		p.logger().Warn().Err(err).Str("run_id", run.RunID).Msg("failed to record run")
	}
}

func (p *Pipeline) logger() *zerolog.Logger {
	if p.Log == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return p.Log
}

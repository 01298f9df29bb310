package git

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/quantmind-br/gitpilot/internal/acquire/base"
	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/fsops"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const fallbackNotice = "Git not found or cloning failed, switching to ZIP download..."

// Backend clones repositories with the git command line client
type Backend struct {
	*base.Backend
}

// New creates a new git backend
func New(cfg *config.Config, log *zerolog.Logger) *Backend {
	return &Backend{Backend: base.New(cfg, log)}
}

// NewWithDeps creates a new git backend with injected dependencies
func NewWithDeps(cfg *config.Config, log *zerolog.Logger, fs afero.Fs, runner helpers.CommandRunner) *Backend {
	return &Backend{Backend: base.NewWithDeps(cfg, log, fs, runner, nil)}
}

// Name returns the backend name
func (b *Backend) Name() string {
	return "git"
}

// Acquire probes for git, clones repoURL into the session directory and
// moves the session into the clone
func (b *Backend) Acquire(ctx context.Context, session *core.Session, repoURL string) (*core.AcquiredRepository, error) {
	repo, err := b.clone(ctx, session, repoURL)
	if err != nil {
		// no fallback follows a cancelled run
		if ctx.Err() == nil {
			session.Console.Warning(fallbackNotice)
		}
		return nil, err
	}
	return repo, nil
}

func (b *Backend) clone(ctx context.Context, session *core.Session, repoURL string) (*core.AcquiredRepository, error) {
	tool := b.Cfg.Tools.Git

	if _, err := b.Runner.RunCommand(ctx, tool, "--version"); err != nil {
		return nil, fmt.Errorf("git not available: %w", err)
	}

	b.Log.Debug().Str("url", repoURL).Str("dir", session.WorkDir).Msg("cloning repository")

	if err := b.Runner.RunCommandInDirStreaming(ctx, session.WorkDir, session.Console.Out, session.Console.Err, tool, "clone", repoURL); err != nil {
		return nil, fmt.Errorf("git clone: %w", err)
	}

	dir := filepath.Join(session.WorkDir, helpers.RepoNameFromURL(repoURL))
	if !fsops.IsDir(b.Fs, dir) {
		return nil, fmt.Errorf("clone directory not found: %s", dir)
	}

	session.Chdir(dir)

	return &core.AcquiredRepository{
		Method: core.AcquireGit,
		Dir:    dir,
	}, nil
}

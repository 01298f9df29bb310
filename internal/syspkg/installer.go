package syspkg

import (
	"context"

	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/quantmind-br/gitpilot/internal/heuristics"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Summary counts the outcome of an installation pass
type Summary struct {
	Manifests []string
	Installed int
	Failed    int
}

// Installer installs the dependencies of an acquired repository
type Installer struct {
	fs       afero.Fs
	provider Provider
	logger   *zerolog.Logger
}

// NewInstaller creates an installer backed by provider
func NewInstaller(fs afero.Fs, provider Provider, log *zerolog.Logger) *Installer {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Installer{fs: fs, provider: provider, logger: log}
}

// InstallAll installs every requirements manifest below the session
// directory. Failures are reported and counted, never returned: a
// repository with broken dependencies may still run.
func (i *Installer) InstallAll(ctx context.Context, session *core.Session) Summary {
	var summary Summary

	manifests, err := heuristics.FindManifests(i.fs, session.WorkDir)
	if err != nil {
		i.logger.Warn().Err(err).Str("dir", session.WorkDir).Msg("manifest search failed")
		return summary
	}
	summary.Manifests = manifests

	for _, manifest := range manifests {
		display := helpers.DisplayPath(session.WorkDir, manifest)
		session.Console.Info("Installing dependencies from %s", display)

		err := i.provider.Install(ctx, session.WorkDir, manifest, session.Console.Out, session.Console.Err)
		if err != nil {
			session.Console.Error("Failed to install dependencies from %s", display)
			i.logger.Warn().
				Err(err).
				Str("provider", i.provider.Name()).
				Str("manifest", manifest).
				Msg("dependency installation failed")
			summary.Failed++
			continue
		}
		summary.Installed++
	}

	i.logger.Debug().
		Int("installed", summary.Installed).
		Int("failed", summary.Failed).
		Msg("dependency installation finished")

	return summary
}

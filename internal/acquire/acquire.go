package acquire

import (
	"context"
	"errors"
	"fmt"

	"github.com/quantmind-br/gitpilot/internal/acquire/archive"
	"github.com/quantmind-br/gitpilot/internal/acquire/git"
	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/rs/zerolog"
)

// Backend interface that all acquisition methods must implement
type Backend interface {
	// Name returns the backend name
	Name() string

	// Acquire puts the repository at repoURL on disk and moves the
	// session into it
	Acquire(ctx context.Context, session *core.Session, repoURL string) (*core.AcquiredRepository, error)
}

// Registry tries its backends in priority order until one succeeds
type Registry struct {
	backends []Backend
	logger   *zerolog.Logger
}

// NewRegistry creates a registry with the git and archive backends
func NewRegistry(cfg *config.Config, log *zerolog.Logger) *Registry {
	// Register backends in priority order
	// 1. git clone keeps history and submodule-free repos intact
	// 2. ZIP archive works without git installed
	return NewRegistryWithBackends(log, git.New(cfg, log), archive.New(cfg, log))
}

// NewRegistryWithBackends creates a registry over an explicit backend list
func NewRegistryWithBackends(log *zerolog.Logger, backends ...Backend) *Registry {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Registry{backends: backends, logger: log}
}

// Acquire fetches repoURL with the first backend that succeeds. When every
// backend fails the error wraps core.ErrAcquisitionFailed.
func (r *Registry) Acquire(ctx context.Context, session *core.Session, repoURL string) (*core.AcquiredRepository, error) {
	var errs []error

	for _, backend := range r.backends {
		r.logger.Debug().
			Str("backend", backend.Name()).
			Str("url", repoURL).
			Msg("acquiring repository")

		repo, err := backend.Acquire(ctx, session, repoURL)
		if err == nil {
			r.logger.Info().
				Str("backend", backend.Name()).
				Str("dir", repo.Dir).
				Msg("repository acquired")
			return repo, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrInterrupted, ctxErr)
		}

		r.logger.Warn().
			Err(err).
			Str("backend", backend.Name()).
			Str("url", repoURL).
			Msg("acquisition backend failed")
		errs = append(errs, fmt.Errorf("%s: %w", backend.Name(), err))
	}

	return nil, fmt.Errorf("%w: %w", core.ErrAcquisitionFailed, errors.Join(errs...))
}

// ListBackends returns all registered backends
func (r *Registry) ListBackends() []string {
	names := make([]string, len(r.backends))
	for i, backend := range r.backends {
		names[i] = backend.Name()
	}
	return names
}

package base

import (
	"net/http"

	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Backend holds the dependencies shared by every acquisition backend.
// It does not implement acquire.Backend; concrete backends embed it.
type Backend struct {
	Fs     afero.Fs
	Runner helpers.CommandRunner
	HTTP   *http.Client
	Log    *zerolog.Logger
	Cfg    *config.Config
}

// New creates a Backend with the default system dependencies
func New(cfg *config.Config, log *zerolog.Logger) *Backend {
	return NewWithDeps(cfg, log, afero.NewOsFs(), helpers.NewOSCommandRunner(), &http.Client{})
}

// NewWithDeps creates a Backend with injected dependencies (for tests)
func NewWithDeps(cfg *config.Config, log *zerolog.Logger, fs afero.Fs, runner helpers.CommandRunner, client *http.Client) *Backend {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	if client == nil {
		client = &http.Client{}
	}

	return &Backend{
		Fs:     fs,
		Runner: runner,
		HTTP:   client,
		Log:    log,
		Cfg:    cfg,
	}
}

package paths

import (
	"os"
	"path/filepath"

	"github.com/quantmind-br/gitpilot/internal/config"
)

// Resolver centralizes gitpilot's default locations.
// Configured paths win; otherwise they derive from HOME and the current directory.
type Resolver struct {
	homeDir string
	cwd     string
	cfg     *config.Config
}

// NewResolver creates a Resolver for the current user and working directory
func NewResolver(cfg *config.Config) *Resolver {
	homeDir, _ := os.UserHomeDir()
	cwd, _ := os.Getwd()
	return NewResolverWith(cfg, homeDir, cwd)
}

// NewResolverWith creates a Resolver with explicit home and working directories (useful for tests)
func NewResolverWith(cfg *config.Config, homeDir, cwd string) *Resolver {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Resolver{
		homeDir: homeDir,
		cwd:     cwd,
		cfg:     cfg,
	}
}

// HomeDir returns the resolved HOME directory
func (r *Resolver) HomeDir() string {
	return r.homeDir
}

// WorkspaceDir returns where repositories are cloned or extracted.
// Defaults to the current directory; a relative setting is resolved against
// it so the result is always absolute.
func (r *Resolver) WorkspaceDir() string {
	dir := r.cfg.Paths.WorkspaceDir
	if dir == "" {
		return r.cwd
	}
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(r.cwd, dir)
	}
	return filepath.Clean(dir)
}

// DataDir returns ~/.local/share/gitpilot unless configured
func (r *Resolver) DataDir() string {
	if r.cfg.Paths.DataDir != "" {
		return r.cfg.Paths.DataDir
	}
	return filepath.Join(r.homeDir, ".local", "share", "gitpilot")
}

// DBFile returns the run history database path
func (r *Resolver) DBFile() string {
	if r.cfg.Paths.DBFile != "" {
		return r.cfg.Paths.DBFile
	}
	return filepath.Join(r.DataDir(), "history.db")
}

// LogFile returns the log file path
func (r *Resolver) LogFile() string {
	if r.cfg.Paths.LogFile != "" {
		return r.cfg.Paths.LogFile
	}
	return filepath.Join(r.DataDir(), "gitpilot.log")
}

// ConfigDir returns ~/.config/gitpilot
func (r *Resolver) ConfigDir() string {
	return filepath.Join(r.homeDir, ".config", "gitpilot")
}

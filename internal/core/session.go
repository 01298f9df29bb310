package core

import (
	"io"
	"os"

	"github.com/quantmind-br/gitpilot/internal/ui"
)

// Session is the execution context threaded through every pipeline stage.
// WorkDir replaces the process working directory: stages move into a
// repository by updating it, and subprocesses run with it as their Dir.
type Session struct {
	WorkDir  string
	Platform Platform
	Stdin    io.Reader
	Console  *ui.Console
}

// NewSession creates a session bound to the process standard streams
func NewSession(workDir string, platform Platform) *Session {
	return &Session{
		WorkDir:  workDir,
		Platform: platform,
		Stdin:    os.Stdin,
		Console:  ui.NewConsole(os.Stdout, os.Stderr),
	}
}

// Chdir moves the session into dir
func (s *Session) Chdir(dir string) {
	s.WorkDir = dir
}

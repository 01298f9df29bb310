package helpers

import (
	"context"
	"io"
)

// MockCommandRunner is a mock implementation of CommandRunner for testing
type MockCommandRunner struct {
	CommandExistsFunc            func(name string) bool
	RunCommandFunc               func(ctx context.Context, name string, args ...string) (string, error)
	RunCommandInDirStreamingFunc func(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error
	RunInteractiveFunc           func(ctx context.Context, dir string, stdin io.Reader, stdout, stderr io.Writer, name string, args ...string) error
	GetExitCodeFunc              func(err error) int
}

// CommandExists implements CommandRunner.CommandExists
func (m *MockCommandRunner) CommandExists(name string) bool {
	if m.CommandExistsFunc != nil {
		return m.CommandExistsFunc(name)
	}
	return false
}

// RunCommand implements CommandRunner.RunCommand
func (m *MockCommandRunner) RunCommand(ctx context.Context, name string, args ...string) (string, error) {
	if m.RunCommandFunc != nil {
		return m.RunCommandFunc(ctx, name, args...)
	}
	return "", nil
}

// RunCommandInDirStreaming implements CommandRunner.RunCommandInDirStreaming
func (m *MockCommandRunner) RunCommandInDirStreaming(ctx context.Context, dir string, stdout, stderr io.Writer, name string, args ...string) error {
	if m.RunCommandInDirStreamingFunc != nil {
		return m.RunCommandInDirStreamingFunc(ctx, dir, stdout, stderr, name, args...)
	}
	return nil
}

// RunInteractive implements CommandRunner.RunInteractive
func (m *MockCommandRunner) RunInteractive(ctx context.Context, dir string, stdin io.Reader, stdout, stderr io.Writer, name string, args ...string) error {
	if m.RunInteractiveFunc != nil {
		return m.RunInteractiveFunc(ctx, dir, stdin, stdout, stderr, name, args...)
	}
	return nil
}

// GetExitCode implements CommandRunner.GetExitCode
func (m *MockCommandRunner) GetExitCode(err error) int {
	if m.GetExitCodeFunc != nil {
		return m.GetExitCodeFunc(err)
	}
	if err != nil {
		return 1
	}
	return 0
}

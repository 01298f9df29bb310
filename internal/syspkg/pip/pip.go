package pip

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/quantmind-br/gitpilot/internal/helpers"
)

// Provider installs Python requirements with "python -m pip"
type Provider struct {
	runner helpers.CommandRunner
	python string
}

// NewProvider creates a pip provider driving the given interpreter
func NewProvider(runner helpers.CommandRunner, python string) *Provider {
	return &Provider{runner: runner, python: python}
}

// Name returns the provider name
func (p *Provider) Name() string {
	return "pip"
}

// Install runs "python -m pip install -r manifest" in dir
func (p *Provider) Install(ctx context.Context, dir, manifest string, stdout, stderr io.Writer) error {
	err := p.runner.RunCommandInDirStreaming(ctx, dir, stdout, stderr, p.python, "-m", "pip", "install", "-r", manifest)
	if err != nil {
		return fmt.Errorf("pip install failed: %w", err)
	}
	return nil
}

// Version returns the first line of "python -m pip --version"
func (p *Provider) Version(ctx context.Context) (string, error) {
	output, err := p.runner.RunCommand(ctx, p.python, "-m", "pip", "--version")
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	return line, nil
}

package git

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(errOut io.Writer) *core.Session {
	return &core.Session{
		WorkDir:  "/work",
		Platform: core.PlatformLinux,
		Console:  ui.NewConsole(io.Discard, errOut),
	}
}

func TestName(t *testing.T) {
	assert.Equal(t, "git", New(config.Default(), nil).Name())
}

func TestAcquireClones(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/work", 0755))

	var cloneDir string
	var cloneArgs []string
	runner := &helpers.MockCommandRunner{
		RunCommandInDirStreamingFunc: func(_ context.Context, dir string, _, _ io.Writer, name string, args ...string) error {
			cloneDir = dir
			cloneArgs = append([]string{name}, args...)
			return fs.MkdirAll("/work/demo", 0755)
		},
	}

	session := newSession(nil)
	repo, err := NewWithDeps(config.Default(), nil, fs, runner).
		Acquire(context.Background(), session, "https://github.com/octocat/demo.git")

	require.NoError(t, err)
	assert.Equal(t, core.AcquireGit, repo.Method)
	assert.Equal(t, "/work/demo", repo.Dir)
	assert.Empty(t, repo.Branch)
	assert.Equal(t, "/work/demo", session.WorkDir)
	assert.Equal(t, "/work", cloneDir)
	assert.Equal(t, []string{"git", "clone", "https://github.com/octocat/demo.git"}, cloneArgs)
}

func TestAcquireUsesConfiguredTool(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.Git = "/opt/git/bin/git"

	var probed string
	runner := &helpers.MockCommandRunner{
		RunCommandFunc: func(_ context.Context, name string, _ ...string) (string, error) {
			probed = name
			return "", errors.New("not found")
		},
	}

	_, err := NewWithDeps(cfg, nil, afero.NewMemMapFs(), runner).
		Acquire(context.Background(), newSession(nil), "https://github.com/octocat/demo.git")

	require.Error(t, err)
	assert.Equal(t, "/opt/git/bin/git", probed)
}

func TestAcquireFailures(t *testing.T) {
	tests := []struct {
		name   string
		runner *helpers.MockCommandRunner
	}{
		{
			name: "probe fails",
			runner: &helpers.MockCommandRunner{
				RunCommandFunc: func(context.Context, string, ...string) (string, error) {
					return "", errors.New("executable file not found")
				},
			},
		},
		{
			name: "clone fails",
			runner: &helpers.MockCommandRunner{
				RunCommandInDirStreamingFunc: func(context.Context, string, io.Writer, io.Writer, string, ...string) error {
					return errors.New("exit status 128")
				},
			},
		},
		{
			name:   "clone directory missing",
			runner: &helpers.MockCommandRunner{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errOut bytes.Buffer
			session := newSession(&errOut)

			repo, err := NewWithDeps(config.Default(), nil, afero.NewMemMapFs(), tt.runner).
				Acquire(context.Background(), session, "https://github.com/octocat/demo.git")

			require.Error(t, err)
			assert.Nil(t, repo)
			assert.Equal(t, "/work", session.WorkDir)
			assert.Contains(t, errOut.String(), fallbackNotice)
		})
	}
}

func TestAcquireCancelledSkipsFallbackNotice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	runner := &helpers.MockCommandRunner{
		RunCommandInDirStreamingFunc: func(context.Context, string, io.Writer, io.Writer, string, ...string) error {
			cancel()
			return errors.New("signal: interrupt")
		},
	}

	var errOut bytes.Buffer
	session := newSession(&errOut)

	repo, err := NewWithDeps(config.Default(), nil, afero.NewMemMapFs(), runner).
		Acquire(ctx, session, "https://github.com/octocat/demo.git")

	require.Error(t, err)
	assert.Nil(t, repo)
	assert.NotContains(t, errOut.String(), fallbackNotice)
}

package base

import (
	"io"
	"net/http"
	"testing"

	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{}
	logger := zerolog.New(io.Discard)

	backend := New(cfg, &logger)

	require.NotNil(t, backend)
	require.Equal(t, cfg, backend.Cfg)
	require.Equal(t, &logger, backend.Log)
	require.NotNil(t, backend.Fs)
	require.NotNil(t, backend.Runner)
	require.NotNil(t, backend.HTTP)
}

func TestNewWithDeps(t *testing.T) {
	cfg := &config.Config{}
	logger := zerolog.New(io.Discard)
	fs := afero.NewMemMapFs()
	runner := &helpers.MockCommandRunner{}
	client := &http.Client{}

	backend := NewWithDeps(cfg, &logger, fs, runner, client)

	require.Equal(t, fs, backend.Fs)
	require.Equal(t, runner, backend.Runner)
	require.Same(t, client, backend.HTTP)
}

func TestNewWithNilDeps(t *testing.T) {
	backend := NewWithDeps(nil, nil, afero.NewMemMapFs(), &helpers.MockCommandRunner{}, nil)

	require.NotNil(t, backend.Cfg)
	require.Equal(t, "git", backend.Cfg.Tools.Git)
	require.NotNil(t, backend.Log)
	require.NotNil(t, backend.HTTP)
}

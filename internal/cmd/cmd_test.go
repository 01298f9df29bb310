package cmd

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
)

// testConfig returns defaults with every path inside a temp dir
func testConfig(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkspaceDir = filepath.Join(dir, "workspace")
	cfg.Paths.DataDir = filepath.Join(dir, "data")
	cfg.Paths.DBFile = filepath.Join(dir, "data", "history.db")
	cfg.Paths.LogFile = filepath.Join(dir, "data", "gitpilot.log")
	return cfg
}

func testLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard).Level(zerolog.WarnLevel)
	return &logger
}

func disableColors(t *testing.T) {
	t.Helper()
	ui.DisableColors()
	t.Cleanup(ui.EnableColors)
}

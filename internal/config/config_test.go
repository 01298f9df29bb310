package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Test loading config (will use defaults if file doesn't exist)
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.NotEmpty(t, cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Paths.DataDir)
	assert.NotEmpty(t, cfg.Tools.Python)
	assert.Equal(t, 100, cfg.GitHub.PerPage)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GITPILOT_GITHUB_USERNAME", "octocat")
	t.Setenv("GITPILOT_TOOLS_PYTHON", "/opt/python/bin/python3.12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "octocat", cfg.GitHub.Username)
	assert.Equal(t, "/opt/python/bin/python3.12", cfg.Tools.Python)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
[github]
username = "someone"
archive_branches = ["trunk"]

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "someone", cfg.GitHub.Username)
	assert.Equal(t, []string{"trunk"}, cfg.GitHub.ArchiveBranches)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched keys keep their defaults
	assert.Equal(t, []string{"main", "master", "develop"}, cfg.GitHub.ReadmeBranches)
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "cyb2rS2c", cfg.GitHub.Username)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIBase)
	assert.Equal(t, "https://raw.githubusercontent.com", cfg.GitHub.RawBase)
	assert.Equal(t, []string{"main", "master", "develop"}, cfg.GitHub.ReadmeBranches)
	assert.Equal(t, []string{"main", "master"}, cfg.GitHub.ArchiveBranches)
	assert.Equal(t, "git", cfg.Tools.Git)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.True(t, cfg.History.Enabled)
}

func TestGitHubConfigHelpers(t *testing.T) {
	g := GitHubConfig{Username: "cyb2rS2c", WebBase: "https://github.com/"}
	assert.Equal(t, "https://github.com/cyb2rS2c/demo.git", g.RepoURL("demo"))
	assert.Equal(t, 30*time.Second, g.Timeout())

	g.RequestTimeout = 5
	assert.Equal(t, 5*time.Second, g.Timeout())
}

func TestDefaultPython(t *testing.T) {
	assert.Equal(t, "python", DefaultPython("windows"))
	assert.Equal(t, "python3", DefaultPython("linux"))
	assert.Equal(t, "python3", DefaultPython("darwin"))
}

func TestExpandPath(t *testing.T) {
	homeDir, _ := os.UserHomeDir()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty path",
			input: "",
			want:  "",
		},
		{
			name:  "absolute path",
			input: "/usr/local/bin",
			want:  "/usr/local/bin",
		},
		{
			name:  "home expansion",
			input: "~/test",
			want:  filepath.Join(homeDir, "test"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

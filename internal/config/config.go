package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	GitHub  GitHubConfig  `mapstructure:"github"`
	Tools   ToolsConfig   `mapstructure:"tools"`
	Paths   PathsConfig   `mapstructure:"paths"`
	Logging LoggingConfig `mapstructure:"logging"`
	History HistoryConfig `mapstructure:"history"`
}

// GitHubConfig contains the account and endpoints repositories are listed from
type GitHubConfig struct {
	Username        string   `mapstructure:"username"`
	APIBase         string   `mapstructure:"api_base"`
	RawBase         string   `mapstructure:"raw_base"`
	WebBase         string   `mapstructure:"web_base"`
	PerPage         int      `mapstructure:"per_page"`
	ReadmeBranches  []string `mapstructure:"readme_branches"`
	ArchiveBranches []string `mapstructure:"archive_branches"`
	RequestTimeout  int      `mapstructure:"request_timeout"` // seconds
}

// ToolsConfig names the external programs gitpilot invokes
type ToolsConfig struct {
	Git        string `mapstructure:"git"`
	Python     string `mapstructure:"python"`
	PowerShell string `mapstructure:"powershell"`
	Shell      string `mapstructure:"shell"`
	Cmd        string `mapstructure:"cmd"`
}

// PathsConfig contains path-related configuration
type PathsConfig struct {
	WorkspaceDir string `mapstructure:"workspace_dir"`
	DataDir      string `mapstructure:"data_dir"`
	DBFile       string `mapstructure:"db_file"`
	LogFile      string `mapstructure:"log_file"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Color string `mapstructure:"color"`
}

// HistoryConfig controls the run history database
type HistoryConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load loads configuration from file and environment
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("toml")

	// Add config paths
	homeDir, err := os.UserHomeDir()
	if err == nil {
		v.AddConfigPath(filepath.Join(homeDir, ".config", "gitpilot"))
	}
	v.AddConfigPath(".")

	setDefaults(v)

	// Environment variable overrides
	v.SetEnvPrefix("GITPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Paths.WorkspaceDir = expandPath(cfg.Paths.WorkspaceDir)
	cfg.Paths.DataDir = expandPath(cfg.Paths.DataDir)
	cfg.Paths.DBFile = expandPath(cfg.Paths.DBFile)
	cfg.Paths.LogFile = expandPath(cfg.Paths.LogFile)

	if cfg.Tools.Python == "" {
		cfg.Tools.Python = DefaultPython(runtime.GOOS)
	}

	return &cfg, nil
}

// Default returns the configuration used when no file or environment override exists
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// Defaults always decode; the error path is unreachable with setDefaults' types.
	_ = v.Unmarshal(&cfg)
	cfg.Tools.Python = DefaultPython(runtime.GOOS)
	return &cfg
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	homeDir, err := os.UserHomeDir()
	if err != nil || homeDir == "" {
		homeDir = os.Getenv("HOME")
	}
	if homeDir == "" {
		homeDir = "."
	}
	dataDir := filepath.Join(homeDir, ".local", "share", "gitpilot")

	v.SetDefault("github.username", "cyb2rS2c")
	v.SetDefault("github.api_base", "https://api.github.com")
	v.SetDefault("github.raw_base", "https://raw.githubusercontent.com")
	v.SetDefault("github.web_base", "https://github.com")
	v.SetDefault("github.per_page", 100)
	v.SetDefault("github.readme_branches", []string{"main", "master", "develop"})
	v.SetDefault("github.archive_branches", []string{"main", "master"})
	v.SetDefault("github.request_timeout", 30)

	v.SetDefault("tools.git", "git")
	v.SetDefault("tools.python", "")
	v.SetDefault("tools.powershell", "powershell")
	v.SetDefault("tools.shell", "bash")
	v.SetDefault("tools.cmd", "cmd")

	v.SetDefault("paths.workspace_dir", "")
	v.SetDefault("paths.data_dir", dataDir)
	v.SetDefault("paths.db_file", filepath.Join(dataDir, "history.db"))
	v.SetDefault("paths.log_file", filepath.Join(dataDir, "gitpilot.log"))

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.color", "auto")

	v.SetDefault("history.enabled", true)
}

// DefaultPython returns the interpreter name used for .py scripts and pip
func DefaultPython(goos string) string {
	if goos == "windows" {
		return "python"
	}
	return "python3"
}

// Timeout returns the per-request HTTP timeout
func (g GitHubConfig) Timeout() time.Duration {
	if g.RequestTimeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(g.RequestTimeout) * time.Second
}

// RepoURL returns the clone URL of a repository of the configured account
func (g GitHubConfig) RepoURL(name string) string {
	return fmt.Sprintf("%s/%s/%s.git", strings.TrimRight(g.WebBase, "/"), g.Username, name)
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}

	// Expand ~
	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(homeDir, path[1:])
		}
	}

	// Expand environment variables
	path = os.ExpandEnv(path)

	return path
}

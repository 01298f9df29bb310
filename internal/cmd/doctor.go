package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/gitpilot/internal/acquire"
	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/db"
	"github.com/quantmind-br/gitpilot/internal/fsops"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/quantmind-br/gitpilot/internal/paths"
	"github.com/quantmind-br/gitpilot/internal/syspkg/pip"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// NewDoctorCmd creates the doctor command
func NewDoctorCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	return newDoctorCmd(cfg, log, helpers.NewOSCommandRunner(), afero.NewOsFs(), core.DetectPlatform())
}

// doctorReport collects findings; issues fail the command, warnings do not
type doctorReport struct {
	issues   []string
	warnings []string
}

func newDoctorCmd(cfg *config.Config, log *zerolog.Logger, runner helpers.CommandRunner, fs afero.Fs, platform core.Platform) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the tools and directories gitpilot relies on",
		Long:  `Check that git, Python, pip and the script interpreters are available and that the workspace and data directories are usable.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			console := ui.NewConsole(cmd.OutOrStdout(), cmd.OutOrStdout())
			report := &doctorReport{}

			console.Header("Tools")
			checkTools(ctx, console, report, cfg, runner, platform)

			console.Header("Directories")
			resolver := paths.NewResolver(cfg)
			checkDir(console, report, fs, "Workspace", resolver.WorkspaceDir())
			checkDir(console, report, fs, "Data directory", resolver.DataDir())

			console.Header("History")
			checkHistory(ctx, console, report, cfg, resolver.DBFile())

			console.Header("GitHub")
			console.KeyValue("Account", cfg.GitHub.Username)
			console.KeyValue("API", cfg.GitHub.APIBase)
			console.KeyValue("Detected system", string(platform))
			console.KeyValue("Acquisition order", strings.Join(acquire.NewRegistry(cfg, log).ListBackends(), ", "))

			console.Header("Summary")
			if len(report.issues) == 0 {
				console.Success("All critical checks passed!")
			} else {
				console.Error("Found %d issue(s):", len(report.issues))
				console.List(report.issues)
			}
			if len(report.warnings) > 0 {
				console.Warning("Found %d warning(s):", len(report.warnings))
				console.List(report.warnings)
			}

			log.Debug().
				Int("issues", len(report.issues)).
				Int("warnings", len(report.warnings)).
				Msg("doctor finished")

			if len(report.issues) > 0 {
				return fmt.Errorf("system check failed with %d issue(s)", len(report.issues))
			}
			return nil
		},
	}

	return cmd
}

func checkTools(ctx context.Context, console *ui.Console, report *doctorReport, cfg *config.Config, runner helpers.CommandRunner, platform core.Platform) {
	if version, err := runner.RunCommand(ctx, cfg.Tools.Git, "--version"); err == nil {
		console.Success("git: %s", firstLine(version))
	} else {
		console.Warning("git: not found (repositories will be downloaded as ZIP)")
		report.warnings = append(report.warnings, "git not available")
	}

	if version, err := runner.RunCommand(ctx, cfg.Tools.Python, "--version"); err == nil {
		console.Success("%s: %s", cfg.Tools.Python, firstLine(version))
	} else {
		console.Error("%s: NOT FOUND", cfg.Tools.Python)
		report.issues = append(report.issues, fmt.Sprintf("Python interpreter %q not available", cfg.Tools.Python))
	}

	if version, err := pip.NewProvider(runner, cfg.Tools.Python).Version(ctx); err == nil {
		console.Success("pip: %s", version)
	} else {
		console.Warning("pip: not available (dependencies will not be installed)")
		report.warnings = append(report.warnings, "pip not available")
	}

	interpreters := []string{cfg.Tools.Shell}
	if platform == core.PlatformWindows {
		interpreters = []string{cfg.Tools.PowerShell, cfg.Tools.Cmd}
	}
	for _, name := range interpreters {
		if runner.CommandExists(name) {
			console.Success("%s: found", name)
		} else {
			console.Warning("%s: not found", name)
			report.warnings = append(report.warnings, fmt.Sprintf("script interpreter %s not available", name))
		}
	}
}

func checkDir(console *ui.Console, report *doctorReport, fs afero.Fs, name, dir string) {
	if err := fsops.EnsureDir(fs, dir, 0755); err != nil {
		console.Error("%s: NOT ACCESSIBLE (%s)", name, dir)
		report.issues = append(report.issues, fmt.Sprintf("%s not accessible: %s", name, dir))
		return
	}
	if err := fsops.CheckWritable(fs, dir); err != nil {
		console.Error("%s: NOT WRITABLE (%s)", name, dir)
		report.issues = append(report.issues, fmt.Sprintf("%s not writable: %s", name, dir))
		return
	}
	console.Success("%s: %s", name, dir)
}

func checkHistory(ctx context.Context, console *ui.Console, report *doctorReport, cfg *config.Config, dbFile string) {
	if !cfg.History.Enabled {
		console.Info("History: disabled")
		return
	}

	if err := os.MkdirAll(filepath.Dir(dbFile), 0755); err != nil {
		console.Warning("History: NOT ACCESSIBLE (%s)", dbFile)
		report.warnings = append(report.warnings, fmt.Sprintf("cannot create history directory: %v", err))
		return
	}

	database, err := db.New(ctx, dbFile)
	if err != nil {
		console.Warning("History: NOT ACCESSIBLE (%s)", dbFile)
		report.warnings = append(report.warnings, fmt.Sprintf("cannot open history database: %v", err))
		return
	}
	defer database.Close()

	runs, err := database.List(ctx, 0)
	if err != nil {
		report.warnings = append(report.warnings, "cannot read run history")
		return
	}
	console.Success("History: %s (%d runs)", database.Path(), len(runs))
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}

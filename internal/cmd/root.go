package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/db"
	"github.com/quantmind-br/gitpilot/internal/fsops"
	"github.com/quantmind-br/gitpilot/internal/logging"
	"github.com/quantmind-br/gitpilot/internal/paths"
	"github.com/quantmind-br/gitpilot/internal/pipeline"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// pipelineRunner runs one interactive gitpilot session
type pipelineRunner interface {
	Run(ctx context.Context, session *core.Session) error
}

// newPipeline is replaced in tests
var newPipeline = func(cfg *config.Config, log *zerolog.Logger, session *core.Session, history pipeline.HistoryStore) pipelineRunner {
	return pipeline.New(cfg, log, session, history)
}

// NewRootCmd creates the root command. Without a subcommand it runs the
// interactive pipeline.
func NewRootCmd(cfg *config.Config, log *zerolog.Logger, version string) *cobra.Command {
	var (
		logLevel string
		username string
	)

	cmd := &cobra.Command{
		Use:   "gitpilot",
		Short: "Autopilot for GitHub repositories",
		Long: `Browse the public repositories of a GitHub account, pick one from an
interactive menu, and have it cloned (or downloaded), its Python
dependencies installed and its main script executed.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			if cmd.Flags().Changed("log-level") {
				*log = log.Level(logging.ParseLevel(logLevel))
			}
			if username != "" {
				cfg.GitHub.Username = username
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPipeline(cmd, cfg, log)
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.Logging.Level, "log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVarP(&username, "user", "u", "", "GitHub account to browse (overrides config)")

	// Add subcommands
	cmd.AddCommand(NewListCmd(cfg, log))
	cmd.AddCommand(NewHistoryCmd(cfg, log))
	cmd.AddCommand(NewDoctorCmd(cfg, log))
	cmd.AddCommand(NewCompletionCmd(cfg, log))
	cmd.AddCommand(NewVersionCmd(version))

	return cmd
}

func runPipeline(cmd *cobra.Command, cfg *config.Config, log *zerolog.Logger) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	fs := afero.NewOsFs()
	workDir := paths.NewResolver(cfg).WorkspaceDir()
	if err := fsops.EnsureDir(fs, workDir, 0755); err != nil {
		return fmt.Errorf("prepare workspace: %w", err)
	}

	session := core.NewSession(workDir, core.DetectPlatform())
	session.Console = ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())

	log.Debug().
		Str("workspace", workDir).
		Str("platform", string(session.Platform)).
		Str("username", cfg.GitHub.Username).
		Msg("starting pipeline")

	var history pipeline.HistoryStore
	if database := openHistory(ctx, cfg, log); database != nil {
		defer database.Close()
		history = database
	}

	return newPipeline(cfg, log, session, history).Run(ctx, session)
}

// openHistory opens the run history database. History is optional: any
// failure is logged and nil returned.
func openHistory(ctx context.Context, cfg *config.Config, log *zerolog.Logger) *db.DB {
	if !cfg.History.Enabled {
		return nil
	}

	dbFile := paths.NewResolver(cfg).DBFile()
	if err := os.MkdirAll(filepath.Dir(dbFile), 0755); err != nil {
		log.Warn().Err(err).Str("path", dbFile).Msg("history disabled")
		return nil
	}

	database, err := db.New(ctx, dbFile)
	if err != nil {
		log.Warn().Err(err).Str("path", dbFile).Msg("history disabled")
		return nil
	}
	return database
}

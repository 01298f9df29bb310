package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/quantmind-br/gitpilot/internal/cmd"
	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/logging"
	"github.com/quantmind-br/gitpilot/internal/paths"
	"github.com/quantmind-br/gitpilot/internal/ui"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(core.ExitGeneral)
	}

	ui.InitColors(cfg.Logging.Color)

	// Initialize logger
	log := logging.NewLogger(logging.Config{
		Level:   cfg.Logging.Level,
		LogFile: paths.NewResolver(cfg).LogFile(),
		NoColor: cfg.Logging.Color == "never",
	})

	// Execute root command
	rootCmd := cmd.NewRootCmd(cfg, log, version)
	err = rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("command finished with error")
	}

	code := report(ctx, ui.NewConsole(os.Stdout, os.Stderr), err)
	stop()
	os.Exit(code)
}

// report prints the final message for err and returns the exit status
func report(ctx context.Context, console *ui.Console, err error) int {
	switch {
	case err == nil, errors.Is(err, core.ErrUserQuit):
	case errors.Is(err, core.ErrInterrupted), ctx.Err() != nil:
		console.Plain("")
		console.Warning("Operation cancelled by user.")
		return core.ExitSuccess
	case errors.Is(err, core.ErrNoCompatibleRepositories):
		console.Error("No compatible repositories found for this system.")
	default:
		console.Error("%v", err)
	}
	return core.ExitCodeFor(err)
}

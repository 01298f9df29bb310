package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/db"
	"github.com/quantmind-br/gitpilot/internal/helpers"
	"github.com/quantmind-br/gitpilot/internal/paths"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// confirmClear is replaced in tests
var confirmClear = ui.ConfirmPrompt

// NewHistoryCmd creates the history command
func NewHistoryCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		limit      int
		clearAll   bool
		yes        bool
		jsonOutput bool
		runID      string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show previous runs",
		Long:  `Show the repositories gitpilot acquired and ran, newest first.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			console := ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())

			dbFile := paths.NewResolver(cfg).DBFile()
			if err := os.MkdirAll(filepath.Dir(dbFile), 0755); err != nil {
				return fmt.Errorf("create data directory: %w", err)
			}

			database, err := db.New(ctx, dbFile)
			if err != nil {
				console.Error("failed to open database: %v", err)
				return fmt.Errorf("open database: %w", err)
			}
			defer database.Close()

			if clearAll {
				if !yes {
					ok, err := confirmClear("Delete the whole run history")
					if err != nil {
						return err
					}
					if !ok {
						console.Info("History kept")
						return nil
					}
				}

				n, err := database.Clear(ctx)
				if err != nil {
					return fmt.Errorf("clear history: %w", err)
				}
				log.Info().Int64("runs", n).Msg("history cleared")
				console.Success("Removed %d run(s)", n)
				return nil
			}

			if runID != "" {
				run, err := database.Get(ctx, runID)
				if err != nil {
					console.Error("%v", err)
					return fmt.Errorf("show run: %w", err)
				}
				if jsonOutput {
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(run)
				}
				printRunDetails(console, run)
				return nil
			}

			runs, err := database.List(ctx, limit)
			if err != nil {
				console.Error("failed to list runs: %v", err)
				return fmt.Errorf("list runs: %w", err)
			}

			if jsonOutput {
				if runs == nil {
					runs = []db.Run{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(runs)
			}

			if len(runs) == 0 {
				console.Info("No runs recorded yet")
				return nil
			}

			console.Header("Run History")
			printHistoryTable(cmd, runs)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all recorded runs")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().StringVar(&runID, "id", "", "show a single run")

	return cmd
}

func printHistoryTable(cmd *cobra.Command, runs []db.Run) {
	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"Started", "Repository", "System", "Method", "Status", "Script"}),
		tablewriter.WithAlignment(tw.MakeAlign(6, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleLight)),
	)

	for _, run := range runs {
		method := run.Method
		if method == "" {
			method = "-"
		}

		script := "-"
		if run.Script != "" {
			script = helpers.DisplayPath(run.Directory, run.Script)
		}

		table.Append(
			run.StartedAt.Local().Format("2006-01-02 15:04"),
			run.Repository,
			run.Platform,
			method,
			colorizeStatus(run.Status),
			script,
		)
	}

	table.Render()
}

func printRunDetails(console *ui.Console, run *db.Run) {
	console.Header(fmt.Sprintf("Run %s", run.RunID))
	console.KeyValue("Repository", run.Repository)
	console.KeyValue("System", run.Platform)
	console.KeyValue("Started", run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	console.KeyValue("Status", colorizeStatus(run.Status))
	if run.Method != "" {
		console.KeyValue("Method", run.Method)
	}
	if run.Directory != "" {
		console.KeyValue("Directory", run.Directory)
	}
	if run.Script != "" {
		console.KeyValue("Script", run.Script)
	}
}

func colorizeStatus(status string) string {
	switch status {
	case core.RunCompleted:
		return ui.Success.Sprint(status)
	case core.RunAcquireFailed, core.RunScriptFailed:
		return ui.Error.Sprint(status)
	default:
		return ui.Warning.Sprint(status)
	}
}

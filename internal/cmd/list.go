package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/quantmind-br/gitpilot/internal/catalog"
	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/core"
	"github.com/quantmind-br/gitpilot/internal/github"
	"github.com/quantmind-br/gitpilot/internal/menu"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const maxDescriptionWidth = 60

// NewListCmd creates the list command
func NewListCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		jsonOutput bool
		filterOS   string
		filterName string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the account's repositories and their supported systems",
		Long: `List every public repository of the configured account together with the
systems its README suggests it supports. By default only repositories
compatible with this machine are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			// Progress notices go to stderr so --json output stays parseable
			console := ui.NewConsole(cmd.ErrOrStderr(), cmd.ErrOrStderr())

			platform, all, err := parseOSFilter(filterOS)
			if err != nil {
				return err
			}

			client := github.NewClient(cfg.GitHub, log)
			records, err := catalog.NewBuilder(client, client, cfg.GitHub, console, log).Build(ctx, cfg.GitHub.Username)
			if err != nil {
				return fmt.Errorf("list repositories: %w", err)
			}

			total := len(records)
			if !all {
				records = menu.Filter(records, platform)
			}
			records = filterByName(records, filterName)

			if jsonOutput {
				if records == nil {
					records = []core.RepositoryRecord{}
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(records)
			}

			if len(records) == 0 {
				console.Warning("No repositories found matching filters")
				return nil
			}

			out := ui.NewConsole(cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Header(fmt.Sprintf("Repositories of %s", cfg.GitHub.Username))
			if len(records) != total {
				out.Plain("Showing %d of %d repositories", len(records), total)
			} else {
				out.Plain("Total: %d repositories", total)
			}
			out.Plain("")

			printRepositoryTable(cmd, records)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	cmd.Flags().StringVar(&filterOS, "os", "", "filter by system: windows, linux or all (default: this machine)")
	cmd.Flags().StringVar(&filterName, "name", "", "filter by repository name (fuzzy match)")

	return cmd
}

// parseOSFilter resolves the --os flag. An empty value means the local
// platform; "all" disables filtering.
func parseOSFilter(value string) (core.Platform, bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "":
		return core.DetectPlatform(), false, nil
	case "all":
		return "", true, nil
	}

	platform, ok := core.ParsePlatform(value)
	if !ok {
		return "", false, fmt.Errorf("%w: unknown system %q (use windows, linux or all)", core.ErrInvalidSelection, value)
	}
	return platform, false, nil
}

// filterByName keeps records whose name fuzzy-matches query
func filterByName(records []core.RepositoryRecord, query string) []core.RepositoryRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}

	var matched []core.RepositoryRecord
	for _, r := range records {
		if fuzzy.MatchNormalizedFold(query, r.Name) {
			matched = append(matched, r)
		}
	}
	return matched
}

// truncateDescription shortens desc to maxDescriptionWidth runes
func truncateDescription(desc string) string {
	if desc == "" {
		return "-"
	}
	runes := []rune(desc)
	if len(runes) > maxDescriptionWidth {
		return string(runes[:maxDescriptionWidth-3]) + "..."
	}
	return desc
}

func printRepositoryTable(cmd *cobra.Command, records []core.RepositoryRecord) {
	table := tablewriter.NewTable(cmd.OutOrStdout(),
		tablewriter.WithHeader([]string{"Name", "Systems", "Description"}),
		tablewriter.WithAlignment(tw.MakeAlign(3, tw.AlignLeft)),
		tablewriter.WithSymbols(tw.NewSymbols(tw.StyleNone)),
	)

	for _, r := range records {
		table.Append(r.Name, r.SupportedSystems.String(), truncateDescription(r.Description))
	}

	table.Render()
}

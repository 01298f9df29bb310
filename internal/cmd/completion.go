package cmd

import (
	"fmt"

	"github.com/quantmind-br/gitpilot/internal/config"
	"github.com/quantmind-br/gitpilot/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// NewCompletionCmd creates the completion command
func NewCompletionCmd(_ *config.Config, log *zerolog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for gitpilot.

To load completions:

Bash:
  $ source <(gitpilot completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ gitpilot completion bash > /etc/bash_completion.d/gitpilot
  # macOS:
  $ gitpilot completion bash > $(brew --prefix)/etc/bash_completion.d/gitpilot

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ gitpilot completion zsh > "${fpath[1]}/_gitpilot"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ gitpilot completion fish | source

  # To load completions for each session, execute once:
  $ gitpilot completion fish > ~/.config/fish/completions/gitpilot.fish

PowerShell:
  PS> gitpilot completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> gitpilot completion powershell > gitpilot.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := args[0]
			out := cmd.OutOrStdout()

			var err error
			switch shell {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(out)
			case "fish":
				err = cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			if err != nil {
				ui.NewConsole(out, cmd.ErrOrStderr()).Error("Failed to generate %s completion: %v", shell, err)
				return fmt.Errorf("generate %s completion: %w", shell, err)
			}

			log.Debug().Str("shell", shell).Msg("generated shell completion")
			return nil
		},
	}

	return cmd
}

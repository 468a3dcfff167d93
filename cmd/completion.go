package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/canopus/chalcreator/internal/chalcreator/challenge"
)

// validCategories completes the --type flag
func validCategories(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return challenge.CategoryNames(), cobra.ShellCompDirectiveNoFileComp
}

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion script for chalcreator.

To load completions:

Bash:

  $ source <(chalcreator completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ chalcreator completion bash > /etc/bash_completion.d/chalcreator
  # macOS:
  $ chalcreator completion bash > $(brew --prefix)/etc/bash_completion.d/chalcreator

Zsh:

  # If shell completion is not already enabled in your environment,
  # you will need to enable it.  You can execute the following once:

  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ chalcreator completion zsh > "${fpath[1]}/_chalcreator"

  # You will need to start a new shell for this setup to take effect.

Fish:

  $ chalcreator completion fish | source

  # To load completions for each session, execute once:
  $ chalcreator completion fish > ~/.config/fish/completions/chalcreator.fish

PowerShell:

  PS> chalcreator completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> chalcreator completion powershell > chalcreator.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return cmd.Root().GenBashCompletion(out)
		case "zsh":
			return cmd.Root().GenZshCompletion(out)
		case "fish":
			return cmd.Root().GenFishCompletion(out, true)
		case "powershell":
			return cmd.Root().GenPowerShellCompletionWithDesc(out)
		}
		return nil
	},
}

// categoriesCmd lists the accepted --type values
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the supported challenge categories",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		for _, name := range challenge.CategoryNames() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(categoriesCmd)
}

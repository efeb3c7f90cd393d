package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xolan/lifelog/internal/cli"
)

// completionCmd represents the completion command
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for lifelog.

Bash:
  source <(lifelog completion bash)
  lifelog completion bash > ~/.local/share/bash-completion/completions/lifelog

Zsh:
  lifelog completion zsh > ~/.zsh/completion/_lifelog

Fish:
  lifelog completion fish > ~/.config/fish/completions/lifelog.fish

PowerShell:
  lifelog completion powershell | Out-String | Invoke-Expression`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Run: func(cmd *cobra.Command, args []string) {
		generateCompletion(args[0])
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}

// generateCompletion generates the appropriate completion script based on shell type
func generateCompletion(shell string) {
	d := cli.GetDeps()
	var err error

	switch shell {
	case "bash":
		err = rootCmd.GenBashCompletion(d.Stdout)
	case "zsh":
		err = rootCmd.GenZshCompletion(d.Stdout)
	case "fish":
		err = rootCmd.GenFishCompletion(d.Stdout, true)
	case "powershell":
		err = rootCmd.GenPowerShellCompletionWithDesc(d.Stdout)
	default:
		_, _ = fmt.Fprintf(d.Stderr, "Error: Unsupported shell '%s'\n", shell)
		_, _ = fmt.Fprintln(d.Stderr, "Supported shells: bash, zsh, fish, powershell")
		d.Exit(1)
		return
	}

	if err != nil {
		_, _ = fmt.Fprintf(d.Stderr, "Error: Failed to generate %s completion: %v\n", shell, err)
		d.Exit(1)
	}
}

package main

import (
	"io"
	"os"
	"strings"

	"github.com/jacksmith/footy/internal/app"
	"github.com/jacksmith/footy/internal/model"
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for footy.

To load completions:

Bash:
  $ source <(footy completion bash)

Zsh:
  $ footy completion zsh > "${fpath[1]}/_footy"

Fish:
  $ footy completion fish | source
`,
}

var completionBashCmd = &cobra.Command{
	Use:   "bash",
	Short: "Generate bash completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenBashCompletion(os.Stdout)
	},
}

var completionZshCmd = &cobra.Command{
	Use:   "zsh",
	Short: "Generate zsh completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenZshCompletion(os.Stdout)
	},
}

var completionFishCmd = &cobra.Command{
	Use:   "fish",
	Short: "Generate fish completion script",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return rootCmd.GenFishCompletion(os.Stdout, true)
	},
}

func init() {
	completionCmd.AddCommand(completionBashCmd, completionZshCmd, completionFishCmd)
	rootCmd.AddCommand(completionCmd)
}

// completeFavoriteIDs completes the first argument with favorite team IDs.
// Logs are discarded so completion output stays clean.
func completeFavoriteIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	ctx := commandContext(cmd)
	a, err := app.Open(ctx, workDir, app.Options{LogOutput: io.Discard})
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer a.Close()

	prefix := strings.TrimPrefix(toComplete, "#")
	var completions []string
	for _, f := range a.Favorites.List() {
		id := strings.TrimPrefix(model.FormatTeamID(f.ID), "#")
		if strings.HasPrefix(id, prefix) {
			completions = append(completions, id+"\t"+f.Name)
		}
	}
	return completions, cobra.ShellCompDirectiveNoFileComp
}

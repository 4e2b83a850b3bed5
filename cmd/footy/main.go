// Package main is the entry point for the footy CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jacksmith/footy/internal/app"
	"github.com/jacksmith/footy/internal/cli"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.FormatError(err))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "footy",
	Short: "footy - football leagues, standings and favorite teams in your terminal",
	Long: `footy browses football leagues and standings from API-Football and keeps
a personal list of favorite teams with notes.

Favorites and the signed-in session are stored locally in .footy/ (or in
Redis when configured). Adding, removing or annotating favorites requires
signing in with ` + "`footy login`" + `.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("footy version {{.Version}}\n")
}

// workDir is the directory holding .footy/.
var workDir = "."

// commandContext returns the command's context, or Background when the
// command is invoked directly.
func commandContext(cmd *cobra.Command) context.Context {
	if cmd != nil && cmd.Context() != nil {
		return cmd.Context()
	}
	return context.Background()
}

// openApp opens the workspace. Callers must Close the result.
func openApp(ctx context.Context) (*app.App, error) {
	return app.Open(ctx, workDir, app.Options{})
}

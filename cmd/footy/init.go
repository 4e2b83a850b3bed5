package main

import (
	"fmt"

	"github.com/jacksmith/footy/internal/storage"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize footy in the current directory",
	Long: `Create a .footy/ directory for favorites and the signed-in session.

Settings such as the API key live in .footyconfig.yaml next to .footy/, in a
.env file, or in FOOTY_* environment variables.

Fails if .footy/ already exists in the current directory.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	if _, err := storage.Init(workDir); err != nil {
		return err
	}
	fmt.Println("Initialized footy in .footy/")
	fmt.Println("Set api_key in .footyconfig.yaml or FOOTY_API_KEY to fetch data.")
	return nil
}

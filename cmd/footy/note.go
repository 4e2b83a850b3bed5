package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/footy/internal/cli"
	"github.com/jacksmith/footy/internal/model"
	"github.com/spf13/cobra"
)

var noteCmd = &cobra.Command{
	Use:   "note <team-id> [text]...",
	Short: "Set the notes on a favorite",
	Long: `Replace the notes on a favorite team.

All arguments after the team ID are joined with spaces to form the notes.
Use --edit to write them in $VISUAL or $EDITOR, or --clear to remove them.

Requires signing in.

Examples:
  footy note 33 Watch transfer window
  footy note 33 --edit
  footy note 33 --clear`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runNote,
	ValidArgsFunction: completeFavoriteIDs,
}

var (
	noteEdit  bool
	noteClear bool
)

func init() {
	noteCmd.Flags().BoolVarP(&noteEdit, "edit", "i", false, "edit the notes in $VISUAL or $EDITOR")
	noteCmd.Flags().BoolVar(&noteClear, "clear", false, "remove the notes")
	rootCmd.AddCommand(noteCmd)
}

func runNote(cmd *cobra.Command, args []string) error {
	teamID, err := parseTeamArg(args[0])
	if err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")

	modes := 0
	for _, set := range []bool{text != "", noteEdit, noteClear} {
		if set {
			modes++
		}
	}
	switch {
	case modes == 0:
		return &cli.ValidationError{Message: "give the notes text, --edit or --clear"}
	case modes > 1:
		return &cli.ValidationError{Message: "notes text, --edit and --clear cannot be combined"}
	}

	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.RequireLogin(ctx, "edit notes"); err != nil {
		return err
	}

	fav, ok := a.Favorites.Get(teamID)
	if !ok {
		return &cli.NotFoundError{Type: "favorite", ID: model.FormatTeamID(teamID)}
	}

	if noteEdit {
		if text, err = cli.EditNotes(fav.Name, fav.Notes); err != nil {
			return err
		}
		if text == fav.Notes {
			fmt.Println("Notes unchanged.")
			return nil
		}
	}

	a.Favorites.UpdateNotes(ctx, teamID, text)
	if text == "" {
		fmt.Printf("Notes cleared for %s.\n", fav.Name)
	} else {
		fmt.Printf("Notes updated for %s.\n", fav.Name)
	}
	return nil
}

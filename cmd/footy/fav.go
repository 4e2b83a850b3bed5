package main

import (
	"fmt"

	"github.com/jacksmith/footy/internal/favorites"
	"github.com/jacksmith/footy/internal/model"
	"github.com/spf13/cobra"
)

var favCmd = &cobra.Command{
	Use:   "fav <team-id>",
	Short: "Add a team to favorites",
	Long: `Add a team to favorites, looking it up by ID.

Adding a team that is already a favorite keeps its place in the list and
its date added; the notes are replaced only when --notes is given.

Requires signing in.

Examples:
  footy fav 33
  footy fav 529 --notes "Watch transfer window"`,
	Args: cobra.ExactArgs(1),
	RunE: runFav,
}

var unfavCmd = &cobra.Command{
	Use:               "unfav <team-id>",
	Short:             "Remove a team from favorites",
	Args:              cobra.ExactArgs(1),
	RunE:              runUnfav,
	ValidArgsFunction: completeFavoriteIDs,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <team-id>",
	Short: "Add or remove a favorite",
	Long: `Remove the team if it is a favorite, otherwise look it up and add it.

Requires signing in.`,
	Args: cobra.ExactArgs(1),
	RunE: runToggle,
}

var favNotes string

func init() {
	favCmd.Flags().StringVarP(&favNotes, "notes", "n", "", "notes to attach")
	rootCmd.AddCommand(favCmd, unfavCmd, toggleCmd)
}

func runFav(cmd *cobra.Command, args []string) error {
	teamID, err := parseTeamArg(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.RequireLogin(ctx, "add favorites"); err != nil {
		return err
	}

	team, err := a.API.Team(ctx, teamID)
	if err != nil {
		return teamLookupError(teamID, err)
	}

	switch a.Favorites.Add(ctx, team, favNotes) {
	case favorites.Added:
		fmt.Printf("Added %s %s to favorites.\n", team.Name, model.FormatTeamID(team.ID))
	default:
		fmt.Printf("%s is already a favorite; updated.\n", team.Name)
	}
	return nil
}

func runUnfav(cmd *cobra.Command, args []string) error {
	teamID, err := parseTeamArg(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.RequireLogin(ctx, "remove favorites"); err != nil {
		return err
	}

	fav, ok := a.Favorites.Get(teamID)
	if !ok {
		fmt.Printf("%s is not a favorite.\n", model.FormatTeamID(teamID))
		return nil
	}
	a.Favorites.Remove(ctx, teamID)
	fmt.Printf("Removed %s %s from favorites.\n", fav.Name, model.FormatTeamID(teamID))
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	teamID, err := parseTeamArg(args[0])
	if err != nil {
		return err
	}

	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.RequireLogin(ctx, "change favorites"); err != nil {
		return err
	}

	if fav, ok := a.Favorites.Get(teamID); ok {
		a.Favorites.Toggle(ctx, fav.Team)
		fmt.Printf("Removed %s %s from favorites.\n", fav.Name, model.FormatTeamID(teamID))
		return nil
	}

	team, err := a.API.Team(ctx, teamID)
	if err != nil {
		return teamLookupError(teamID, err)
	}
	a.Favorites.Toggle(ctx, team)
	fmt.Printf("Added %s %s to favorites.\n", team.Name, model.FormatTeamID(team.ID))
	return nil
}

package main

import (
	"errors"
	"fmt"

	"github.com/jacksmith/footy/internal/cli"
	"github.com/jacksmith/footy/internal/footballapi"
	"github.com/jacksmith/footy/internal/model"
	"github.com/spf13/cobra"
)

var teamCmd = &cobra.Command{
	Use:   "team <team-id>",
	Short: "Look up a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runTeam,
}

func init() {
	rootCmd.AddCommand(teamCmd)
}

func runTeam(cmd *cobra.Command, args []string) error {
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

	team, err := a.API.Team(ctx, teamID)
	if err != nil {
		return teamLookupError(teamID, err)
	}

	fmt.Printf("ID:       %s\n", model.FormatTeamID(team.ID))
	fmt.Printf("Name:     %s\n", team.Name)
	fmt.Printf("Country:  %s\n", team.Country)
	fmt.Printf("Logo:     %s\n", team.Logo)
	if fav, ok := a.Favorites.Get(teamID); ok {
		fmt.Printf("Favorite: yes, since %s\n", formatAdded(fav))
	} else {
		fmt.Println("Favorite: no")
	}
	return nil
}

func parseTeamArg(arg string) (int, error) {
	id, err := model.ParseTeamID(arg)
	if err != nil {
		return 0, &cli.ValidationError{Field: "team ID", Message: err.Error()}
	}
	return id, nil
}

func teamLookupError(id int, err error) error {
	if errors.Is(err, footballapi.ErrNotFound) {
		return &cli.NotFoundError{Type: "team", ID: model.FormatTeamID(id)}
	}
	return apiError(err)
}

func formatAdded(fav model.FavoriteTeam) string {
	at := fav.AddedAt()
	if at.IsZero() {
		return fav.DateAdded
	}
	return at.Local().Format("2006-01-02")
}

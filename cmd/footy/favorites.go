package main

import (
	"fmt"
	"strings"

	"github.com/jacksmith/footy/internal/cli"
	"github.com/jacksmith/footy/internal/favorites"
	"github.com/jacksmith/footy/internal/model"
	"github.com/spf13/cobra"
)

var favoritesCmd = &cobra.Command{
	Use:     "favorites [query]",
	Aliases: []string{"favs"},
	Short:   "List favorite teams",
	Long: `List favorite teams in the order they were added.

A query filters by team name, country or notes. --json prints the stored
records instead of a table.

Examples:
  footy favorites
  footy favorites spain
  footy favorites --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFavorites,
}

var showCmd = &cobra.Command{
	Use:               "show <team-id>",
	Short:             "Show a favorite with its notes",
	Args:              cobra.ExactArgs(1),
	RunE:              runShow,
	ValidArgsFunction: completeFavoriteIDs,
}

var favoritesJSON bool

func init() {
	favoritesCmd.Flags().BoolVar(&favoritesJSON, "json", false, "print favorites as JSON")
	rootCmd.AddCommand(favoritesCmd, showCmd)
}

func runFavorites(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	all := a.Favorites.List()
	shown := favorites.Search(all, query)

	if favoritesJSON {
		out, err := model.EncodeFavorites(shown)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	}

	if len(all) == 0 {
		fmt.Println("No favorite teams yet. Add one with `footy fav <team-id>`.")
		return nil
	}
	if len(shown) == 0 {
		fmt.Printf("No favorites match %q.\n", query)
		return nil
	}

	stats := favorites.Summarize(all)
	fmt.Printf("%s from %s, %d with notes\n\n",
		cli.Plural(stats.Total, "favorite", "favorites"),
		cli.Plural(stats.Countries, "country", "countries"),
		stats.WithNotes)

	table := cli.NewTable()
	table.SetMaxWidth(4, 50)
	for _, f := range shown {
		table.AddRow(
			model.FormatTeamID(f.ID),
			f.Name,
			f.Country,
			formatAdded(f),
			firstLine(f.Notes),
		)
	}
	table.Render(stdout())
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
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

	fav, ok := a.Favorites.Get(teamID)
	if !ok {
		return &cli.NotFoundError{Type: "favorite", ID: model.FormatTeamID(teamID)}
	}

	fmt.Printf("ID:       %s\n", model.FormatTeamID(fav.ID))
	fmt.Printf("Name:     %s\n", fav.Name)
	fmt.Printf("Country:  %s\n", fav.Country)
	fmt.Printf("Logo:     %s\n", fav.Logo)
	fmt.Printf("Added:    %s\n", formatAdded(fav))
	if fav.HasNotes() {
		fmt.Println()
		fmt.Println("Notes:")
		for _, line := range strings.Split(fav.Notes, "\n") {
			fmt.Printf("  %s\n", line)
		}
	}
	return nil
}

func firstLine(s string) string {
	line, rest, found := strings.Cut(strings.TrimSpace(s), "\n")
	if found && strings.TrimSpace(rest) != "" {
		return line + " …"
	}
	return line
}

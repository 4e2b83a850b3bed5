package main

import (
	"fmt"
	"strconv"

	"github.com/jacksmith/footy/internal/catalog"
	"github.com/jacksmith/footy/internal/cli"
	"github.com/jacksmith/footy/internal/model"
	"github.com/spf13/cobra"
)

var standingsCmd = &cobra.Command{
	Use:   "standings <league-id>",
	Short: "Show a league table",
	Long: `Show the league table for a season. Favorite teams are starred.

Rank colors mark the Champions League places (top 4), the other European
places (5-6) and the relegation zone (bottom 3). The arrow after the form
shows the trend over the last five games.

The season defaults to, and is capped at, max_season (2023 unless
configured).

Examples:
  footy standings 39
  footy standings 140 --season 2022
  footy standings 39 --search united`,
	Args: cobra.ExactArgs(1),
	RunE: runStandings,
}

var (
	standingsSeason string
	standingsSearch string
)

func init() {
	standingsCmd.Flags().StringVar(&standingsSeason, "season", "", "season year (e.g. 2023)")
	standingsCmd.Flags().StringVarP(&standingsSearch, "search", "s", "", "filter by team name")
	rootCmd.AddCommand(standingsCmd)
}

func runStandings(cmd *cobra.Command, args []string) error {
	leagueID, err := model.ParseLeagueID(args[0])
	if err != nil {
		return &cli.ValidationError{Field: "league ID", Message: err.Error()}
	}
	season := 0
	if standingsSeason != "" {
		if season, err = model.ParseSeason(standingsSeason); err != nil {
			return &cli.ValidationError{Field: "season", Message: err.Error()}
		}
	}

	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	season = catalog.ClampSeason(season, a.API.MaxSeason())
	rows, err := a.API.Standings(ctx, leagueID, season)
	if err != nil {
		return apiError(err)
	}
	if len(rows) == 0 {
		fmt.Printf("No standings available for league #%d in %d.\n", leagueID, season)
		return nil
	}

	total := len(rows)
	shown := catalog.SearchStandings(rows, standingsSearch)
	if len(shown) == 0 {
		fmt.Printf("No teams match %q.\n", standingsSearch)
		return nil
	}

	if g := rows[0].Group; g != "" {
		fmt.Printf("%s, season %d\n\n", g, season)
	}

	table := cli.NewTable()
	table.SetMaxWidth(2, 32)
	table.AddRow("#", "", "TEAM", "P", "W", "D", "L", "GOALS", "GD", "PTS", "FORM")
	for _, r := range shown {
		zone := catalog.ZoneFor(r.Rank, total).String()
		table.AddRow(
			cli.ZoneColor(zone, strconv.Itoa(r.Rank)),
			cli.FavoriteMark(a.Favorites.IsFavorite(r.Team.ID)),
			r.Team.Name+" "+cli.Gray(model.FormatTeamID(r.Team.ID)),
			strconv.Itoa(r.All.Played),
			strconv.Itoa(r.All.Win),
			strconv.Itoa(r.All.Draw),
			strconv.Itoa(r.All.Lose),
			fmt.Sprintf("%d:%d", r.All.Goals.For, r.All.Goals.Against),
			cli.GoalDiff(r.GoalsDiff),
			strconv.Itoa(r.Points),
			cli.FormLetters(r.Form)+" "+cli.TrendArrow(catalog.FormTrend(r.Form).String()),
		)
	}
	table.Render(stdout())

	fmt.Printf("\n%s  %s  %s  %s\n",
		cli.Green("champions league"), cli.Blue("europe"), cli.Red("relegation"), cli.Yellow("*")+" favorite")
	return nil
}

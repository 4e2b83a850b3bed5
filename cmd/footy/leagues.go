package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jacksmith/footy/internal/catalog"
	"github.com/jacksmith/footy/internal/cli"
	"github.com/jacksmith/footy/internal/footballapi"
	"github.com/jacksmith/footy/internal/model"
	"github.com/spf13/cobra"
)

var leaguesCmd = &cobra.Command{
	Use:   "leagues",
	Short: "List popular leagues",
	Long: `List popular leagues with the season footy will show standings for.

By default only the major competitions are listed (Premier League, La Liga,
Serie A, Bundesliga, Ligue 1, the European cups and international
tournaments). Use --all to list every league.

Examples:
  footy leagues
  footy leagues --search liga
  footy leagues --country England --all
  footy leagues --from England,Spain,Italy`,
	Args: cobra.NoArgs,
	RunE: runLeagues,
}

var (
	leaguesSearch  string
	leaguesCountry string
	leaguesAll     bool
	leaguesFrom    []string
)

func init() {
	leaguesCmd.Flags().StringVarP(&leaguesSearch, "search", "s", "", "filter by league name or country")
	leaguesCmd.Flags().StringVarP(&leaguesCountry, "country", "c", "", "only leagues from this country (exact name)")
	leaguesCmd.Flags().BoolVarP(&leaguesAll, "all", "a", false, "list every league, not just popular ones")
	leaguesCmd.Flags().StringSliceVar(&leaguesFrom, "from", nil, "fetch leagues for these countries directly (comma-separated)")
	rootCmd.AddCommand(leaguesCmd)
}

func runLeagues(cmd *cobra.Command, args []string) error {
	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	leagues, err := fetchLeagues(ctx, a.API)
	if err != nil {
		return apiError(err)
	}
	if !leaguesAll {
		leagues = catalog.Popular(leagues)
	}
	leagues = catalog.FilterCountry(catalog.Search(leagues, leaguesSearch), leaguesCountry)

	if len(leagues) == 0 {
		fmt.Println("No leagues found. Try adjusting your search or filters.")
		return nil
	}

	if featured := catalog.Featured(leagues); len(featured) > 0 && leaguesSearch == "" {
		fmt.Print("Featured:")
		for _, l := range featured {
			fmt.Printf("  %s %s", l.Name, cli.Gray("#"+strconv.Itoa(l.ID)))
		}
		fmt.Println()
		fmt.Println()
	}

	printLeagues(leagues, a.API.MaxSeason())
	fmt.Printf("\n%s in %s\n", cli.Plural(len(leagues), "league", "leagues"), cli.Plural(len(catalog.Countries(leagues)), "country", "countries"))
	return nil
}

func fetchLeagues(ctx context.Context, api *footballapi.Client) ([]model.League, error) {
	if len(leaguesFrom) > 0 {
		return catalog.FetchCountries(ctx, api, leaguesFrom, catalog.DefaultConcurrency)
	}
	return api.Leagues(ctx)
}

func printLeagues(leagues []model.League, maxSeason int) {
	table := cli.NewTable()
	table.SetMaxWidth(1, 40)
	for _, l := range leagues {
		table.AddRow(
			"#"+strconv.Itoa(l.ID),
			l.Name,
			l.Country,
			strconv.Itoa(catalog.ClampSeason(l.Season, maxSeason)),
		)
	}
	table.Render(stdout())
}

// apiError adds a hint for errors the user can fix.
func apiError(err error) error {
	switch {
	case errors.Is(err, footballapi.ErrUnauthorized):
		return fmt.Errorf("%w (set api_key in .footyconfig.yaml or FOOTY_API_KEY)", err)
	case errors.Is(err, footballapi.ErrRateLimited):
		return fmt.Errorf("%w (try again later)", err)
	default:
		return err
	}
}

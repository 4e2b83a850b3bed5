package main

import (
	"fmt"

	"github.com/jacksmith/footy/internal/catalog"
	"github.com/jacksmith/footy/internal/cli"
	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories [category]",
	Short: "Browse leagues by country or competition type",
	Long: `Without an argument, list the categories with how many current leagues
each holds. With a category, list its leagues.

Categories: all, england, spain, italy, germany, france, europe,
international. Any unique prefix works.

Examples:
  footy categories
  footy categories ger
  footy categories international`,
	Args:              cobra.MaximumNArgs(1),
	RunE:              runCategories,
	ValidArgsFunction: completeCategories,
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, args []string) error {
	var id string
	if len(args) == 1 {
		var err error
		if id, err = cli.MatchPrefix(args[0], catalog.CategoryIDs(), "category"); err != nil {
			return err
		}
	}

	ctx := commandContext(cmd)
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	all, err := a.API.Leagues(ctx)
	if err != nil {
		return apiError(err)
	}
	current := catalog.SeasonAtLeast(all, a.API.MaxSeason())

	if id == "" {
		table := cli.NewTable()
		for _, c := range catalog.Categories() {
			leagues, _ := catalog.InCategory(current, c.ID)
			table.AddRow(c.ID, c.Label, cli.Plural(len(leagues), "league", "leagues"))
		}
		table.Render(stdout())
		return nil
	}

	c, err := catalog.LookupCategory(id)
	if err != nil {
		return err
	}
	leagues, err := catalog.InCategory(current, id)
	if err != nil {
		return err
	}
	if len(leagues) == 0 {
		fmt.Printf("No leagues available in %s for the current season.\n", c.Label)
		return nil
	}

	fmt.Printf("%s (%s)\n\n", c.Label, cli.Plural(len(leagues), "league", "leagues"))
	printLeagues(leagues, a.API.MaxSeason())
	return nil
}

func completeCategories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, c := range catalog.Categories() {
		out = append(out, c.ID+"\t"+c.Label)
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

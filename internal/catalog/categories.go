package catalog

import (
	"fmt"
	"strings"

	"github.com/jacksmith/footy/internal/model"
)

// allLimit caps the "all" category.
const allLimit = 50

// Category is a named grouping of leagues.
type Category struct {
	ID    string
	Label string
	match func(model.League) bool
}

// Match reports whether league belongs to c. The "all" category matches
// everything.
func (c Category) Match(l model.League) bool {
	if c.match == nil {
		return true
	}
	return c.match(l)
}

func domestic(country string, names ...string) func(model.League) bool {
	return func(l model.League) bool {
		return strings.Contains(strings.ToLower(l.Country), country) || containsAny(l.Name, names)
	}
}

func named(names ...string) func(model.League) bool {
	return func(l model.League) bool {
		return containsAny(l.Name, names)
	}
}

var categories = []Category{
	{ID: "all", Label: "All Leagues"},
	{ID: "england", Label: "England", match: domestic("england", "Premier League", "Championship", "FA Cup")},
	{ID: "spain", Label: "Spain", match: domestic("spain", "La Liga", "Copa del Rey")},
	{ID: "italy", Label: "Italy", match: domestic("italy", "Serie A", "Coppa Italia")},
	{ID: "germany", Label: "Germany", match: domestic("germany", "Bundesliga", "DFB Pokal")},
	{ID: "france", Label: "France", match: domestic("france", "Ligue 1", "Coupe de France")},
	{ID: "europe", Label: "European Cups", match: named("Champions League", "Europa League", "Conference League", "Super Cup")},
	{ID: "international", Label: "International", match: named("World Cup", "Euro", "Copa America", "Nations League", "African Cup")},
}

// Categories returns every category in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// CategoryIDs returns the category ids in display order.
func CategoryIDs() []string {
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}

// LookupCategory returns the category with the given id.
func LookupCategory(id string) (Category, error) {
	for _, c := range categories {
		if c.ID == id {
			return c, nil
		}
	}
	return Category{}, fmt.Errorf("unknown category %q", id)
}

// InCategory returns the leagues in category id. The "all" category returns
// the first 50 leagues.
func InCategory(leagues []model.League, id string) ([]model.League, error) {
	c, err := LookupCategory(id)
	if err != nil {
		return nil, err
	}
	if c.match == nil {
		if len(leagues) > allLimit {
			return leagues[:allLimit], nil
		}
		return leagues, nil
	}
	return filter(leagues, c.Match), nil
}

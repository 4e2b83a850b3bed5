// Package catalog filters and groups leagues and standings for display.
package catalog

import (
	"sort"
	"strings"

	"github.com/jacksmith/footy/internal/model"
)

// PopularNames are the competitions shown on the default league list.
var PopularNames = []string{
	"Premier League",
	"La Liga",
	"Serie A",
	"Bundesliga",
	"Ligue 1",
	"Champions League",
	"Europa League",
	"World Cup",
	"Euro Championship",
	"Copa America",
}

// FeaturedNames are the big five domestic leagues.
var FeaturedNames = []string{"Premier League", "La Liga", "Serie A", "Bundesliga", "Ligue 1"}

const maxFeatured = 3

// Popular keeps leagues whose name contains one of PopularNames.
func Popular(leagues []model.League) []model.League {
	return filter(leagues, func(l model.League) bool {
		return containsAny(l.Name, PopularNames)
	})
}

// Search keeps leagues whose name or country contains query,
// case-insensitively. An empty query keeps everything.
func Search(leagues []model.League, query string) []model.League {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return leagues
	}
	return filter(leagues, func(l model.League) bool {
		return strings.Contains(strings.ToLower(l.Name), q) ||
			strings.Contains(strings.ToLower(l.Country), q)
	})
}

// FilterCountry keeps leagues from exactly country. An empty country keeps
// everything.
func FilterCountry(leagues []model.League, country string) []model.League {
	if country == "" {
		return leagues
	}
	return filter(leagues, func(l model.League) bool {
		return l.Country == country
	})
}

// Countries returns the distinct countries of leagues, sorted.
func Countries(leagues []model.League) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, l := range leagues {
		if _, ok := seen[l.Country]; ok {
			continue
		}
		seen[l.Country] = struct{}{}
		out = append(out, l.Country)
	}
	sort.Strings(out)
	return out
}

// Featured returns up to three of the big five leagues, in input order.
func Featured(leagues []model.League) []model.League {
	out := filter(leagues, func(l model.League) bool {
		return containsAny(l.Name, FeaturedNames)
	})
	if len(out) > maxFeatured {
		out = out[:maxFeatured]
	}
	return out
}

// SeasonAtLeast keeps leagues whose season is minSeason or later.
func SeasonAtLeast(leagues []model.League, minSeason int) []model.League {
	return filter(leagues, func(l model.League) bool {
		return l.Season >= minSeason
	})
}

// ClampSeason returns season, or maxSeason when season is unset or newer.
func ClampSeason(season, maxSeason int) int {
	if season <= 0 || season > maxSeason {
		return maxSeason
	}
	return season
}

func filter(leagues []model.League, keep func(model.League) bool) []model.League {
	out := []model.League{}
	for _, l := range leagues {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

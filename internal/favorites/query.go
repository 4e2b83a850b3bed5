package favorites

import (
	"strings"

	"github.com/jacksmith/footy/internal/model"
)

// Search returns favorites whose name, country or notes contain query,
// case-insensitively. An empty query matches everything.
func Search(favorites []model.FavoriteTeam, query string) []model.FavoriteTeam {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	if queryLower == "" {
		return clone(favorites)
	}

	var out []model.FavoriteTeam
	for _, f := range favorites {
		if strings.Contains(strings.ToLower(f.Name), queryLower) ||
			strings.Contains(strings.ToLower(f.Country), queryLower) ||
			strings.Contains(strings.ToLower(f.Notes), queryLower) {
			out = append(out, f)
		}
	}
	return out
}

// Stats summarizes a favorites collection.
type Stats struct {
	Total     int
	WithNotes int
	Countries int
}

// Summarize computes Stats for favorites.
func Summarize(favorites []model.FavoriteTeam) Stats {
	countries := make(map[string]struct{})
	stats := Stats{Total: len(favorites)}
	for _, f := range favorites {
		if f.HasNotes() {
			stats.WithNotes++
		}
		countries[f.Country] = struct{}{}
	}
	stats.Countries = len(countries)
	return stats
}

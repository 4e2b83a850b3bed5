package footballapi

import "github.com/jacksmith/footy/internal/model"

// seasonPicker chooses the season to show for a league.
type seasonPicker func(seasons []seasonInfo, maxSeason int) int

// latestSupportedSeason prefers the current season when it is not newer than
// maxSeason, then the newest season not newer than maxSeason, then maxSeason.
func latestSupportedSeason(seasons []seasonInfo, maxSeason int) int {
	for _, s := range seasons {
		if s.Current && s.Year <= maxSeason && s.Year > 0 {
			return s.Year
		}
	}
	best := 0
	for _, s := range seasons {
		if s.Year <= maxSeason && s.Year > best {
			best = s.Year
		}
	}
	if best > 0 {
		return best
	}
	return maxSeason
}

// currentSeason returns the season flagged current, or maxSeason.
func currentSeason(seasons []seasonInfo, maxSeason int) int {
	for _, s := range seasons {
		if s.Current && s.Year > 0 {
			return s.Year
		}
	}
	return maxSeason
}

func mapLeague(item leagueItem, pick seasonPicker, maxSeason int) model.League {
	return model.League{
		ID:      item.League.ID,
		Name:    item.League.Name,
		Country: item.Country.Name,
		Logo:    item.League.Logo,
		Flag:    item.Country.Flag,
		Season:  pick(item.Seasons, maxSeason),
	}
}

func mapLeagues(items []leagueItem, pick seasonPicker, maxSeason int) []model.League {
	out := make([]model.League, 0, len(items))
	for _, item := range items {
		out = append(out, mapLeague(item, pick, maxSeason))
	}
	return out
}

// firstTable returns the first standings group, or nil when the response
// does not carry one.
func firstTable(items []standingsItem) []model.Standing {
	if len(items) == 0 || len(items[0].League.Standings) == 0 {
		return nil
	}
	return items[0].League.Standings[0]
}

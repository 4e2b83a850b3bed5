package catalog

import (
	"strings"

	"github.com/jacksmith/footy/internal/model"
)

// Zone is the table region a rank falls in.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneChampions
	ZoneEurope
	ZoneRelegation
)

func (z Zone) String() string {
	switch z {
	case ZoneChampions:
		return "champions"
	case ZoneEurope:
		return "europe"
	case ZoneRelegation:
		return "relegation"
	default:
		return ""
	}
}

// ZoneFor classifies rank in a table of total rows. The top four qualify for
// the Champions League, fifth and sixth for Europe, and the bottom three
// are in the relegation zone.
func ZoneFor(rank, total int) Zone {
	switch {
	case rank <= 4:
		return ZoneChampions
	case rank <= 6:
		return ZoneEurope
	case rank >= total-2:
		return ZoneRelegation
	default:
		return ZoneNone
	}
}

// Trend summarizes recent form.
type Trend int

const (
	TrendSteady Trend = iota
	TrendRising
	TrendFalling
)

func (t Trend) String() string {
	switch t {
	case TrendRising:
		return "rising"
	case TrendFalling:
		return "falling"
	default:
		return "steady"
	}
}

// FormTrend reads the last five results of a form string such as "WWDLW".
// Four or more wins is rising; otherwise three or more losses is falling.
func FormTrend(form string) Trend {
	recent := form
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}
	switch {
	case strings.Count(recent, "W") >= 4:
		return TrendRising
	case strings.Count(recent, "L") >= 3:
		return TrendFalling
	default:
		return TrendSteady
	}
}

// SearchStandings keeps rows whose team name or country contains query,
// case-insensitively. An empty query keeps everything.
func SearchStandings(rows []model.Standing, query string) []model.Standing {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return rows
	}
	out := []model.Standing{}
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Team.Name), q) ||
			strings.Contains(strings.ToLower(r.Team.Country), q) {
			out = append(out, r)
		}
	}
	return out
}

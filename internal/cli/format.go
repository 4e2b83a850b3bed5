package cli

import (
	"fmt"
	"strings"
)

// GoalDiff formats a goal difference with an explicit sign for positives.
func GoalDiff(n int) string {
	if n > 0 {
		return fmt.Sprintf("+%d", n)
	}
	return fmt.Sprintf("%d", n)
}

// FavoriteMark returns a star for favorites and a blank of equal width
// otherwise.
func FavoriteMark(favorite bool) string {
	if favorite {
		return Yellow("*")
	}
	return " "
}

// ZoneColor colors s for a table zone name: champions green, europe blue,
// relegation red.
func ZoneColor(zone, s string) string {
	switch zone {
	case "champions":
		return Green(s)
	case "europe":
		return Blue(s)
	case "relegation":
		return Red(s)
	default:
		return s
	}
}

// TrendArrow renders a form trend name as an arrow.
func TrendArrow(trend string) string {
	switch trend {
	case "rising":
		return Green("↑")
	case "falling":
		return Red("↓")
	default:
		return Yellow("→")
	}
}

// FormLetters colors each W/D/L result in a form string.
func FormLetters(form string) string {
	var b strings.Builder
	for _, r := range form {
		s := string(r)
		switch r {
		case 'W':
			s = Green(s)
		case 'L':
			s = Red(s)
		case 'D':
			s = Gray(s)
		}
		b.WriteString(s)
	}
	return b.String()
}

// Plural returns "1 team" or "3 teams".
func Plural(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

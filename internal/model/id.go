package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// ErrInvalidID is returned when an ID cannot be parsed.
	ErrInvalidID = errors.New("invalid ID format")

	// idRegex matches numeric IDs with an optional leading '#', like 33 or #33.
	idRegex = regexp.MustCompile(`^#?(\d+)$`)

	// seasonRegex matches four digit season years like 2023.
	seasonRegex = regexp.MustCompile(`^(\d{4})$`)
)

// ParseTeamID parses a team ID argument.
// Accepts "33", "#33" and surrounding whitespace.
// Returns ErrInvalidID if the format is invalid.
func ParseTeamID(s string) (int, error) {
	return parseID("team", s)
}

// ParseLeagueID parses a league ID argument using the same rules as ParseTeamID.
func ParseLeagueID(s string) (int, error) {
	return parseID("league", s)
}

func parseID(kind, s string) (int, error) {
	matches := idRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, fmt.Errorf("%w: %q is not a valid %s ID", ErrInvalidID, s, kind)
	}

	id, err := strconv.Atoi(matches[1])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q has invalid number", ErrInvalidID, s)
	}
	return id, nil
}

// ParseSeason parses a four digit season year.
func ParseSeason(s string) (int, error) {
	matches := seasonRegex.FindStringSubmatch(strings.TrimSpace(s))
	if matches == nil {
		return 0, fmt.Errorf("invalid season %q: expected a year like 2023", s)
	}
	year, _ := strconv.Atoi(matches[1])
	return year, nil
}

// FormatTeamID formats a team ID for display, e.g. "#33".
func FormatTeamID(id int) string {
	return "#" + strconv.Itoa(id)
}

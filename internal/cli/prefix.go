package cli

import (
	"fmt"
	"strings"
)

// MatchPrefix resolves input to a unique candidate, case-insensitively.
// An exact match wins; otherwise input must be a prefix of exactly one
// candidate. kind names the candidates in error messages.
func MatchPrefix(input string, candidates []string, kind string) (string, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return "", &ValidationError{Field: kind, Message: "must not be empty"}
	}

	var matches []string
	for _, c := range candidates {
		lower := strings.ToLower(c)
		if lower == input {
			return c, nil
		}
		if strings.HasPrefix(lower, input) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("unknown %s %q (choose from: %s)", kind, input, strings.Join(candidates, ", "))
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous %s %q matches: %s", kind, input, strings.Join(matches, ", "))
	}
}

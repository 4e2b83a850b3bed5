// Package cli provides terminal helpers shared by footy commands.
package cli

import "fmt"

// NotFoundError indicates a team, league, or favorite was not found.
type NotFoundError struct {
	Type string // "team", "league", or "favorite"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Type, e.ID)
}

// ValidationError indicates bad user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

// LoginRequiredError is returned when a command needs a signed-in user.
type LoginRequiredError struct {
	Action string // e.g. "add favorites"
}

func (e *LoginRequiredError) Error() string {
	if e.Action == "" {
		return "login required (run `footy login`)"
	}
	return fmt.Sprintf("login required to %s (run `footy login`)", e.Action)
}

// FormatError returns err prefixed with "error: " for CLI output.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return "error: " + err.Error()
}

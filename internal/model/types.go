// Package model defines the core data structures for footy.
package model

import (
	"strings"
	"time"
)

// DateAddedLayout is the timestamp layout used for FavoriteTeam.DateAdded.
const DateAddedLayout = "2006-01-02T15:04:05.000Z07:00"

// Team is a club as returned by the football API.
type Team struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Logo    string `json:"logo"`
	Country string `json:"country"`
}

// FavoriteTeam is a bookmarked team with optional notes.
type FavoriteTeam struct {
	Team
	Notes     string `json:"notes,omitempty"`
	DateAdded string `json:"dateAdded"`
}

// NewFavorite builds a favorite for team stamped with at.
func NewFavorite(team Team, notes string, at time.Time) FavoriteTeam {
	return FavoriteTeam{
		Team:      team,
		Notes:     notes,
		DateAdded: at.UTC().Format(DateAddedLayout),
	}
}

// AddedAt parses DateAdded. The zero time is returned if it cannot be parsed.
func (f FavoriteTeam) AddedAt() time.Time {
	t, err := time.Parse(time.RFC3339Nano, f.DateAdded)
	if err != nil {
		return time.Time{}
	}
	return t
}

// HasNotes reports whether the favorite carries non-blank notes.
func (f FavoriteTeam) HasNotes() bool {
	return strings.TrimSpace(f.Notes) != ""
}

// League is a competition with the season footy will show standings for.
type League struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
	Logo    string `json:"logo"`
	Flag    string `json:"flag"`
	Season  int    `json:"season"`
}

// Goals counts goals scored and conceded.
type Goals struct {
	For     int `json:"for"`
	Against int `json:"against"`
}

// Record is a played/won/drawn/lost line for one venue split.
type Record struct {
	Played int   `json:"played"`
	Win    int   `json:"win"`
	Draw   int   `json:"draw"`
	Lose   int   `json:"lose"`
	Goals  Goals `json:"goals"`
}

// Standing is one row of a league table.
type Standing struct {
	Rank        int    `json:"rank"`
	Team        Team   `json:"team"`
	Points      int    `json:"points"`
	GoalsDiff   int    `json:"goalsDiff"`
	Group       string `json:"group"`
	Form        string `json:"form"`
	Status      string `json:"status"`
	Description string `json:"description"`
	All         Record `json:"all"`
	Home        Record `json:"home"`
	Away        Record `json:"away"`
	Update      string `json:"update"`
}

// Session is the signed-in user persisted between invocations.
type Session struct {
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

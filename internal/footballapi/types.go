package footballapi

import "github.com/jacksmith/footy/internal/model"

// envelope is the wrapper around every API-Football response.
type envelope[T any] struct {
	Get        string `json:"get"`
	Parameters any    `json:"parameters"`
	Errors     any    `json:"errors"`
	Results    int    `json:"results"`
	Paging     paging `json:"paging"`
	Response   T      `json:"response"`
}

type paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// errorsOnly decodes just enough of a response to check for reported errors.
type errorsOnly struct {
	Errors any `json:"errors"`
}

type leagueItem struct {
	League  leagueInfo   `json:"league"`
	Country countryInfo  `json:"country"`
	Seasons []seasonInfo `json:"seasons"`
}

type leagueInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Logo string `json:"logo"`
}

type countryInfo struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Flag string `json:"flag"`
}

type seasonInfo struct {
	Year    int    `json:"year"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Current bool   `json:"current"`
}

type standingsItem struct {
	League struct {
		ID        int                `json:"id"`
		Name      string             `json:"name"`
		Country   string             `json:"country"`
		Season    int                `json:"season"`
		Standings [][]model.Standing `json:"standings"`
	} `json:"league"`
}

type teamItem struct {
	Team model.Team `json:"team"`
}

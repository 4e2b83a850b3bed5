package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jacksmith/footy/internal/cli"
	"github.com/jacksmith/footy/internal/model"
	"github.com/jacksmith/footy/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testLeagues = `{
	"get": "leagues", "errors": [], "results": 4,
	"response": [
		{"league": {"id": 39, "name": "Premier League"}, "country": {"name": "England"},
		 "seasons": [{"year": 2023, "current": false}, {"year": 2024, "current": true}]},
		{"league": {"id": 78, "name": "Bundesliga"}, "country": {"name": "Germany"},
		 "seasons": [{"year": 2023, "current": true}]},
		{"league": {"id": 2, "name": "UEFA Champions League"}, "country": {"name": "World"},
		 "seasons": [{"year": 2023, "current": true}]},
		{"league": {"id": 999, "name": "Segunda Liga Obscura"}, "country": {"name": "Portugal"},
		 "seasons": [{"year": 2020, "current": true}]}
	]
}`

const testStandings = `{
	"get": "standings", "errors": [], "results": 1,
	"response": [{"league": {"id": 39, "season": 2023, "standings": [[
		{"rank": 1, "team": {"id": 50, "name": "Manchester City"}, "points": 91, "goalsDiff": 62,
		 "group": "Premier League", "form": "WWWWW",
		 "all": {"played": 38, "win": 28, "draw": 7, "lose": 3, "goals": {"for": 96, "against": 34}}},
		{"rank": 2, "team": {"id": 42, "name": "Arsenal"}, "points": 89, "goalsDiff": 62,
		 "group": "Premier League", "form": "WWWWW",
		 "all": {"played": 38, "win": 28, "draw": 5, "lose": 5, "goals": {"for": 91, "against": 29}}},
		{"rank": 3, "team": {"id": 1359, "name": "Luton"}, "points": 26, "goalsDiff": -33,
		 "group": "Premier League", "form": "LLLDL",
		 "all": {"played": 38, "win": 6, "draw": 8, "lose": 24, "goals": {"for": 52, "against": 85}}}
	]]}}]
}`

const testTeam = `{
	"get": "teams", "errors": [], "results": 1,
	"response": [{"team": {"id": 33, "name": "Manchester United", "logo": "33.png", "country": "England"}}]
}`

const emptyResponse = `{"get": "teams", "errors": [], "results": 0, "response": []}`

// setupWorkspace creates an initialized .footy/ in a temp directory, makes it
// the working directory and points the API at a fake server.
func setupWorkspace(t *testing.T) (string, *storage.Storage) {
	t.Helper()

	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() { os.Chdir(origDir) })

	s, err := storage.Init(tmpDir)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/leagues":
			w.Write([]byte(testLeagues))
		case "/standings":
			w.Write([]byte(testStandings))
		case "/teams":
			if r.URL.Query().Get("id") == "33" {
				w.Write([]byte(testTeam))
				return
			}
			w.Write([]byte(emptyResponse))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	t.Setenv("FOOTY_API_BASE_URL", srv.URL)
	t.Setenv("FOOTY_API_KEY", "test-key")
	t.Setenv("FOOTY_LOG_LEVEL", "error")
	cli.SetColorEnabled(false)
	resetFlags()
	return tmpDir, s
}

func resetFlags() {
	leaguesSearch = ""
	leaguesCountry = ""
	leaguesAll = false
	leaguesFrom = nil
	standingsSeason = ""
	standingsSearch = ""
	favNotes = ""
	noteEdit = false
	noteClear = false
	favoritesJSON = false
	loginPassword = ""
}

// captureOutput runs fn with os.Stdout redirected and returns what it wrote.
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	runErr := fn()

	w.Close()
	var buf bytes.Buffer
	buf.ReadFrom(r)
	os.Stdout = old
	return buf.String(), runErr
}

func login(t *testing.T) {
	t.Helper()
	loginPassword = "password123"
	defer func() { loginPassword = "" }()
	_, err := captureOutput(t, func() error { return runLogin(nil, []string{"admin"}) })
	require.NoError(t, err)
}

func TestInitCommand(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(origDir)

	output, err := captureOutput(t, func() error { return runInit(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Initialized footy in .footy/")
	assert.DirExists(t, filepath.Join(tmpDir, ".footy"))

	_, err = captureOutput(t, func() error { return runInit(nil, nil) })
	assert.Error(t, err, "init twice should fail")
}

func TestCommandsRequireInit(t *testing.T) {
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(origDir)

	_, err = captureOutput(t, func() error { return runFavorites(nil, nil) })
	assert.Error(t, err)
}

func TestLeaguesCommand(t *testing.T) {
	setupWorkspace(t)

	tests := []struct {
		name     string
		flags    func()
		contains []string
		excludes []string
	}{
		{
			name:     "default lists popular leagues",
			flags:    func() {},
			contains: []string{"Featured:", "Premier League", "Bundesliga", "UEFA Champions League", "#39", "2023"},
			excludes: []string{"Segunda Liga Obscura", "2024"},
		},
		{
			name:     "all includes every league",
			flags:    func() { leaguesAll = true },
			contains: []string{"Segunda Liga Obscura", "2020", "4 leagues in 4 countries"},
		},
		{
			name:     "search",
			flags:    func() { leaguesSearch = "bundes" },
			contains: []string{"Bundesliga", "1 league in 1 country"},
			excludes: []string{"Premier League", "Featured:"},
		},
		{
			name:     "country",
			flags:    func() { leaguesCountry = "England" },
			contains: []string{"Premier League"},
			excludes: []string{"Bundesliga"},
		},
		{
			name:     "no match",
			flags:    func() { leaguesSearch = "nothing like this" },
			contains: []string{"No leagues found"},
		},
		{
			name:     "from countries",
			flags: func() {
				leaguesFrom = []string{"England", "Germany"}
				leaguesAll = true
			},
			contains: []string{"Premier League"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			tt.flags()

			output, err := captureOutput(t, func() error { return runLeagues(nil, nil) })

			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, output, s, "expected output to contain %q", s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s, "expected output to not contain %q", s)
			}
		})
	}
}

func TestCategoriesCommand(t *testing.T) {
	setupWorkspace(t)

	t.Run("lists categories with counts", func(t *testing.T) {
		output, err := captureOutput(t, func() error { return runCategories(nil, nil) })
		require.NoError(t, err)
		assert.Contains(t, output, "germany")
		assert.Contains(t, output, "European Cups")
		assert.Contains(t, output, "3 leagues", "all excludes seasons before 2023")
	})

	t.Run("prefix selects a category", func(t *testing.T) {
		output, err := captureOutput(t, func() error { return runCategories(nil, []string{"ger"}) })
		require.NoError(t, err)
		assert.Contains(t, output, "Germany (1 league)")
		assert.Contains(t, output, "Bundesliga")
		assert.NotContains(t, output, "Premier League")
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := captureOutput(t, func() error { return runCategories(nil, []string{"mars"}) })
		assert.ErrorContains(t, err, "unknown category")
	})
}

func TestStandingsCommand(t *testing.T) {
	setupWorkspace(t)

	t.Run("table", func(t *testing.T) {
		output, err := captureOutput(t, func() error { return runStandings(nil, []string{"39"}) })
		require.NoError(t, err)
		assert.Contains(t, output, "Premier League, season 2023")
		assert.Contains(t, output, "Manchester City")
		assert.Contains(t, output, "96:34")
		assert.Contains(t, output, "+62")
		assert.Contains(t, output, "-33")
		assert.Contains(t, output, "↑")
		assert.Contains(t, output, "↓")
	})

	t.Run("search", func(t *testing.T) {
		resetFlags()
		standingsSearch = "lut"
		output, err := captureOutput(t, func() error { return runStandings(nil, []string{"#39"}) })
		require.NoError(t, err)
		assert.Contains(t, output, "Luton")
		assert.NotContains(t, output, "Arsenal")
	})

	t.Run("invalid league id", func(t *testing.T) {
		resetFlags()
		_, err := captureOutput(t, func() error { return runStandings(nil, []string{"abc"}) })
		var verr *cli.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("invalid season", func(t *testing.T) {
		resetFlags()
		standingsSeason = "23"
		_, err := captureOutput(t, func() error { return runStandings(nil, []string{"39"}) })
		var verr *cli.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestTeamCommand(t *testing.T) {
	setupWorkspace(t)

	output, err := captureOutput(t, func() error { return runTeam(nil, []string{"33"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Manchester United")
	assert.Contains(t, output, "Favorite: no")

	_, err = captureOutput(t, func() error { return runTeam(nil, []string{"404"}) })
	var nf *cli.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "team", nf.Type)
}

func TestFavoriteMutationsRequireLogin(t *testing.T) {
	setupWorkspace(t)

	runs := map[string]func() error{
		"fav":    func() error { return runFav(nil, []string{"33"}) },
		"unfav":  func() error { return runUnfav(nil, []string{"33"}) },
		"toggle": func() error { return runToggle(nil, []string{"33"}) },
		"note":   func() error { return runNote(nil, []string{"33", "text"}) },
	}
	for name, run := range runs {
		t.Run(name, func(t *testing.T) {
			_, err := captureOutput(t, run)
			var lerr *cli.LoginRequiredError
			assert.ErrorAs(t, err, &lerr)
		})
	}
}

func TestFavoritesWorkflow(t *testing.T) {
	_, s := setupWorkspace(t)
	login(t)

	favNotes = "Rebuild year"
	output, err := captureOutput(t, func() error { return runFav(nil, []string{"33"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Added Manchester United #33 to favorites.")
	favNotes = ""

	output, err = captureOutput(t, func() error { return runFav(nil, []string{"33"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "already a favorite")

	output, err = captureOutput(t, func() error { return runFavorites(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "1 favorite from 1 country, 1 with notes")
	assert.Contains(t, output, "Manchester United")
	assert.Contains(t, output, "Rebuild year", "re-adding without notes keeps them")

	output, err = captureOutput(t, func() error { return runNote(nil, []string{"33", "Watch", "transfer", "window"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Notes updated for Manchester United.")

	output, err = captureOutput(t, func() error { return runShow(nil, []string{"33"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Watch transfer window")

	raw, err := os.ReadFile(filepath.Join(s.Root(), ".footy", "store", "footballApp_favorites.json"))
	require.NoError(t, err)
	favs, err := model.DecodeFavorites(string(raw))
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, "Watch transfer window", favs[0].Notes)

	output, err = captureOutput(t, func() error { return runUnfav(nil, []string{"33"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Removed Manchester United #33")

	output, err = captureOutput(t, func() error { return runUnfav(nil, []string{"33"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "#33 is not a favorite.")

	output, err = captureOutput(t, func() error { return runFavorites(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "No favorite teams yet")
}

func TestFavUnknownTeam(t *testing.T) {
	setupWorkspace(t)
	login(t)

	_, err := captureOutput(t, func() error { return runFav(nil, []string{"404"}) })
	var nf *cli.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestToggleCommand(t *testing.T) {
	setupWorkspace(t)
	login(t)

	output, err := captureOutput(t, func() error { return runToggle(nil, []string{"33"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Added Manchester United")

	output, err = captureOutput(t, func() error { return runTeam(nil, []string{"33"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Favorite: yes")

	output, err = captureOutput(t, func() error { return runToggle(nil, []string{"33"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Removed Manchester United")
}

func TestNoteCommandValidation(t *testing.T) {
	setupWorkspace(t)
	login(t)

	t.Run("nothing to set", func(t *testing.T) {
		resetFlags()
		_, err := captureOutput(t, func() error { return runNote(nil, []string{"33"}) })
		var verr *cli.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("text and clear together", func(t *testing.T) {
		resetFlags()
		noteClear = true
		_, err := captureOutput(t, func() error { return runNote(nil, []string{"33", "text"}) })
		var verr *cli.ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("not a favorite", func(t *testing.T) {
		resetFlags()
		_, err := captureOutput(t, func() error { return runNote(nil, []string{"33", "text"}) })
		var nf *cli.NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "favorite", nf.Type)
	})

	t.Run("clear", func(t *testing.T) {
		resetFlags()
		favNotes = "something"
		_, err := captureOutput(t, func() error { return runFav(nil, []string{"33"}) })
		require.NoError(t, err)

		resetFlags()
		noteClear = true
		output, err := captureOutput(t, func() error { return runNote(nil, []string{"33"}) })
		require.NoError(t, err)
		assert.Contains(t, output, "Notes cleared")
	})
}

func TestFavoritesCommandSearchAndJSON(t *testing.T) {
	_, s := setupWorkspace(t)

	stored := `[
		{"id": 33, "name": "Manchester United", "logo": "33.png", "country": "England", "dateAdded": "2024-01-01T10:00:00.000Z"},
		{"id": 529, "name": "Barcelona", "logo": "529.png", "country": "Spain", "notes": "Lamine", "dateAdded": "2024-02-01T10:00:00.000Z"}
	]`
	require.NoError(t, os.WriteFile(filepath.Join(s.Root(), ".footy", "store", "footballApp_favorites.json"), []byte(stored), 0o644))

	output, err := captureOutput(t, func() error { return runFavorites(nil, []string{"spain"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Barcelona")
	assert.NotContains(t, output, "Manchester United")
	assert.Contains(t, output, "2 favorites from 2 countries")

	favoritesJSON = true
	output, err = captureOutput(t, func() error { return runFavorites(nil, nil) })
	require.NoError(t, err)
	favs, err := model.DecodeFavorites(output)
	require.NoError(t, err)
	assert.Len(t, favs, 2)
}

func TestFavoritesCorruptStoreResets(t *testing.T) {
	_, s := setupWorkspace(t)
	path := filepath.Join(s.Root(), ".footy", "store", "footballApp_favorites.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o644))

	output, err := captureOutput(t, func() error { return runFavorites(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "No favorite teams yet")
	assert.NoFileExists(t, path)
}

func TestLoginCommands(t *testing.T) {
	setupWorkspace(t)

	output, err := captureOutput(t, func() error { return runWhoami(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Not signed in.")

	loginPassword = "wrong"
	_, err = captureOutput(t, func() error { return runLogin(nil, []string{"admin"}) })
	assert.Error(t, err)

	resetFlags()
	passwordInput = bytes.NewBufferString("password123\n")
	defer func() { passwordInput = os.Stdin }()
	output, err = captureOutput(t, func() error { return runLogin(nil, []string{"admin"}) })
	require.NoError(t, err)
	assert.Contains(t, output, "Signed in as admin")

	output, err = captureOutput(t, func() error { return runWhoami(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "admin (session expires")

	output, err = captureOutput(t, func() error { return runLogout(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Signed out.")

	output, err = captureOutput(t, func() error { return runWhoami(nil, nil) })
	require.NoError(t, err)
	assert.Contains(t, output, "Not signed in.")
}

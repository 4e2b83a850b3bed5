// Package footballapi is a client for the API-Football v3 REST API.
package footballapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	crerr "github.com/cockroachdb/errors"

	"github.com/jacksmith/footy/internal/logging"
	"github.com/jacksmith/footy/internal/model"
)

const (
	defaultBaseURL   = "https://v3.football.api-sports.io"
	defaultTimeout   = 20 * time.Second
	defaultRetryWait = 500 * time.Millisecond
	defaultMaxSeason = 2023
	apiKeyHeader     = "x-apisports-key"
	maxBodyBytes     = 6 << 20
)

// Config controls how the client reaches the API.
type Config struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Timeout    time.Duration
	// MaxRetries is the number of extra attempts after a transient failure.
	MaxRetries int
	// RetryWait is the first backoff interval; later ones grow exponentially.
	RetryWait time.Duration
	// MaxSeason is the newest season the client will pick for a league.
	MaxSeason int
	// CacheTTL keeps successful responses in memory; zero disables caching.
	CacheTTL time.Duration
	Logger   *logging.Logger
}

// Client fetches leagues, standings and teams.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient httpDoer
	maxRetries int
	retryWait  time.Duration
	maxSeason  int
	cache      *responseCache
	logger     *logging.Logger
}

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewClient builds a Client from cfg, filling in defaults.
func NewClient(cfg Config) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	var doer httpDoer = cfg.HTTPClient
	if cfg.HTTPClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		doer = &http.Client{Timeout: timeout}
	}

	retryWait := cfg.RetryWait
	if retryWait <= 0 {
		retryWait = defaultRetryWait
	}
	maxSeason := cfg.MaxSeason
	if maxSeason <= 0 {
		maxSeason = defaultMaxSeason
	}

	return &Client{
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		httpClient: doer,
		maxRetries: max(cfg.MaxRetries, 0),
		retryWait:  retryWait,
		maxSeason:  maxSeason,
		cache:      newResponseCache(cfg.CacheTTL),
		logger:     logger,
	}
}

func normalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimRight(raw, "/")
}

// MaxSeason returns the newest season the client will pick for a league.
func (c *Client) MaxSeason() int {
	return c.maxSeason
}

// Leagues returns every league the API knows, each with the most recent
// supported season.
func (c *Client) Leagues(ctx context.Context) ([]model.League, error) {
	raw, err := c.get(ctx, "/leagues", nil)
	if err != nil {
		return nil, crerr.Wrap(err, "fetch leagues")
	}
	items, err := decodeResponse[[]leagueItem](raw)
	if err != nil {
		return nil, err
	}
	return mapLeagues(items, latestSupportedSeason, c.maxSeason), nil
}

// LeaguesByCountry returns the leagues of one country, each with its
// current season.
func (c *Client) LeaguesByCountry(ctx context.Context, country string) ([]model.League, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, crerr.New("country is required")
	}
	raw, err := c.get(ctx, "/leagues", url.Values{"country": {country}})
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch leagues for %s", country)
	}
	items, err := decodeResponse[[]leagueItem](raw)
	if err != nil {
		return nil, err
	}
	return mapLeagues(items, currentSeason, c.maxSeason), nil
}

// Standings returns the league table for a season. Leagues split into
// several groups return the first group. A response without a table yields
// an empty slice.
func (c *Client) Standings(ctx context.Context, leagueID, season int) ([]model.Standing, error) {
	if leagueID <= 0 {
		return nil, crerr.Newf("invalid league id %d", leagueID)
	}
	if season <= 0 {
		season = c.maxSeason
	}
	query := url.Values{
		"league": {strconv.Itoa(leagueID)},
		"season": {strconv.Itoa(season)},
	}
	raw, err := c.get(ctx, "/standings", query)
	if err != nil {
		return nil, crerr.Wrapf(err, "fetch standings league=%d season=%d", leagueID, season)
	}
	items, err := decodeResponse[[]standingsItem](raw)
	if err != nil {
		return nil, err
	}
	table := firstTable(items)
	if table == nil {
		c.logger.Warn("standings not found or invalid structure", "league", leagueID, "season", season)
		return []model.Standing{}, nil
	}
	return table, nil
}

// Team looks up a team by id. ErrNotFound is returned when the API has no
// such team.
func (c *Client) Team(ctx context.Context, id int) (model.Team, error) {
	if id <= 0 {
		return model.Team{}, crerr.Newf("invalid team id %d", id)
	}
	raw, err := c.get(ctx, "/teams", url.Values{"id": {strconv.Itoa(id)}})
	if err != nil {
		return model.Team{}, crerr.Wrapf(err, "fetch team %d", id)
	}
	items, err := decodeResponse[[]teamItem](raw)
	if err != nil {
		return model.Team{}, err
	}
	if len(items) == 0 || items[0].Team.ID == 0 {
		return model.Team{}, crerr.Wrapf(ErrNotFound, "team %d", id)
	}
	return items[0].Team, nil
}

// get returns the raw body for path, served from cache when fresh.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return c.cache.getOrLoad(ctx, fullURL, func(ctx context.Context) ([]byte, error) {
		return c.fetch(ctx, fullURL)
	})
}

// decodeResponse unmarshals the response field of an API envelope.
func decodeResponse[T any](raw []byte) (T, error) {
	var env envelope[T]
	if err := sonic.Unmarshal(raw, &env); err != nil {
		var zero T
		return zero, crerr.Wrap(err, "decode response")
	}
	return env.Response, nil
}

// fetch performs the request with retries and returns a body with no
// reported errors.
func (c *Client) fetch(ctx context.Context, fullURL string) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryWait
	policy.MaxInterval = 10 * c.retryWait
	policy.MaxElapsedTime = 0
	policy.Reset()

	var body []byte
	attempt := 0
	operation := func() error {
		attempt++
		raw, err := c.do(ctx, fullURL)
		if err != nil {
			if isTransient(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		var check errorsOnly
		if err := sonic.Unmarshal(raw, &check); err != nil {
			return backoff.Permanent(crerr.Wrap(err, "decode response"))
		}
		if err := reportedError(check.Errors); err != nil {
			return backoff.Permanent(err)
		}
		body = raw
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Debug("retrying football api request", "path", redactedPath(fullURL), "attempt", attempt, "wait", wait, "err", err)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(c.maxRetries)), ctx), notify)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Warn("football api request failed", "path", redactedPath(fullURL), "attempts", attempt, "err", err)
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Newf("send request: %s", sanitizeSensitiveText(err.Error(), c.apiKey)), errTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, statusError(resp.StatusCode, []byte(sanitizeSensitiveText(string(raw), c.apiKey)))
	}
	return raw, nil
}

// redactedPath strips the host so logs stay short.
func redactedPath(fullURL string) string {
	parsed, err := url.Parse(fullURL)
	if err != nil {
		return fullURL
	}
	return parsed.RequestURI()
}

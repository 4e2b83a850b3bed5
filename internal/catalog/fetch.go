package catalog

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/jacksmith/footy/internal/model"
)

// DefaultConcurrency bounds FetchCountries when no limit is given.
const DefaultConcurrency = 4

// LeagueSource fetches the leagues of one country.
type LeagueSource interface {
	LeaguesByCountry(ctx context.Context, country string) ([]model.League, error)
}

// FetchCountries fetches the leagues of every country concurrently, at most
// limit at a time, and returns them grouped in the order of countries. The
// first failure cancels the remaining fetches.
func FetchCountries(ctx context.Context, src LeagueSource, countries []string, limit int) ([]model.League, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([][]model.League, len(countries))
	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError().WithMaxGoroutines(limit)
	for i, country := range countries {
		i, country := i, country
		p.Go(func(ctx context.Context) error {
			leagues, err := src.LeaguesByCountry(ctx, country)
			if err != nil {
				return fmt.Errorf("leagues for %s: %w", country, err)
			}
			results[i] = leagues
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	out := []model.League{}
	for _, leagues := range results {
		out = append(out, leagues...)
	}
	return out, nil
}

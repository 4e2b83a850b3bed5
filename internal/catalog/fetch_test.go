package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jacksmith/footy/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu       sync.Mutex
	calls    []string
	inFlight int32
	peak     int32
	fail     string
}

func (f *fakeSource) LeaguesByCountry(ctx context.Context, country string) ([]model.League, error) {
	n := atomic.AddInt32(&f.inFlight, 1)
	defer atomic.AddInt32(&f.inFlight, -1)
	for {
		p := atomic.LoadInt32(&f.peak)
		if n <= p || atomic.CompareAndSwapInt32(&f.peak, p, n) {
			break
		}
	}

	f.mu.Lock()
	f.calls = append(f.calls, country)
	f.mu.Unlock()

	select {
	case <-time.After(5 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if country == f.fail {
		return nil, errors.New("upstream down")
	}
	return []model.League{{Name: country + " League", Country: country}}, nil
}

func TestFetchCountriesKeepsOrder(t *testing.T) {
	src := &fakeSource{}
	countries := []string{"England", "Spain", "Italy", "Germany", "France"}

	got, err := FetchCountries(context.Background(), src, countries, 2)
	require.NoError(t, err)

	var gotCountries []string
	for _, l := range got {
		gotCountries = append(gotCountries, l.Country)
	}
	assert.Equal(t, countries, gotCountries)
	assert.LessOrEqual(t, atomic.LoadInt32(&src.peak), int32(2))
}

func TestFetchCountriesError(t *testing.T) {
	src := &fakeSource{fail: "Spain"}

	_, err := FetchCountries(context.Background(), src, []string{"England", "Spain"}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "leagues for Spain")
}

func TestFetchCountriesEmpty(t *testing.T) {
	got, err := FetchCountries(context.Background(), &fakeSource{}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

// Package favorites keeps the user's favorite teams: a registry enforcing one
// record per team, persisted through a storage backend and observable by
// subscribers.
package favorites

import (
	"context"

	"github.com/jacksmith/footy/internal/logging"
	"github.com/jacksmith/footy/internal/model"
	"github.com/jacksmith/footy/internal/storage"
)

// StorageKey is the fixed key the collection is stored under.
const StorageKey = "footballApp_favorites"

// CorruptFunc is called when the stored value cannot be parsed.
type CorruptFunc func(raw string, err error)

// Adapter reads and writes the whole favorites collection under StorageKey.
type Adapter struct {
	backend   storage.Backend
	logger    *logging.Logger
	onCorrupt CorruptFunc
}

// AdapterOption configures an Adapter.
type AdapterOption func(*Adapter)

// WithLogger sets the logger used to report corrupt data.
func WithLogger(l *logging.Logger) AdapterOption {
	return func(a *Adapter) { a.logger = l }
}

// WithCorruptHandler registers a diagnostic callback for corrupt data.
func WithCorruptHandler(fn CorruptFunc) AdapterOption {
	return func(a *Adapter) { a.onCorrupt = fn }
}

// NewAdapter returns an Adapter over backend.
func NewAdapter(backend storage.Backend, opts ...AdapterOption) *Adapter {
	a := &Adapter{backend: backend, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Load returns the stored collection, or an empty one if nothing is stored.
// A value that fails to parse is reported, deleted and treated as empty; Load
// never fails. Read errors from the backend are logged and also yield empty.
func (a *Adapter) Load(ctx context.Context) []model.FavoriteTeam {
	raw, ok, err := a.backend.Get(ctx, StorageKey)
	if err != nil {
		a.logger.Error("error loading favorites", "key", StorageKey, "err", err)
		return []model.FavoriteTeam{}
	}
	if !ok {
		return []model.FavoriteTeam{}
	}

	favorites, err := model.DecodeFavorites(raw)
	if err != nil {
		a.logger.Error("error loading favorites, discarding stored value", "key", StorageKey, "err", err)
		if a.onCorrupt != nil {
			a.onCorrupt(raw, err)
		}
		if rmErr := a.backend.Remove(ctx, StorageKey); rmErr != nil {
			a.logger.Error("failed to remove corrupt favorites", "key", StorageKey, "err", rmErr)
		}
		return []model.FavoriteTeam{}
	}
	return favorites
}

// Save serializes favorites and overwrites the stored value.
func (a *Adapter) Save(ctx context.Context, favorites []model.FavoriteTeam) error {
	raw, err := model.EncodeFavorites(favorites)
	if err != nil {
		return err
	}
	return a.backend.Set(ctx, StorageKey, raw)
}

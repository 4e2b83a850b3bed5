package favorites

import (
	"context"
	"time"

	"github.com/jacksmith/footy/internal/logging"
	"github.com/jacksmith/footy/internal/model"
)

// Outcome reports what a mutation did.
type Outcome int

const (
	// Unchanged means the call had nothing to act on.
	Unchanged Outcome = iota
	Added
	Updated
	Removed
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Updated:
		return "updated"
	case Removed:
		return "removed"
	default:
		return "unchanged"
	}
}

// Registry is the canonical in-memory favorites collection.
//
// A Registry is owned by one goroutine; its methods are not safe for
// concurrent use. Every mutation rewrites the full collection through the
// Adapter and publishes a snapshot. Mutations never fail: storage errors
// are logged and the in-memory state stays authoritative for the session.
type Registry struct {
	adapter   *Adapter
	broadcast *Broadcaster
	logger    *logging.Logger
	now       func() time.Time

	favorites []model.FavoriteTeam
	index     map[int]int // team id -> position in favorites
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithClock overrides the time source used for DateAdded.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// WithRegistryLogger sets the logger used for storage failures.
func WithRegistryLogger(l *logging.Logger) RegistryOption {
	return func(r *Registry) { r.logger = l }
}

// WithBroadcaster shares an existing Broadcaster.
func WithBroadcaster(b *Broadcaster) RegistryOption {
	return func(r *Registry) { r.broadcast = b }
}

// NewRegistry loads the stored collection and publishes it.
func NewRegistry(ctx context.Context, adapter *Adapter, opts ...RegistryOption) *Registry {
	r := &Registry{
		adapter: adapter,
		logger:  logging.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.broadcast == nil {
		r.broadcast = NewBroadcaster()
	}

	r.favorites = adapter.Load(ctx)
	r.reindex()
	r.broadcast.Publish(r.favorites)
	return r
}

// Add favorites team. If the team is already a favorite its notes are
// replaced when notes is non-empty and kept otherwise; position and
// DateAdded do not change. Teams without a positive id are ignored; the
// stored format rejects them.
func (r *Registry) Add(ctx context.Context, team model.Team, notes string) Outcome {
	if team.ID <= 0 {
		r.logger.Warn("ignoring favorite without a valid team id", "id", team.ID, "name", team.Name)
		return Unchanged
	}
	if i, ok := r.index[team.ID]; ok {
		if notes != "" {
			r.favorites[i].Notes = notes
		}
		r.commit(ctx)
		return Updated
	}

	r.favorites = append(r.favorites, model.NewFavorite(team, notes, r.now()))
	r.index[team.ID] = len(r.favorites) - 1
	r.commit(ctx)
	return Added
}

// Remove deletes the favorite for teamID. Missing ids are a no-op.
func (r *Registry) Remove(ctx context.Context, teamID int) Outcome {
	outcome := Unchanged
	if i, ok := r.index[teamID]; ok {
		r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
		r.reindex()
		outcome = Removed
	}
	r.commit(ctx)
	return outcome
}

// UpdateNotes replaces the notes for teamID; an empty string clears them.
// Missing ids are a no-op.
func (r *Registry) UpdateNotes(ctx context.Context, teamID int, notes string) Outcome {
	outcome := Unchanged
	if i, ok := r.index[teamID]; ok {
		r.favorites[i].Notes = notes
		outcome = Updated
	}
	r.commit(ctx)
	return outcome
}

// Toggle removes team if it is a favorite and adds it otherwise. Like Add,
// it ignores teams without a positive id.
func (r *Registry) Toggle(ctx context.Context, team model.Team) Outcome {
	if r.IsFavorite(team.ID) {
		return r.Remove(ctx, team.ID)
	}
	return r.Add(ctx, team, "")
}

// IsFavorite reports whether teamID is a favorite.
func (r *Registry) IsFavorite(teamID int) bool {
	_, ok := r.index[teamID]
	return ok
}

// Get returns the favorite for teamID.
func (r *Registry) Get(teamID int) (model.FavoriteTeam, bool) {
	i, ok := r.index[teamID]
	if !ok {
		return model.FavoriteTeam{}, false
	}
	return r.favorites[i], true
}

// List returns a copy of the collection in insertion order.
func (r *Registry) List() []model.FavoriteTeam {
	return clone(r.favorites)
}

// Len returns the number of favorites.
func (r *Registry) Len() int {
	return len(r.favorites)
}

// Subscribe registers fn for snapshots; see Broadcaster.Subscribe.
func (r *Registry) Subscribe(fn Listener) (unsubscribe func()) {
	return r.broadcast.Subscribe(fn)
}

// commit persists the collection and publishes it.
func (r *Registry) commit(ctx context.Context) {
	if err := r.adapter.Save(ctx, r.favorites); err != nil {
		r.logger.Error("failed to save favorites", "count", len(r.favorites), "err", err)
	}
	r.broadcast.Publish(r.favorites)
}

func (r *Registry) reindex() {
	r.index = make(map[int]int, len(r.favorites))
	for i, fav := range r.favorites {
		r.index[fav.ID] = i
	}
}

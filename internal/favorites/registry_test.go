package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/jacksmith/footy/internal/model"
	"github.com/jacksmith/footy/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 8, 16, 19, 0, 0, 0, time.UTC)

func exampleTeam() model.Team {
	return model.Team{ID: 1, Name: "FC Example", Logo: "x", Country: "Nowhere"}
}

// setupRegistry returns a registry over a fresh in-memory backend.
func setupRegistry(t *testing.T) (*Registry, *storage.MemoryBackend) {
	t.Helper()
	backend := storage.NewMemoryBackend()
	r := NewRegistry(context.Background(), NewAdapter(backend), WithClock(func() time.Time { return fixedNow }))
	return r, backend
}

func TestRegistryScenarioAddNoteRemove(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRegistry(t)

	assert.Equal(t, Added, r.Add(ctx, exampleTeam(), ""))

	fav, ok := r.Get(1)
	require.True(t, ok)
	assert.Empty(t, fav.Notes)
	assert.Equal(t, "2024-08-16T19:00:00.000Z", fav.DateAdded)
	assert.Equal(t, "FC Example", fav.Name)

	assert.Equal(t, Updated, r.UpdateNotes(ctx, 1, "Watch transfer window"))
	fav, _ = r.Get(1)
	assert.Equal(t, "Watch transfer window", fav.Notes)

	assert.Equal(t, Removed, r.Remove(ctx, 1))
	assert.False(t, r.IsFavorite(1))
}

func TestRegistryAddTwiceKeepsOneRecord(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRegistry(t)

	r.Add(ctx, exampleTeam(), "a")
	assert.Equal(t, Updated, r.Add(ctx, exampleTeam(), "b"))

	assert.Equal(t, 1, r.Len())
	fav, _ := r.Get(1)
	assert.Equal(t, "b", fav.Notes)
}

func TestRegistryAddWithoutNotesKeepsExistingNotes(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRegistry(t)

	r.Add(ctx, exampleTeam(), "keep me")
	r.Add(ctx, exampleTeam(), "")

	fav, _ := r.Get(1)
	assert.Equal(t, "keep me", fav.Notes)
	assert.Equal(t, 1, r.Len())
}

func TestRegistryReAddKeepsPositionAndDate(t *testing.T) {
	ctx := context.Background()
	now := fixedNow
	backend := storage.NewMemoryBackend()
	r := NewRegistry(ctx, NewAdapter(backend), WithClock(func() time.Time { return now }))

	r.Add(ctx, model.Team{ID: 1, Name: "One"}, "")
	r.Add(ctx, model.Team{ID: 2, Name: "Two"}, "")
	now = now.Add(time.Hour)
	r.Add(ctx, model.Team{ID: 1, Name: "One"}, "later")

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].ID)
	assert.Equal(t, 2, list[1].ID)
	assert.Equal(t, "2024-08-16T19:00:00.000Z", list[0].DateAdded)
}

func TestRegistryInsertionOrder(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRegistry(t)

	for _, id := range []int{40, 33, 50, 42} {
		r.Add(ctx, model.Team{ID: id}, "")
	}
	r.Remove(ctx, 50)

	var ids []int
	for _, f := range r.List() {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []int{40, 33, 42}, ids)

	for _, id := range []int{40, 33, 42} {
		fav, ok := r.Get(id)
		require.True(t, ok, "id %d", id)
		assert.Equal(t, id, fav.ID)
	}
}

func TestRegistryRemoveMissingIsNoop(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRegistry(t)

	r.Add(ctx, exampleTeam(), "")
	assert.Equal(t, Unchanged, r.Remove(ctx, 999))
	assert.False(t, r.IsFavorite(999))
	assert.Equal(t, 1, r.Len())

	assert.Equal(t, Removed, r.Remove(ctx, 1))
	assert.Equal(t, Unchanged, r.Remove(ctx, 1))
	assert.False(t, r.IsFavorite(1))
}

func TestRegistryUpdateNotes(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRegistry(t)

	t.Run("missing id is a no-op", func(t *testing.T) {
		assert.Equal(t, Unchanged, r.UpdateNotes(ctx, 7, "nothing"))
		assert.False(t, r.IsFavorite(7))
	})

	t.Run("empty notes clear existing notes", func(t *testing.T) {
		r.Add(ctx, exampleTeam(), "old")
		r.UpdateNotes(ctx, 1, "")
		fav, _ := r.Get(1)
		assert.Empty(t, fav.Notes)
	})
}

func TestRegistryToggle(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRegistry(t)

	assert.Equal(t, Added, r.Toggle(ctx, exampleTeam()))
	assert.True(t, r.IsFavorite(1))
	assert.Equal(t, Removed, r.Toggle(ctx, exampleTeam()))
	assert.False(t, r.IsFavorite(1))
}

func TestRegistryPersistsEveryMutation(t *testing.T) {
	ctx := context.Background()
	r, backend := setupRegistry(t)

	reload := func() *Registry {
		return NewRegistry(ctx, NewAdapter(backend))
	}

	r.Add(ctx, exampleTeam(), "first")
	assert.True(t, reload().IsFavorite(1))

	r.UpdateNotes(ctx, 1, "second")
	fav, _ := reload().Get(1)
	assert.Equal(t, "second", fav.Notes)

	r.Remove(ctx, 1)
	assert.Equal(t, 0, reload().Len())

	raw, ok, err := backend.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", raw)
}

func TestRegistryKeepsStateWhenSaveFails(t *testing.T) {
	ctx := context.Background()
	r, backend := setupRegistry(t)

	backend.FailSet = assert.AnError
	assert.Equal(t, Added, r.Add(ctx, exampleTeam(), ""))
	assert.True(t, r.IsFavorite(1))

	_, ok, _ := backend.Get(ctx, StorageKey)
	assert.False(t, ok)
}

func TestRegistryListIsACopy(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRegistry(t)
	r.Add(ctx, exampleTeam(), "original")

	list := r.List()
	list[0].Notes = "changed"

	fav, _ := r.Get(1)
	assert.Equal(t, "original", fav.Notes)
}

func TestRegistryPublishesSnapshots(t *testing.T) {
	ctx := context.Background()
	r, _ := setupRegistry(t)

	var snapshots [][]model.FavoriteTeam
	unsubscribe := r.Subscribe(func(favs []model.FavoriteTeam) {
		snapshots = append(snapshots, favs)
	})

	require.Len(t, snapshots, 1, "initial snapshot delivered on subscribe")
	assert.Empty(t, snapshots[0])

	r.Add(ctx, exampleTeam(), "")
	r.UpdateNotes(ctx, 1, "n")
	require.Len(t, snapshots, 3)
	assert.Len(t, snapshots[1], 1)
	assert.Equal(t, "n", snapshots[2][0].Notes)

	unsubscribe()
	r.Remove(ctx, 1)
	assert.Len(t, snapshots, 3)
}

func TestRegistryLoadsExistingState(t *testing.T) {
	ctx := context.Background()
	backend := storage.NewMemoryBackend()
	require.NoError(t, backend.Set(ctx, StorageKey,
		`[{"id":33,"name":"Manchester United","logo":"m.png","country":"England","dateAdded":"2024-01-01T00:00:00.000Z"}]`))

	var initial []model.FavoriteTeam
	r := NewRegistry(ctx, NewAdapter(backend))
	r.Subscribe(func(favs []model.FavoriteTeam) { initial = favs })

	require.Len(t, initial, 1)
	assert.True(t, r.IsFavorite(33))
}

func TestRegistryIgnoresInvalidTeamIDs(t *testing.T) {
	ctx := context.Background()
	r, backend := setupRegistry(t)

	require.Equal(t, Added, r.Add(ctx, model.Team{ID: 33, Name: "Manchester United"}, "keep me"))

	for _, id := range []int{0, -7} {
		assert.Equal(t, Unchanged, r.Add(ctx, model.Team{ID: id, Name: "Nobody"}, ""), "add id %d", id)
		assert.Equal(t, Unchanged, r.Toggle(ctx, model.Team{ID: id, Name: "Nobody"}), "toggle id %d", id)
		assert.False(t, r.IsFavorite(id))
	}
	assert.Equal(t, 1, r.Len())

	reloaded := NewRegistry(ctx, NewAdapter(backend))
	assert.True(t, reloaded.IsFavorite(33))
	fav, ok := reloaded.Get(33)
	require.True(t, ok)
	assert.Equal(t, "keep me", fav.Notes)

	_, ok, err := backend.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.True(t, ok, "stored collection survives the reload")
}

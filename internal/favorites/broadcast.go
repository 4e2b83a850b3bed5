package favorites

import (
	"sync"

	"github.com/jacksmith/footy/internal/model"
)

// Listener receives a snapshot of the favorites collection.
type Listener func(favorites []model.FavoriteTeam)

// Broadcaster delivers snapshots to subscribers synchronously.
// New subscribers are immediately sent the latest published snapshot.
type Broadcaster struct {
	mu        sync.Mutex
	nextID    int
	listeners []subscription
	latest    []model.FavoriteTeam
	published bool
}

type subscription struct {
	id int
	fn Listener
}

// NewBroadcaster returns a Broadcaster with no subscribers.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// Subscribe registers fn and returns a function that unregisters it.
// If a snapshot has been published, fn receives it before Subscribe returns.
// Calling the returned function more than once is harmless.
func (b *Broadcaster) Subscribe(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})
	latest, published := b.latest, b.published
	b.mu.Unlock()

	if published {
		fn(clone(latest))
	}

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// Publish records snapshot as the latest and sends it to every subscriber in
// subscription order, in the calling goroutine.
func (b *Broadcaster) Publish(snapshot []model.FavoriteTeam) {
	b.mu.Lock()
	b.latest = clone(snapshot)
	b.published = true
	listeners := append([]subscription(nil), b.listeners...)
	b.mu.Unlock()

	for _, l := range listeners {
		l.fn(clone(snapshot))
	}
}

// Len returns the number of active subscribers.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.listeners)
}

func (b *Broadcaster) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			return
		}
	}
}

func clone(favorites []model.FavoriteTeam) []model.FavoriteTeam {
	out := make([]model.FavoriteTeam, len(favorites))
	copy(out, favorites)
	return out
}

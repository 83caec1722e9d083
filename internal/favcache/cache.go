// Package favcache is the client-side optimistic mirror of a user's
// favorites. Toggle updates the local set at once and reconciles with the
// server in the background.
package favcache

import (
	"context"
	"sort"
	"sync"
	"time"
)

// Transport performs the server calls. Both calls must be idempotent.
type Transport interface {
	AddFavorite(ctx context.Context, restaurantID int64) error
	RemoveFavorite(ctx context.Context, restaurantID int64) error
}

type Option func(*Cache)

// WithErrorHandler registers fn to observe failed requests. It runs outside
// the cache lock and may call back into the cache.
func WithErrorHandler(fn func(restaurantID int64, err error)) Option {
	return func(c *Cache) { c.onError = fn }
}

// WithRequestTimeout bounds each server call.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Cache) { c.timeout = d }
}

// WithContext sets the parent context of every server call.
func WithContext(ctx context.Context) Option {
	return func(c *Cache) { c.ctx = ctx }
}

// entry tracks one restaurant with outstanding or unreconciled state.
type entry struct {
	intended  bool
	confirmed bool
	inFlight  bool
}

type Cache struct {
	mu        sync.Mutex
	favorites map[int64]struct{}
	entries   map[int64]*entry

	transport Transport
	onError   func(int64, error)
	timeout   time.Duration
	ctx       context.Context
	wg        sync.WaitGroup
}

func New(transport Transport, opts ...Option) *Cache {
	c := &Cache{
		favorites: make(map[int64]struct{}),
		entries:   make(map[int64]*entry),
		transport: transport,
		timeout:   10 * time.Second,
		ctx:       context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Seed replaces the local set with the server's authoritative ids. Ids with
// a request in flight keep their intended state.
func (c *Cache) Seed(ids []int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	seeded := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		seeded[id] = struct{}{}
	}

	for id, e := range c.entries {
		_, on := seeded[id]
		e.confirmed = on
		if e.inFlight {
			if e.intended {
				seeded[id] = struct{}{}
			} else {
				delete(seeded, id)
			}
			continue
		}
		delete(c.entries, id)
	}
	c.favorites = seeded
}

func (c *Cache) IsFavorite(restaurantID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.favorites[restaurantID]
	return ok
}

// Snapshot returns the locally favorited ids in ascending order.
func (c *Cache) Snapshot() []int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]int64, 0, len(c.favorites))
	for id := range c.favorites {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Toggle flips restaurantID in the local set and returns the new state. The
// matching request is sent unless one for the same id is already in flight;
// in that case the latest intent is reconciled when it settles.
func (c *Cache) Toggle(restaurantID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[restaurantID]
	if !ok {
		_, on := c.favorites[restaurantID]
		e = &entry{intended: on, confirmed: on}
		c.entries[restaurantID] = e
	}

	e.intended = !e.intended
	c.setLocal(restaurantID, e.intended)

	if !e.inFlight {
		c.send(restaurantID, e)
	}
	return e.intended
}

// Wait blocks until no request is in flight or ctx is done.
func (c *Cache) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Cache) setLocal(restaurantID int64, on bool) {
	if on {
		c.favorites[restaurantID] = struct{}{}
	} else {
		delete(c.favorites, restaurantID)
	}
}

// send must be called with c.mu held.
func (c *Cache) send(restaurantID int64, e *entry) {
	target := e.intended
	e.inFlight = true
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
		defer cancel()

		var err error
		if target {
			err = c.transport.AddFavorite(ctx, restaurantID)
		} else {
			err = c.transport.RemoveFavorite(ctx, restaurantID)
		}
		c.settle(restaurantID, target, err)
	}()
}

// settle applies the outcome of a request for target. A result that no
// longer matches the intended state is never written to the local set.
func (c *Cache) settle(restaurantID int64, target bool, err error) {
	c.mu.Lock()

	e := c.entries[restaurantID]
	e.inFlight = false
	if err == nil {
		e.confirmed = target
	}

	switch {
	case e.intended == e.confirmed:
		// Reconciled.
	case err != nil && e.intended == target:
		// The latest intent failed: undo it.
		e.intended = e.confirmed
		c.setLocal(restaurantID, e.confirmed)
	default:
		// Intent moved on while the request was in flight.
		c.send(restaurantID, e)
	}

	if !e.inFlight {
		delete(c.entries, restaurantID)
	}
	onError := c.onError
	c.mu.Unlock()

	if err != nil && onError != nil {
		onError(restaurantID, err)
	}
}

package cache

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/samber/lo"
	"golang.org/x/sync/singleflight"
)

// Entry is the latest data known for one resource key.
type Entry[T any] struct {
	Value               T
	HasValue            bool
	UpdatedAt           time.Time
	LastError           error
	ConsecutiveFailures int // failed fetches since the last success
}

// IsOffline returns true when the API has been unreachable for multiple fetches.
func (e Entry[T]) IsOffline() bool {
	return e.ConsecutiveFailures >= 2
}

type slot[T any] struct {
	Entry[T]
	version uint64
}

// Cache holds fetched values by resource key. Concurrent fetches of one key
// share a single request, and a fetch result is dropped when the key was
// written while the request was in flight.
type Cache[T any] struct {
	mu      sync.RWMutex
	slots   map[string]*slot[T]
	clone   func(T) T
	group   singleflight.Group
	subs    map[int]chan string
	nextSub int
	now     func() time.Time
}

// New creates an empty cache. clone must return an independent copy of a
// value; it is applied on every read and write.
func New[T any](clone func(T) T) *Cache[T] {
	return &Cache[T]{
		slots: make(map[string]*slot[T]),
		clone: clone,
		subs:  make(map[int]chan string),
		now:   time.Now,
	}
}

// Get returns a copy of the entry for key.
func (c *Cache[T]) Get(key string) Entry[T] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.slots[key]
	if !ok {
		return Entry[T]{}
	}
	return c.copyEntry(s.Entry)
}

// Fetch runs fetch for key, or joins a fetch already in flight, and stores
// the result unless the key changed meanwhile. It returns the cached value
// after the fetch. On error the previous value is kept and the failure is
// recorded.
func (c *Cache[T]) Fetch(ctx context.Context, key string, fetch func(ctx context.Context) (T, error)) (T, error) {
	res, err, _ := c.group.Do(key, func() (any, error) {
		start := c.version(key)
		value, err := fetch(ctx)
		return c.complete(key, start, value, err)
	})
	if err != nil {
		var zero T
		if v, ok := res.(T); ok {
			return c.clone(v), err
		}
		return zero, err
	}
	return c.clone(res.(T)), nil
}

func (c *Cache[T]) complete(key string, start uint64, value T, fetchErr error) (T, error) {
	c.mu.Lock()
	s := c.slotFor(key)
	if fetchErr != nil {
		s.LastError = fmt.Errorf("%w", fetchErr)
		s.UpdatedAt = c.now()
		s.ConsecutiveFailures++
		current := c.clone(s.Value)
		c.mu.Unlock()
		c.notify(key)
		return current, fetchErr
	}
	if s.version != start {
		// Written while in flight; the local value is newer.
		current := c.clone(s.Value)
		c.mu.Unlock()
		return current, nil
	}
	s.Value = c.clone(value)
	s.HasValue = true
	s.LastError = nil
	s.UpdatedAt = c.now()
	s.ConsecutiveFailures = 0
	s.version++
	current := c.clone(s.Value)
	c.mu.Unlock()
	c.notify(key)
	return current, nil
}

// Set replaces the value for key.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	s := c.slotFor(key)
	s.Value = c.clone(value)
	s.HasValue = true
	s.LastError = nil
	s.UpdatedAt = c.now()
	s.version++
	c.mu.Unlock()
	c.notify(key)
}

// Mutate applies fn to the current value of key and stores the result. fn
// receives a copy and whether a value was present. Undoing an optimistic
// change is another Mutate, so concurrent changes to the same key survive.
// The stored entry is returned.
func (c *Cache[T]) Mutate(key string, fn func(current T, ok bool) T) Entry[T] {
	c.mu.Lock()
	s := c.slotFor(key)
	s.Value = c.clone(fn(c.clone(s.Value), s.HasValue))
	s.HasValue = true
	s.UpdatedAt = c.now()
	s.version++
	stored := c.copyEntry(s.Entry)
	c.mu.Unlock()
	c.notify(key)
	return stored
}

// Delete drops the value for key. Fetches in flight for key are discarded.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	s, ok := c.slots[key]
	if ok {
		s.Entry = Entry[T]{}
		s.version++
	}
	c.mu.Unlock()
	if ok {
		c.notify(key)
	}
}

// Keys returns the keys holding a value, sorted.
func (c *Cache[T]) Keys() []string {
	c.mu.RLock()
	held := lo.PickBy(c.slots, func(_ string, s *slot[T]) bool { return s.HasValue })
	c.mu.RUnlock()

	keys := lo.Keys(held)
	slices.Sort(keys)
	return keys
}

// Subscribe returns a channel receiving the key of every change, and a
// function that cancels the subscription. Notifications are dropped when
// the subscriber falls behind.
func (c *Cache[T]) Subscribe() (<-chan string, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	ch := make(chan string, 16)
	c.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.subs, id)
			c.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

func (c *Cache[T]) notify(key string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, ch := range c.subs {
		select {
		case ch <- key:
		default:
		}
	}
}

func (c *Cache[T]) version(key string) uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if s, ok := c.slots[key]; ok {
		return s.version
	}
	return 0
}

// slotFor returns the slot for key, creating it. Callers hold mu.
func (c *Cache[T]) slotFor(key string) *slot[T] {
	s, ok := c.slots[key]
	if !ok {
		s = &slot[T]{}
		c.slots[key] = s
	}
	return s
}

func (c *Cache[T]) copyEntry(e Entry[T]) Entry[T] {
	e.Value = c.clone(e.Value)
	if e.LastError != nil {
		e.LastError = fmt.Errorf("%w", e.LastError)
	}
	return e
}

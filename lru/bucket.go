package lru

import (
	"sync"
	"time"
)

type bucket[T any] struct {
	sync.RWMutex
	lookup map[string]*Item[T]
}

func newBucket[T any]() *bucket[T] {
	return &bucket[T]{lookup: make(map[string]*Item[T])}
}

func (b *bucket[T]) itemCount() int {
	b.RLock()
	defer b.RUnlock()
	return len(b.lookup)
}

func (b *bucket[T]) get(key string) *Item[T] {
	b.RLock()
	defer b.RUnlock()
	return b.lookup[key]
}

// set stores a new item under key and returns it along with the item it
// replaced, if any.
func (b *bucket[T]) set(key string, value T, duration time.Duration) (*Item[T], *Item[T]) {
	expires := time.Now().Add(duration).UnixNano()
	item := newItem(key, value, expires)
	b.Lock()
	existing := b.lookup[key]
	b.lookup[key] = item
	b.Unlock()
	return item, existing
}

func (b *bucket[T]) delete(key string) *Item[T] {
	b.Lock()
	item := b.lookup[key]
	delete(b.lookup, key)
	b.Unlock()
	return item
}

// evict drops item's key only while it still maps to item, so that a
// concurrent Set of the same key survives the eviction of the old value.
func (b *bucket[T]) evict(item *Item[T]) {
	b.Lock()
	if b.lookup[item.key] == item {
		delete(b.lookup, item.key)
	}
	b.Unlock()
}

func (b *bucket[T]) deleteFunc(matches func(key string, item *Item[T]) bool, deletables chan *Item[T]) int {
	items := make([]*Item[T], 0)

	b.RLock()
	for key, item := range b.lookup {
		if matches(key, item) {
			items = append(items, item)
		}
	}
	b.RUnlock()

	if len(items) == 0 {
		// avoid the write lock if we can
		return 0
	}

	b.Lock()
	for _, item := range items {
		if b.lookup[item.key] == item {
			delete(b.lookup, item.key)
		}
	}
	b.Unlock()

	// the worker takes bucket locks while evicting, so never block on it
	// while holding one
	for _, item := range items {
		deletables <- item
	}
	return len(items)
}

func (b *bucket[T]) forEachFunc(matches func(key string, item *Item[T]) bool) bool {
	b.RLock()
	defer b.RUnlock()
	for key, item := range b.lookup {
		if !matches(key, item) {
			return false
		}
	}
	return true
}

func (b *bucket[T]) clear() {
	b.Lock()
	b.lookup = make(map[string]*Item[T])
	b.Unlock()
}

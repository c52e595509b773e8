// An LRU cache aimed at high concurrency, with its recency list kept in a
// chain.Chain that only the worker goroutine touches.
package lru

import (
	"hash/fnv"
	"strings"
	"time"

	"github.com/iotaledger/hive.go/ierrors"
	"go.uber.org/zap"

	"github.com/karlseguin/chain"
)

type Cache[T any] struct {
	*Configuration[T]
	control
	list        *chain.Chain[*Item[T]]
	size        int64
	buckets     []*bucket[T]
	bucketMask  uint32
	deletables  chan *Item[T]
	promotables chan *Item[T]
}

// Create a new cache with the specified configuration
// See lru.Configure() for creating a configuration
func New[T any](config *Configuration[T]) *Cache[T] {
	c := &Cache[T]{
		list:          chain.New[*Item[T]](),
		Configuration: config,
		control:       newControl(),
		bucketMask:    uint32(config.buckets) - 1,
		buckets:       make([]*bucket[T], config.buckets),
		deletables:    make(chan *Item[T], config.deleteBuffer),
		promotables:   make(chan *Item[T], config.promoteBuffer),
	}
	for i := 0; i < config.buckets; i++ {
		c.buckets[i] = newBucket[T]()
	}
	go c.worker()
	return c
}

func (c *Cache[T]) ItemCount() int {
	count := 0
	for _, b := range c.buckets {
		count += b.itemCount()
	}
	return count
}

func (c *Cache[T]) DeletePrefix(prefix string) int {
	return c.DeleteFunc(func(key string, _ *Item[T]) bool {
		return strings.HasPrefix(key, prefix)
	})
}

// Deletes all items that the matches func evaluates to true.
func (c *Cache[T]) DeleteFunc(matches func(key string, item *Item[T]) bool) int {
	count := 0
	for _, b := range c.buckets {
		count += b.deleteFunc(matches, c.deletables)
	}
	return count
}

// Calls matches for every item until it returns false. Each bucket is read
// locked while it is walked, so matches must not write to the cache.
func (c *Cache[T]) ForEachFunc(matches func(key string, item *Item[T]) bool) {
	for _, b := range c.buckets {
		if !b.forEachFunc(matches) {
			break
		}
	}
}

// Get an item from the cache. Returns nil if the item wasn't found.
// This can return an expired item. Use item.Expired() to see if the item
// is expired and item.TTL() to see how long until the item expires (which
// will be negative for an already expired item).
func (c *Cache[T]) Get(key string) *Item[T] {
	item := c.bucket(key).get(key)
	if item == nil {
		return nil
	}
	if !item.Expired() {
		c.promote(item)
	}
	return item
}

// Set the value in the cache for the specified duration
func (c *Cache[T]) Set(key string, value T, duration time.Duration) {
	c.set(key, value, duration)
}

// Replace the value if it exists, does not set if it doesn't.
// Returns true if the item existed an was replaced, false otherwise.
// Replace does not reset item's TTL
func (c *Cache[T]) Replace(key string, value T) bool {
	item := c.bucket(key).get(key)
	if item == nil {
		return false
	}
	c.Set(key, value, item.TTL())
	return true
}

// Attempts to get the value from the cache and calls fetch on a miss (missing
// or stale item). If fetch returns an error, no value is cached and the error
// is returned back to the caller, wrapped with the key.
func (c *Cache[T]) Fetch(key string, duration time.Duration, fetch func() (T, error)) (*Item[T], error) {
	item := c.Get(key)
	if item != nil && !item.Expired() {
		return item, nil
	}
	value, err := fetch()
	if err != nil {
		return nil, ierrors.Wrapf(err, "failed to fetch %s", key)
	}
	return c.set(key, value, duration), nil
}

// Remove the item from the cache, return true if the item was present, false otherwise.
func (c *Cache[T]) Delete(key string) bool {
	item := c.bucket(key).delete(key)
	if item != nil {
		c.deletables <- item
		return true
	}
	return false
}

func (c *Cache[T]) set(key string, value T, duration time.Duration) *Item[T] {
	item, existing := c.bucket(key).set(key, value, duration)
	if existing != nil {
		c.deletables <- existing
	}
	c.promote(item)
	return item
}

func (c *Cache[T]) bucket(key string) *bucket[T] {
	h := fnv.New32a()
	h.Write([]byte(key))
	return c.buckets[h.Sum32()&c.bucketMask]
}

func (c *Cache[T]) promote(item *Item[T]) {
	select {
	case c.promotables <- item:
	default:
	}
}

func (c *Cache[T]) worker() {
	dropped := 0
	cc := c.control

	promoteItem := func(item *Item[T]) {
		if c.doPromote(item) && c.size > c.maxSize {
			dropped += c.gc()
		}
	}

	for {
		select {
		case item := <-c.promotables:
			promoteItem(item)
		case item := <-c.deletables:
			c.doDelete(item)
		case control := <-cc:
			switch msg := control.(type) {
			case controlStop:
				c.drain()
				c.logger.Debug("cache worker stopped", zap.Int64("size", c.size), zap.Int("items", c.list.Len()))
				close(msg.done)
				return
			case controlGetDropped:
				msg.res <- dropped
				dropped = 0
			case controlSetMaxSize:
				c.maxSize = msg.size
				if c.size > c.maxSize {
					dropped += c.gc()
				}
				msg.done <- struct{}{}
			case controlClear:
				c.clear()
				msg.done <- struct{}{}
			case controlGetSize:
				msg.res <- c.size
			case controlGC:
				dropped += c.gc()
				msg.done <- struct{}{}
			case controlSyncUpdates:
				doAllPendingPromotesAndDeletes(c.promotables, promoteItem, c.deletables, c.doDelete)
				msg.done <- struct{}{}
			}
		}
	}
}

// This method is used to implement SyncUpdates. It simply receives and processes as many
// items as it can receive from the promotables and deletables channels immediately without
// blocking. If some other goroutine sends an item on either channel after this method has
// finished receiving, that's OK, because SyncUpdates only guarantees processing of values
// that were already sent by the same goroutine.
func doAllPendingPromotesAndDeletes[T any](
	promotables <-chan *Item[T],
	promoteFn func(*Item[T]),
	deletables <-chan *Item[T],
	deleteFn func(*Item[T]),
) {
doAllPromotes:
	for {
		select {
		case item := <-promotables:
			promoteFn(item)
		default:
			break doAllPromotes
		}
	}
doAllDeletes:
	for {
		select {
		case item := <-deletables:
			deleteFn(item)
		default:
			break doAllDeletes
		}
	}
}

func (c *Cache[T]) drain() {
	for {
		select {
		case item := <-c.deletables:
			c.doDelete(item)
		default:
			return
		}
	}
}

func (c *Cache[T]) clear() {
	// queued items belong to the buckets being dropped, so they must never
	// reach the list
	doAllPendingPromotesAndDeletes(c.promotables, func(item *Item[T]) {
		item.promotions = -2
	}, c.deletables, c.doDelete)

	// promotions queued later for listed items must not relink them
	for item := range c.list.All() {
		item.promotions = -2
	}
	for _, bucket := range c.buckets {
		bucket.clear()
	}
	c.logger.Debug("cache cleared", zap.Int("items", c.list.Len()))
	c.size = 0
	c.list.Clear()
}

func (c *Cache[T]) doDelete(item *Item[T]) {
	if !c.list.Valid(item.handle) {
		// not promoted yet, or already gone
		item.promotions = -2
		return
	}
	c.list.Remove(item.handle)
	c.size -= item.size
	item.promotions = -2
	if c.onDelete != nil {
		c.onDelete(item)
	}
}

func (c *Cache[T]) doPromote(item *Item[T]) bool {
	//already deleted
	if item.promotions == -2 {
		return false
	}
	if c.list.Valid(item.handle) { //not a new item
		if item.shouldPromote(c.getsPerPromote) {
			c.list.MoveToFront(item.handle)
			item.promotions = 0
		}
		return false
	}

	c.size += item.size
	item.handle = c.list.AddFirst(item)
	return true
}

func (c *Cache[T]) gc() int {
	dropped := 0
	h, ok := c.list.Back()

	itemsToPrune := int64(c.itemsToPrune)
	if min := c.size - c.maxSize; min > itemsToPrune {
		itemsToPrune = min
	}

	for i := int64(0); i < itemsToPrune && ok; i++ {
		prev, hasPrev := c.list.Prev(h)
		item, err := c.list.Remove(h)
		if err != nil {
			c.logger.Warn("recency list handle went stale during gc", zap.Error(err))
			break
		}
		c.bucket(item.key).evict(item)
		c.size -= item.size
		item.promotions = -2
		if c.onDelete != nil {
			c.onDelete(item)
		}
		dropped += 1
		h, ok = prev, hasPrev
	}

	if dropped > 0 {
		c.logger.Debug("pruned least recently used items", zap.Int("dropped", dropped), zap.Int64("size", c.size))
	}
	return dropped
}

package lru

import "go.uber.org/zap"

type Configuration[T any] struct {
	maxSize        int64
	buckets        int
	itemsToPrune   int
	deleteBuffer   int
	promoteBuffer  int
	getsPerPromote int32
	onDelete       func(item *Item[T])
	logger         *zap.Logger
}

// Creates a configuration object with sensible defaults
// Use this as the start of the fluent configuration:
// e.g.: lru.New(lru.Configure[string]().MaxSize(10000))
func Configure[T any]() *Configuration[T] {
	return &Configuration[T]{
		buckets:        16,
		itemsToPrune:   500,
		deleteBuffer:   1024,
		getsPerPromote: 3,
		promoteBuffer:  1024,
		maxSize:        5000,
		logger:         zap.NewNop(),
	}
}

// The max size for the cache
// [5000]
func (c *Configuration[T]) MaxSize(max int64) *Configuration[T] {
	c.maxSize = max
	return c
}

// Keys are hashed into % bucket count to provide greater concurrency (every set
// requires a write lock on the bucket). Must be a power of 2 (1, 2, 4, 8, 16, ...)
// [16]
func (c *Configuration[T]) Buckets(count uint32) *Configuration[T] {
	if count == 0 || count > 16 || count&(count-1) != 0 {
		count = 16
	}
	c.buckets = int(count)
	return c
}

// The number of items to prune when memory is low
// [500]
func (c *Configuration[T]) ItemsToPrune(count uint32) *Configuration[T] {
	c.itemsToPrune = int(count)
	return c
}

// The size of the queue for items which should be promoted. If the queue fills
// up, promotions are skipped
// [1024]
func (c *Configuration[T]) PromoteBuffer(size uint32) *Configuration[T] {
	c.promoteBuffer = int(size)
	return c
}

// The size of the queue for items which should be deleted. If the queue fills
// up, calls to Delete() will block
// [1024]
func (c *Configuration[T]) DeleteBuffer(size uint32) *Configuration[T] {
	c.deleteBuffer = int(size)
	return c
}

// Give a large cache with a high read / write ratio, it's usually unnecessary
// to promote an item on every Get. GetsPerPromote specifies the number of Gets
// a key must have before being promoted
// [3]
func (c *Configuration[T]) GetsPerPromote(count int32) *Configuration[T] {
	c.getsPerPromote = count
	return c
}

// OnDelete allows setting a callback function to react to item deletion.
// It runs on the worker goroutine and must not call back into the cache.
func (c *Configuration[T]) OnDelete(callback func(item *Item[T])) *Configuration[T] {
	c.onDelete = callback
	return c
}

// Logger receives the worker's debug output (pruning, clear, stop)
// [zap.NewNop()]
func (c *Configuration[T]) Logger(logger *zap.Logger) *Configuration[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	c.logger = logger
	return c
}

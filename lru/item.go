package lru

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/karlseguin/chain"
)

// Values implementing Sizer count as Size() towards the cache's max size.
// Everything else counts as 1.
type Sizer interface {
	Size() int64
}

type Item[T any] struct {
	key     string
	value   T
	expires int64
	size    int64

	// owned by the worker goroutine; -2 marks a deleted item
	promotions int32
	handle     chain.Handle[*Item[T]]
}

func newItem[T any](key string, value T, expires int64) *Item[T] {
	size := int64(1)
	if sized, ok := any(value).(Sizer); ok {
		size = sized.Size()
	}
	return &Item[T]{
		key:     key,
		value:   value,
		expires: expires,
		size:    size,
	}
}

func (i *Item[T]) shouldPromote(getsPerPromote int32) bool {
	i.promotions += 1
	return i.promotions == getsPerPromote
}

func (i *Item[T]) Key() string {
	return i.key
}

func (i *Item[T]) Value() T {
	return i.value
}

func (i *Item[T]) Size() int64 {
	return i.size
}

func (i *Item[T]) Expired() bool {
	expires := atomic.LoadInt64(&i.expires)
	return expires < time.Now().UnixNano()
}

func (i *Item[T]) TTL() time.Duration {
	expires := atomic.LoadInt64(&i.expires)
	return time.Nanosecond * time.Duration(expires-time.Now().UnixNano())
}

func (i *Item[T]) Expires() time.Time {
	expires := atomic.LoadInt64(&i.expires)
	return time.Unix(0, expires)
}

func (i *Item[T]) Extend(duration time.Duration) {
	atomic.StoreInt64(&i.expires, time.Now().Add(duration).UnixNano())
}

// String returns a string representation of the Item. This includes the default string
// representation of its Value(), as implemented by fmt.Sprintf with "%v", but the exact
// format of the string should not be relied on; it is provided only for debugging
// purposes, and because otherwise including an Item in a call to fmt.Printf or
// fmt.Sprintf expression could cause fields of the Item to be read in a non-thread-safe
// way.
func (i *Item[T]) String() string {
	return fmt.Sprintf("Item(%v)", i.value)
}

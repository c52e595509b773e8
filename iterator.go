package chain

import "iter"

// Iterator walks a chain once, front to back. Any structural change to the
// chain after the iterator was created (add, remove, move, clear) stops it:
// Next returns false and Err returns ErrConcurrentModification.
type Iterator[T any] struct {
	chain   *Chain[T]
	version uint64
	next    int
	current int
	err     error
}

// Iterate returns an iterator positioned before the first element.
func (c *Chain[T]) Iterate() *Iterator[T] {
	return &Iterator[T]{
		chain:   c,
		version: c.version,
		next:    c.head,
	}
}

func (it *Iterator[T]) Next() bool {
	if it.err != nil {
		return false
	}
	if it.version != it.chain.version {
		it.err = ErrConcurrentModification
		it.current = nilIndex
		return false
	}
	if it.next == nilIndex {
		it.current = nilIndex
		return false
	}
	it.current = it.next
	it.next = it.chain.nodes[it.current].next
	return true
}

// Value returns the element at the current position.
func (it *Iterator[T]) Value() T {
	if !it.positioned() {
		var zero T
		return zero
	}
	return it.chain.nodes[it.current].value
}

// Handle returns the handle of the node at the current position. Using it to
// remove the node ends this iteration.
func (it *Iterator[T]) Handle() Handle[T] {
	if !it.positioned() {
		return Handle[T]{}
	}
	return it.chain.handle(it.current)
}

// positioned reports whether the iterator sits on a live node. A structural
// change since creation stops the iteration, since the slot it points at may
// have been recycled for another element.
func (it *Iterator[T]) positioned() bool {
	if it.current == nilIndex || it.err != nil {
		return false
	}
	if it.version != it.chain.version {
		it.err = ErrConcurrentModification
		it.current = nilIndex
		return false
	}
	return true
}

func (it *Iterator[T]) Err() error {
	return it.err
}

// All returns the elements front to back. Each call to the returned
// sequence starts a fresh Iterator. It panics with ErrConcurrentModification
// if the chain is structurally modified while the sequence is being ranged
// over.
func (c *Chain[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		it := c.Iterate()
		for it.Next() {
			if !yield(it.Value()) {
				return
			}
		}
		if err := it.Err(); err != nil {
			panic(err)
		}
	}
}

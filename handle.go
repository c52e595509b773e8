package chain

// Handle identifies one node of one Chain. Handles are returned by AddFirst,
// AddLast, Front, Back, Next, Prev and Iterator.Handle, and stay valid until
// their node is removed or the chain is cleared. The zero Handle is never
// valid.
type Handle[T any] struct {
	chain *Chain[T]
	index int
	gen   uint64
}

// Valid reports whether h still names a live node of c.
func (c *Chain[T]) Valid(h Handle[T]) bool {
	return h.chain == c &&
		h.gen != 0 &&
		h.index > nilIndex &&
		h.index < len(c.nodes) &&
		c.nodes[h.index].gen == h.gen
}

func (c *Chain[T]) handle(i int) Handle[T] {
	return Handle[T]{chain: c, index: i, gen: c.nodes[i].gen}
}

func (c *Chain[T]) handleAt(i int) (Handle[T], bool) {
	if i == nilIndex {
		return Handle[T]{}, false
	}
	return c.handle(i), true
}

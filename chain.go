// A doubly linked sequence whose nodes are addressed by stale-safe handles
package chain

import (
	"fmt"
	"strings"

	"github.com/iotaledger/hive.go/ierrors"
)

// slot 0 of the arena is never handed out, so the zero index doubles as "no node"
const nilIndex = 0

type node[T any] struct {
	value T
	prev  int
	next  int
	// 0 for a free slot
	gen uint64
}

// Chain is a doubly linked list of T. Nodes live in an arena owned by the
// chain and are linked by index; callers refer to individual nodes through
// Handles.
//
// A Chain is not safe for concurrent use. Callers that share one between
// goroutines must serialize every call, including iteration.
type Chain[T any] struct {
	nodes   []node[T]
	free    []int
	head    int
	tail    int
	count   int
	gen     uint64
	version uint64
	equal   func(a, b T) bool
}

// New creates a chain whose value operations compare elements with ==.
// For pointer and interface element types nil matches nil, which is how an
// absent value is searched for. An interface element type holding
// incomparable dynamic values (slices, maps) makes == panic; use NewFunc.
func New[T comparable]() *Chain[T] {
	return NewFunc(func(a, b T) bool {
		return a == b
	})
}

// NewFunc creates a chain whose value operations call equal(target, element).
func NewFunc[T any](equal func(a, b T) bool) *Chain[T] {
	return &Chain[T]{equal: equal}
}

func (c *Chain[T]) Len() int {
	return c.count
}

func (c *Chain[T]) IsEmpty() bool {
	return c.Len() == 0
}

// Clear removes every element. All outstanding handles and iterators become
// invalid.
func (c *Chain[T]) Clear() {
	clear(c.nodes)
	c.nodes = c.nodes[:0]
	c.free = c.free[:0]
	c.head, c.tail, c.count = nilIndex, nilIndex, 0
	c.version++
}

// Add is an alias for AddLast.
func (c *Chain[T]) Add(value T) Handle[T] {
	return c.AddLast(value)
}

func (c *Chain[T]) AddFirst(value T) Handle[T] {
	i := c.alloc(value)
	c.linkFront(i)
	c.count++
	c.version++
	return c.handle(i)
}

func (c *Chain[T]) AddLast(value T) Handle[T] {
	i := c.alloc(value)
	c.linkBack(i)
	c.count++
	c.version++
	return c.handle(i)
}

func (c *Chain[T]) PeekFirst() (T, error) {
	if c.IsEmpty() {
		var zero T
		return zero, ierrors.Wrap(ErrEmpty, "failed to peek first element")
	}
	return c.nodes[c.head].value, nil
}

func (c *Chain[T]) PeekLast() (T, error) {
	if c.IsEmpty() {
		var zero T
		return zero, ierrors.Wrap(ErrEmpty, "failed to peek last element")
	}
	return c.nodes[c.tail].value, nil
}

func (c *Chain[T]) RemoveFirst() (T, error) {
	if c.IsEmpty() {
		var zero T
		return zero, ierrors.Wrap(ErrEmpty, "failed to remove first element")
	}

	i := c.head
	c.head = c.nodes[i].next
	c.count--
	if c.count == 0 {
		c.tail = nilIndex
	} else {
		c.nodes[c.head].prev = nilIndex
	}
	c.version++
	return c.release(i), nil
}

func (c *Chain[T]) RemoveLast() (T, error) {
	if c.IsEmpty() {
		var zero T
		return zero, ierrors.Wrap(ErrEmpty, "failed to remove last element")
	}

	i := c.tail
	c.tail = c.nodes[i].prev
	c.count--
	if c.count == 0 {
		c.head = nilIndex
	} else {
		c.nodes[c.tail].next = nilIndex
	}
	c.version++
	return c.release(i), nil
}

// Remove removes the node identified by h in O(1) and returns its element.
// The handle is invalid afterwards.
func (c *Chain[T]) Remove(h Handle[T]) (T, error) {
	if !c.Valid(h) {
		var zero T
		return zero, ierrors.Wrap(ErrInvalidHandle, "failed to remove node")
	}
	return c.remove(h.index), nil
}

// RemoveAt removes the element at index, walking from whichever end is
// closer.
func (c *Chain[T]) RemoveAt(index int) (T, error) {
	if index < 0 || index >= c.count {
		var zero T
		return zero, ierrors.Wrapf(ErrIndexOutOfRange, "failed to remove index %d of %d", index, c.count)
	}
	return c.remove(c.at(index)), nil
}

// RemoveValue removes the first element equal to target and reports whether
// one was found.
func (c *Chain[T]) RemoveValue(target T) bool {
	return c.RemoveFunc(c.matcher(target))
}

// RemoveFunc removes the first element for which match returns true.
func (c *Chain[T]) RemoveFunc(match func(value T) bool) bool {
	i, _ := c.find(match)
	if i == nilIndex {
		return false
	}
	c.remove(i)
	return true
}

// IndexOf returns the position of the first element equal to target, or -1.
func (c *Chain[T]) IndexOf(target T) int {
	return c.IndexOfFunc(c.matcher(target))
}

func (c *Chain[T]) IndexOfFunc(match func(value T) bool) int {
	_, position := c.find(match)
	return position
}

func (c *Chain[T]) Contains(target T) bool {
	return c.IndexOf(target) != -1
}

func (c *Chain[T]) Front() (Handle[T], bool) {
	return c.handleAt(c.head)
}

func (c *Chain[T]) Back() (Handle[T], bool) {
	return c.handleAt(c.tail)
}

// Next returns the handle of the node following h. It returns false at the
// end of the chain or when h is not valid.
func (c *Chain[T]) Next(h Handle[T]) (Handle[T], bool) {
	if !c.Valid(h) {
		return Handle[T]{}, false
	}
	return c.handleAt(c.nodes[h.index].next)
}

// Prev returns the handle of the node preceding h. It returns false at the
// start of the chain or when h is not valid.
func (c *Chain[T]) Prev(h Handle[T]) (Handle[T], bool) {
	if !c.Valid(h) {
		return Handle[T]{}, false
	}
	return c.handleAt(c.nodes[h.index].prev)
}

func (c *Chain[T]) Get(h Handle[T]) (T, error) {
	if !c.Valid(h) {
		var zero T
		return zero, ierrors.Wrap(ErrInvalidHandle, "failed to get node")
	}
	return c.nodes[h.index].value, nil
}

// Set replaces the element held by h's node.
func (c *Chain[T]) Set(h Handle[T], value T) error {
	if !c.Valid(h) {
		return ierrors.Wrap(ErrInvalidHandle, "failed to set node")
	}
	c.nodes[h.index].value = value
	return nil
}

// MoveToFront relinks h's node as the first node. h stays valid.
func (c *Chain[T]) MoveToFront(h Handle[T]) error {
	if !c.Valid(h) {
		return ierrors.Wrap(ErrInvalidHandle, "failed to move node to front")
	}
	if h.index == c.head {
		return nil
	}
	c.unlink(h.index)
	c.linkFront(h.index)
	c.version++
	return nil
}

// MoveToBack relinks h's node as the last node. h stays valid.
func (c *Chain[T]) MoveToBack(h Handle[T]) error {
	if !c.Valid(h) {
		return ierrors.Wrap(ErrInvalidHandle, "failed to move node to back")
	}
	if h.index == c.tail {
		return nil
	}
	c.unlink(h.index)
	c.linkBack(h.index)
	c.version++
	return nil
}

func (c *Chain[T]) Values() []T {
	values := make([]T, 0, c.count)
	for i := c.head; i != nilIndex; i = c.nodes[i].next {
		values = append(values, c.nodes[i].value)
	}
	return values
}

// String renders the elements in order as "[ a, b, c ]". An empty chain
// renders as "[  ]".
func (c *Chain[T]) String() string {
	var sb strings.Builder
	sb.WriteString("[ ")
	for i := c.head; i != nilIndex; i = c.nodes[i].next {
		if i != c.head {
			sb.WriteString(", ")
		}
		fmt.Fprint(&sb, c.nodes[i].value)
	}
	sb.WriteString(" ]")
	return sb.String()
}

// remove excises node i. The ends are handed to RemoveFirst/RemoveLast so
// that end bookkeeping lives in one place.
func (c *Chain[T]) remove(i int) T {
	n := c.nodes[i]
	if n.prev == nilIndex {
		value, _ := c.RemoveFirst()
		return value
	}
	if n.next == nilIndex {
		value, _ := c.RemoveLast()
		return value
	}

	c.nodes[n.prev].next = n.next
	c.nodes[n.next].prev = n.prev
	c.count--
	c.version++
	return c.release(i)
}

// at returns the arena index of the node at position index, which must be in
// range.
func (c *Chain[T]) at(index int) int {
	if index < c.count/2 {
		i := c.head
		for ; index > 0; index-- {
			i = c.nodes[i].next
		}
		return i
	}

	i := c.tail
	for position := c.count - 1; position > index; position-- {
		i = c.nodes[i].prev
	}
	return i
}

// find returns the arena index and position of the first matching node, or
// nilIndex and -1.
func (c *Chain[T]) find(match func(value T) bool) (int, int) {
	position := 0
	for i := c.head; i != nilIndex; i = c.nodes[i].next {
		if match(c.nodes[i].value) {
			return i, position
		}
		position++
	}
	return nilIndex, -1
}

func (c *Chain[T]) matcher(target T) func(value T) bool {
	equal := c.equal
	if equal == nil {
		panic("chain: value operations need an equality function, create the chain with New or NewFunc")
	}
	return func(value T) bool {
		return equal(target, value)
	}
}

func (c *Chain[T]) alloc(value T) int {
	c.gen++

	var i int
	if n := len(c.free); n > 0 {
		i = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		if len(c.nodes) == 0 {
			c.nodes = append(c.nodes, node[T]{})
		}
		i = len(c.nodes)
		c.nodes = append(c.nodes, node[T]{})
	}
	c.nodes[i] = node[T]{value: value, gen: c.gen}
	return i
}

// release zeroes node i, dropping its element and links, and recycles the
// slot. It returns the element the node held.
func (c *Chain[T]) release(i int) T {
	value := c.nodes[i].value
	c.nodes[i] = node[T]{}
	c.free = append(c.free, i)
	return value
}

func (c *Chain[T]) linkFront(i int) {
	c.nodes[i].prev = nilIndex
	c.nodes[i].next = c.head
	if c.head == nilIndex {
		c.tail = i
	} else {
		c.nodes[c.head].prev = i
	}
	c.head = i
}

func (c *Chain[T]) linkBack(i int) {
	c.nodes[i].next = nilIndex
	c.nodes[i].prev = c.tail
	if c.tail == nilIndex {
		c.head = i
	} else {
		c.nodes[c.tail].next = i
	}
	c.tail = i
}

func (c *Chain[T]) unlink(i int) {
	n := &c.nodes[i]
	if n.prev == nilIndex {
		c.head = n.next
	} else {
		c.nodes[n.prev].next = n.next
	}
	if n.next == nilIndex {
		c.tail = n.prev
	} else {
		c.nodes[n.next].prev = n.prev
	}
	n.prev, n.next = nilIndex, nilIndex
}

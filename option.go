package chain

import "fmt"

// Option is an element that may be absent. It lets a chain of non-nillable
// values hold, and be searched for, an explicit absent value:
//
//	c := chain.New[chain.Option[int]]()
//	c.Add(chain.Some(0))
//	c.Add(chain.None[int]())
//	c.IndexOf(chain.None[int]()) // 1
type Option[V any] struct {
	value V
	ok    bool
}

func Some[V any](value V) Option[V] {
	return Option[V]{value: value, ok: true}
}

func None[V any]() Option[V] {
	return Option[V]{}
}

func (o Option[V]) Get() (V, bool) {
	return o.value, o.ok
}

func (o Option[V]) IsNone() bool {
	return !o.ok
}

func (o Option[V]) String() string {
	if !o.ok {
		return "none"
	}
	return fmt.Sprint(o.value)
}

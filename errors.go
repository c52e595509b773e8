package chain

import "github.com/iotaledger/hive.go/ierrors"

var (
	// ErrEmpty is returned when peeking at or removing from an empty chain.
	ErrEmpty = ierrors.New("chain is empty")

	// ErrIndexOutOfRange is returned by RemoveAt for an index outside [0, Len()).
	ErrIndexOutOfRange = ierrors.New("index out of range")

	// ErrInvalidHandle is returned for a handle whose node was already removed,
	// or which belongs to a different chain.
	ErrInvalidHandle = ierrors.New("invalid handle")

	// ErrConcurrentModification is reported by an Iterator when the chain was
	// structurally modified after the iterator was created.
	ErrConcurrentModification = ierrors.New("chain modified during iteration")
)

package retriever

import (
	"context"
	"sync"
	"sync/atomic"
)

// Lifecycle is the initialization state of a Shared handle.
type Lifecycle int32

const (
	Uninitialized Lifecycle = iota
	Initializing
	Ready
)

func (l Lifecycle) String() string {
	switch l {
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	default:
		return "uninitialized"
	}
}

// Factory constructs a Retriever.
type Factory func(ctx context.Context) (*Retriever, error)

// Shared lazily constructs one Retriever and hands it to every caller.
// Construction runs at most once at a time; a failed attempt leaves the
// handle Uninitialized so a later Get retries.
type Shared struct {
	factory  Factory
	mu       sync.Mutex
	state    atomic.Int32
	instance atomic.Pointer[Retriever]
}

// NewShared returns an uninitialized handle.
func NewShared(factory Factory) *Shared {
	return &Shared{factory: factory}
}

// Lifecycle returns the current state.
func (s *Shared) Lifecycle() Lifecycle { return Lifecycle(s.state.Load()) }

// Get returns the shared Retriever, constructing it on first use.
func (s *Shared) Get(ctx context.Context) (*Retriever, error) {
	if r := s.instance.Load(); r != nil {
		return r, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r := s.instance.Load(); r != nil {
		return r, nil
	}
	s.state.Store(int32(Initializing))
	r, err := s.factory(ctx)
	if err != nil {
		s.state.Store(int32(Uninitialized))
		return nil, err
	}
	s.instance.Store(r)
	s.state.Store(int32(Ready))
	return r, nil
}

// Close closes the constructed Retriever, if any, and resets the handle.
func (s *Shared) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.instance.Swap(nil)
	s.state.Store(int32(Uninitialized))
	if r == nil {
		return nil
	}
	return r.Close()
}

// Package signal provides typed, synchronous publish/subscribe channels.
//
// Handlers run on the caller's goroutine in connection order. Every
// component of the overview lives on the single UI goroutine, so none of
// the types here are safe for concurrent use.
package signal

import "sync/atomic"

// HandlerID identifies a connected handler. The zero value never refers to
// a live connection.
type HandlerID uint64

var lastID atomic.Uint64

func nextID() HandlerID {
	return HandlerID(lastID.Add(1))
}

type slot[F any] struct {
	id      HandlerID
	fn      F
	removed bool
}

type registry[F any] struct {
	slots []*slot[F]
}

func (r *registry[F]) connect(fn F) HandlerID {
	s := &slot[F]{id: nextID(), fn: fn}
	r.slots = append(r.slots, s)
	return s.id
}

func (r *registry[F]) disconnect(id HandlerID) bool {
	if id == 0 {
		return false
	}
	for i, s := range r.slots {
		if s.id == id {
			s.removed = true
			r.slots = append(r.slots[:i:i], r.slots[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot lets handlers connect or disconnect while an emission is running.
func (r *registry[F]) snapshot() []*slot[F] {
	out := make([]*slot[F], len(r.slots))
	copy(out, r.slots)
	return out
}

// Signal delivers a value of type T to every connected handler.
type Signal[T any] struct {
	reg registry[func(T)]
}

// Connect registers fn and returns its id.
func (s *Signal[T]) Connect(fn func(T)) HandlerID {
	return s.reg.connect(fn)
}

// Disconnect removes the handler. Unknown ids are ignored.
func (s *Signal[T]) Disconnect(id HandlerID) bool {
	return s.reg.disconnect(id)
}

// Emit calls every handler with v. A handler disconnected by an earlier
// handler in the same emission is skipped.
func (s *Signal[T]) Emit(v T) {
	for _, sl := range s.reg.snapshot() {
		if sl.removed {
			continue
		}
		sl.fn(v)
	}
}

// Len reports the number of connected handlers.
func (s *Signal[T]) Len() int {
	return len(s.reg.slots)
}

// Chain delivers a value to handlers in order until one of them returns
// true. It models events that can be consumed.
type Chain[T any] struct {
	reg registry[func(T) bool]
}

// Connect registers fn and returns its id.
func (c *Chain[T]) Connect(fn func(T) bool) HandlerID {
	return c.reg.connect(fn)
}

// Disconnect removes the handler. Unknown ids are ignored.
func (c *Chain[T]) Disconnect(id HandlerID) bool {
	return c.reg.disconnect(id)
}

// Emit runs the handlers and reports whether one of them consumed v.
func (c *Chain[T]) Emit(v T) bool {
	for _, sl := range c.reg.snapshot() {
		if sl.removed {
			continue
		}
		if sl.fn(v) {
			return true
		}
	}
	return false
}

// Len reports the number of connected handlers.
func (c *Chain[T]) Len() int {
	return len(c.reg.slots)
}

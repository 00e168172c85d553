// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package channel

import (
	"iter"

	"go.uber.org/atomic"

	"github.com/tochemey/goflow/errors"
)

// ConcurrentChannel is a lock-free bounded channel.
//
// Any number of goroutines may push concurrently. Pop, Peek and Size assume a
// single consumer goroutine. Every slot carries a sequence number that tells
// whether it is free for the producer at a given position or holds the element
// the consumer expects there.
type ConcurrentChannel[T any] struct {
	slots    []slot[T]
	capacity int64
	// rear is the next position to push to
	rear atomic.Int64
	// front is the next position to pop from
	front atomic.Int64
}

type slot[T any] struct {
	sequence atomic.Int64
	element  T
}

// enforce compilation error
var _ Channel[any] = (*ConcurrentChannel[any])(nil)

// NewConcurrentChannel creates a ConcurrentChannel holding at most capacity elements.
// The capacity must be positive.
func NewConcurrentChannel[T any](capacity int) *ConcurrentChannel[T] {
	if capacity <= 0 {
		panic("channel: concurrent channel capacity must be positive")
	}

	slots := make([]slot[T], capacity)
	for i := range slots {
		slots[i].sequence.Store(int64(i))
	}
	return &ConcurrentChannel[T]{
		slots:    slots,
		capacity: int64(capacity),
	}
}

// Push appends an element or fails with ErrChannelFull
func (c *ConcurrentChannel[T]) Push(element T) error {
	for {
		position := c.rear.Load()
		s := &c.slots[position%c.capacity]
		switch diff := s.sequence.Load() - position; {
		case diff == 0:
			// the slot is free for this position, claim it
			if c.rear.CompareAndSwap(position, position+1) {
				s.element = element
				s.sequence.Store(position + 1)
				return nil
			}
		case diff < 0:
			// the slot still holds the element pushed one lap ago
			return errors.ErrChannelFull
		}
		// another producer claimed the position, retry with a fresh one
	}
}

// Pop removes and returns the front element or fails with ErrChannelEmpty
func (c *ConcurrentChannel[T]) Pop() (T, error) {
	var zero T
	for {
		position := c.front.Load()
		s := &c.slots[position%c.capacity]
		switch diff := s.sequence.Load() - (position + 1); {
		case diff == 0:
			if c.front.CompareAndSwap(position, position+1) {
				element := s.element
				s.element = zero
				s.sequence.Store(position + c.capacity)
				return element, nil
			}
		case diff < 0:
			return zero, errors.ErrChannelEmpty
		}
	}
}

// Peek returns the element at the given offset from the front.
func (c *ConcurrentChannel[T]) Peek(index int) (T, error) {
	var zero T
	if index < 0 || int64(index) >= c.capacity {
		return zero, errors.ErrIndexOutOfBounds
	}
	position := c.front.Load() + int64(index)
	s := &c.slots[position%c.capacity]
	if s.sequence.Load() != position+1 {
		return zero, errors.ErrIndexOutOfBounds
	}
	return s.element, nil
}

// Size returns the number of published elements ready to be popped.
// A claimed position whose element is not yet written ends the count.
func (c *ConcurrentChannel[T]) Size() int {
	front := c.front.Load()
	size := int64(0)
	for size < c.capacity {
		position := front + size
		if c.slots[position%c.capacity].sequence.Load() != position+1 {
			break
		}
		size++
	}
	return int(size)
}

// IsEmpty reports whether no element is ready to be popped
func (c *ConcurrentChannel[T]) IsEmpty() bool {
	return c.Size() == 0
}

// Capacity returns the maximum number of elements
func (c *ConcurrentChannel[T]) Capacity() int {
	return int(c.capacity)
}

// All iterates over the published elements from front to back
func (c *ConcurrentChannel[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range c.Size() {
			element, err := c.Peek(i)
			if err != nil || !yield(element) {
				return
			}
		}
	}
}

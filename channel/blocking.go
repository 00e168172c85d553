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
	"context"
	"iter"
	"sync"

	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/internal/collection"
)

// BlockingChannel is a mutex-guarded channel that can be shared between goroutines.
// Push and Pop never block. PushContext and PopContext wait for room or data
// until the context is done or the channel is closed.
type BlockingChannel[T any] struct {
	mu       sync.Mutex
	ring     *collection.Ring[T]
	capacity int
	closed   bool
	// changed is closed and replaced on every state change to wake waiters
	changed chan struct{}
}

// enforce compilation error
var _ Channel[any] = (*BlockingChannel[any])(nil)

// NewBlockingChannel creates a BlockingChannel. A capacity of zero or less means unbounded.
func NewBlockingChannel[T any](capacity int) *BlockingChannel[T] {
	return &BlockingChannel[T]{
		ring:     collection.NewRing[T](),
		capacity: max(capacity, 0),
		changed:  make(chan struct{}),
	}
}

// Push appends an element without waiting
func (c *BlockingChannel[T]) Push(element T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pushLocked(element)
}

// PushContext appends an element, waiting for room when the channel is full.
func (c *BlockingChannel[T]) PushContext(ctx context.Context, element T) error {
	for {
		c.mu.Lock()
		err := c.pushLocked(element)
		if err != errors.ErrChannelFull {
			c.mu.Unlock()
			return err
		}
		changed := c.changed
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

// Peek returns the element at the given offset from the front
func (c *BlockingChannel[T]) Peek(index int) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= c.ring.Len() {
		var zero T
		return zero, errors.ErrIndexOutOfBounds
	}
	return c.ring.At(index), nil
}

// Pop removes and returns the front element without waiting.
// Buffered elements remain available after Close.
func (c *BlockingChannel[T]) Pop() (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.popLocked()
}

// PopContext removes and returns the front element, waiting for one to arrive.
// It fails with ErrChannelClosed once the channel is closed and empty.
func (c *BlockingChannel[T]) PopContext(ctx context.Context) (T, error) {
	for {
		c.mu.Lock()
		element, err := c.popLocked()
		if err == nil {
			c.mu.Unlock()
			return element, nil
		}
		if c.closed {
			c.mu.Unlock()
			return element, errors.ErrChannelClosed
		}
		changed := c.changed
		c.mu.Unlock()

		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-changed:
		}
	}
}

// Size returns the number of buffered elements
func (c *BlockingChannel[T]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ring.Len()
}

// IsEmpty reports whether the channel holds no element
func (c *BlockingChannel[T]) IsEmpty() bool {
	return c.Size() == 0
}

// All iterates over a snapshot of the buffered elements from front to back
func (c *BlockingChannel[T]) All() iter.Seq[T] {
	c.mu.Lock()
	snapshot := make([]T, c.ring.Len())
	for i := range snapshot {
		snapshot[i] = c.ring.At(i)
	}
	c.mu.Unlock()

	return func(yield func(T) bool) {
		for _, element := range snapshot {
			if !yield(element) {
				return
			}
		}
	}
}

// Close rejects further pushes and wakes every waiter.
// Calling Close more than once has no effect.
func (c *BlockingChannel[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.notifyLocked()
}

// IsClosed reports whether Close was called
func (c *BlockingChannel[T]) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *BlockingChannel[T]) pushLocked(element T) error {
	if c.closed {
		return errors.ErrChannelClosed
	}
	if c.capacity > 0 && c.ring.Len() >= c.capacity {
		return errors.ErrChannelFull
	}
	c.ring.Push(element)
	c.notifyLocked()
	return nil
}

func (c *BlockingChannel[T]) popLocked() (T, error) {
	element, ok := c.ring.Pop()
	if !ok {
		return element, errors.ErrChannelEmpty
	}
	c.notifyLocked()
	return element, nil
}

func (c *BlockingChannel[T]) notifyLocked() {
	close(c.changed)
	c.changed = make(chan struct{})
}

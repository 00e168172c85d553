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

	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/internal/collection"
)

// ArrayChannel is an unbounded channel backed by a resizable ring.
// It is not safe for concurrent use.
type ArrayChannel[T any] struct {
	ring     *collection.Ring[T]
	capacity int
}

// enforce compilation error
var _ Channel[any] = (*ArrayChannel[any])(nil)

// NewArrayChannel creates an unbounded ArrayChannel holding the given initial elements.
func NewArrayChannel[T any](elements ...T) *ArrayChannel[T] {
	ch := &ArrayChannel[T]{ring: collection.NewRing[T]()}
	for _, element := range elements {
		ch.ring.Push(element)
	}
	return ch
}

// NewBoundedChannel creates an ArrayChannel that accepts at most capacity elements.
// A negative capacity is treated as zero.
func NewBoundedChannel[T any](capacity int) *ArrayChannel[T] {
	return &ArrayChannel[T]{
		ring:     collection.NewRing[T](),
		capacity: max(capacity, 0),
	}
}

// NewEmptyChannel creates a channel that can never hold an element.
func NewEmptyChannel[T any]() Channel[T] {
	return &emptyChannel[T]{}
}

// Push appends an element
func (c *ArrayChannel[T]) Push(element T) error {
	if c.capacity > 0 && c.ring.Len() >= c.capacity {
		return errors.ErrChannelFull
	}
	c.ring.Push(element)
	return nil
}

// Peek returns the element at the given offset from the front
func (c *ArrayChannel[T]) Peek(index int) (T, error) {
	if index < 0 || index >= c.ring.Len() {
		var zero T
		return zero, errors.ErrIndexOutOfBounds
	}
	return c.ring.At(index), nil
}

// Pop removes and returns the front element
func (c *ArrayChannel[T]) Pop() (T, error) {
	element, ok := c.ring.Pop()
	if !ok {
		return element, errors.ErrChannelEmpty
	}
	return element, nil
}

// Size returns the number of buffered elements
func (c *ArrayChannel[T]) Size() int {
	return c.ring.Len()
}

// IsEmpty reports whether the channel holds no element
func (c *ArrayChannel[T]) IsEmpty() bool {
	return c.ring.Len() == 0
}

// Capacity returns the maximum number of elements, zero meaning unbounded.
func (c *ArrayChannel[T]) Capacity() int {
	return c.capacity
}

// All iterates over the buffered elements from front to back
func (c *ArrayChannel[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range c.ring.Len() {
			if !yield(c.ring.At(i)) {
				return
			}
		}
	}
}

type emptyChannel[T any] struct{}

func (*emptyChannel[T]) Push(T) error { return errors.ErrChannelFull }

func (*emptyChannel[T]) Peek(int) (T, error) {
	var zero T
	return zero, errors.ErrIndexOutOfBounds
}

func (*emptyChannel[T]) Pop() (T, error) {
	var zero T
	return zero, errors.ErrChannelEmpty
}

func (*emptyChannel[T]) Size() int        { return 0 }
func (*emptyChannel[T]) IsEmpty() bool    { return true }
func (*emptyChannel[T]) All() iter.Seq[T] { return func(func(T) bool) {} }

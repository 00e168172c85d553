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

import "iter"

// DebugChannel wraps an unbounded ArrayChannel and records how it is used
// between two calls to ResetStatistics. It backs the rate checks of debug streams.
type DebugChannel[T any] struct {
	delegate     *ArrayChannel[T]
	pushCount    int
	popCount     int
	maxPeekIndex int
}

// enforce compilation error
var _ Channel[any] = (*DebugChannel[any])(nil)

// NewDebugChannel creates a DebugChannel holding the given initial elements.
func NewDebugChannel[T any](elements ...T) *DebugChannel[T] {
	ch := &DebugChannel[T]{delegate: NewArrayChannel(elements...)}
	ch.ResetStatistics()
	return ch
}

// Push appends an element and counts it
func (c *DebugChannel[T]) Push(element T) error {
	if err := c.delegate.Push(element); err != nil {
		return err
	}
	c.pushCount++
	return nil
}

// Peek returns the element at the given offset and records the furthest
// offset seen relative to the front at the last reset.
func (c *DebugChannel[T]) Peek(index int) (T, error) {
	element, err := c.delegate.Peek(index)
	if err != nil {
		return element, err
	}
	c.maxPeekIndex = max(c.maxPeekIndex, index+c.popCount)
	return element, nil
}

// Pop removes the front element and counts it
func (c *DebugChannel[T]) Pop() (T, error) {
	element, err := c.delegate.Pop()
	if err != nil {
		return element, err
	}
	c.popCount++
	return element, nil
}

// Size returns the number of buffered elements
func (c *DebugChannel[T]) Size() int {
	return c.delegate.Size()
}

// IsEmpty reports whether the channel holds no element
func (c *DebugChannel[T]) IsEmpty() bool {
	return c.delegate.IsEmpty()
}

// All iterates over the buffered elements from front to back
func (c *DebugChannel[T]) All() iter.Seq[T] {
	return c.delegate.All()
}

// PushCount returns the number of pushes since the last reset.
func (c *DebugChannel[T]) PushCount() int {
	return c.pushCount
}

// PopCount returns the number of pops since the last reset.
func (c *DebugChannel[T]) PopCount() int {
	return c.popCount
}

// MaxPeekIndex returns the largest peeked offset since the last reset, relative
// to the front of the channel at that reset, or -1 when nothing was peeked.
func (c *DebugChannel[T]) MaxPeekIndex() int {
	return c.maxPeekIndex
}

// ResetStatistics clears the counters.
func (c *DebugChannel[T]) ResetStatistics() {
	c.pushCount = 0
	c.popCount = 0
	c.maxPeekIndex = -1
}

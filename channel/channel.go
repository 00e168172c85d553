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

// Package channel provides the FIFO buffers that connect actors in a stream graph.
package channel

import "iter"

// Channel is a FIFO of elements flowing from one actor to the next.
//
// Size is the number of elements available to Pop. Peek(i) returns the i-th
// element from the front without removing it, for 0 <= i < Size().
// Implementations never drop or reorder elements.
type Channel[T any] interface {
	// Push appends an element, failing with ErrChannelFull when a bounded channel has no room.
	Push(element T) error
	// Peek returns the element at the given offset from the front.
	Peek(index int) (T, error)
	// Pop removes and returns the front element, failing with ErrChannelEmpty.
	Pop() (T, error)
	// Size returns the number of elements that can be popped.
	Size() int
	// IsEmpty reports whether Size is zero.
	IsEmpty() bool
	// All iterates over the elements from front to back without removing them.
	All() iter.Seq[T]
}

// Drain returns a snapshot of the channel content from front to back.
// The channel is left unchanged.
func Drain[T any](ch Channel[T]) []T {
	out := make([]T, 0, ch.Size())
	for element := range ch.All() {
		out = append(out, element)
	}
	return out
}

// Fill pushes the given elements in order, stopping at the first error.
func Fill[T any](ch Channel[T], elements ...T) error {
	for _, element := range elements {
		if err := ch.Push(element); err != nil {
			return err
		}
	}
	return nil
}

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

package collection

// minRingLen is the smallest capacity that a ring may have.
// Must be power of 2 for bitwise modulus: x % n == x & (n - 1).
const minRingLen = 16

// Ring is an unsynchronized FIFO ring buffer with random access from the front.
// It grows when full and shrinks when a quarter full.
type Ring[T any] struct {
	nodes []T
	head  int
	tail  int
	count int
}

// NewRing creates an empty ring
func NewRing[T any]() *Ring[T] {
	return &Ring[T]{nodes: make([]T, minRingLen)}
}

// Push adds an item to the back of the ring
func (r *Ring[T]) Push(item T) {
	if r.count == len(r.nodes) {
		r.resize(r.count << 1)
	}
	r.nodes[r.tail] = item
	// bitwise modulus
	r.tail = (r.tail + 1) & (len(r.nodes) - 1)
	r.count++
}

// At returns the item at the given distance from the front.
// The index must be in [0, Len()).
func (r *Ring[T]) At(index int) T {
	return r.nodes[(r.head+index)&(len(r.nodes)-1)]
}

// Pop removes the item from the front of the ring
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	item := r.nodes[r.head]
	r.nodes[r.head] = zero
	r.head = (r.head + 1) & (len(r.nodes) - 1)
	r.count--
	// resize down if buffer 1/4 full.
	if len(r.nodes) > minRingLen && (r.count<<2) == len(r.nodes) {
		r.resize(len(r.nodes) >> 1)
	}
	return item, true
}

// Len return the current length of the ring.
func (r *Ring[T]) Len() int {
	return r.count
}

// Cap return the capacity (without allocations)
func (r *Ring[T]) Cap() int {
	return len(r.nodes)
}

func (r *Ring[T]) resize(size int) {
	nodes := make([]T, size)
	if r.tail > r.head {
		copy(nodes, r.nodes[r.head:r.tail])
	} else if r.count > 0 {
		n := copy(nodes, r.nodes[r.head:])
		copy(nodes[n:], r.nodes[:r.tail])
	}
	r.tail = r.count & (size - 1)
	r.head = 0
	r.nodes = nodes
}

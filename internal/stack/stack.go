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

// Package stack provides the explicit work stack used by the pull scheduler.
package stack

import (
	"slices"
	"sync"
)

// Stack is a last-in-first-out data structure that can also answer membership queries.
type Stack[T comparable] struct {
	mutex sync.RWMutex
	items []T
}

// New creates a new stack
func New[T comparable]() *Stack[T] {
	return &Stack[T]{
		items: make([]T, 0),
	}
}

// Peek helps view the top item on the stack
func (s *Stack[T]) Peek() (item T, ok bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if length := len(s.items); length > 0 {
		return s.items[length-1], true
	}
	return item, false
}

// Pop removes and return top element of stack. Return false if stack is empty.
func (s *Stack[T]) Pop() (item T, ok bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	length := len(s.items)
	if length == 0 {
		return item, false
	}
	item = s.items[length-1]
	var zero T
	s.items[length-1] = zero
	s.items = s.items[:length-1]
	return item, true
}

// Push a new value onto the stack
func (s *Stack[T]) Push(item T) {
	s.mutex.Lock()
	s.items = append(s.items, item)
	s.mutex.Unlock()
}

// Contains reports whether the item is anywhere on the stack.
func (s *Stack[T]) Contains(item T) bool {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Contains(s.items, item)
}

// Items returns a copy of the stack content from bottom to top.
func (s *Stack[T]) Items() []T {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return slices.Clone(s.items)
}

// Len returns the length of the stack.
func (s *Stack[T]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.items)
}

// IsEmpty checks if stack is empty
func (s *Stack[T]) IsEmpty() bool {
	return s.Len() == 0
}

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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRing(t *testing.T) {
	t.Run("fifo order", func(t *testing.T) {
		r := NewRing[int]()
		for i := range 5 {
			r.Push(i)
		}
		require.Equal(t, 5, r.Len())
		for i := range 5 {
			assert.Equal(t, i, r.At(i))
		}
		for i := range 5 {
			v, ok := r.Pop()
			require.True(t, ok)
			assert.Equal(t, i, v)
		}
		_, ok := r.Pop()
		assert.False(t, ok)
	})

	t.Run("grows and shrinks", func(t *testing.T) {
		r := NewRing[int]()
		for i := range 100 {
			r.Push(i)
		}
		require.Equal(t, 128, r.Cap())
		require.Equal(t, 42, r.At(42))
		for i := range 90 {
			v, ok := r.Pop()
			require.True(t, ok)
			require.Equal(t, i, v)
		}
		assert.Less(t, r.Cap(), 128)
		assert.Equal(t, 10, r.Len())
		assert.Equal(t, 90, r.At(0))
		assert.Equal(t, 99, r.At(9))
	})

	t.Run("wraps around", func(t *testing.T) {
		r := NewRing[string]()
		for i := range 20 {
			r.Push("x")
			if i%2 == 0 {
				_, _ = r.Pop()
			}
		}
		r.Push("last")
		assert.Equal(t, "last", r.At(r.Len()-1))
	})
}

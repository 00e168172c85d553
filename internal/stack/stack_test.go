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

package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStack(t *testing.T) {
	s := New[string]()
	require.True(t, s.IsEmpty())

	_, ok := s.Pop()
	require.False(t, ok)
	_, ok = s.Peek()
	require.False(t, ok)

	s.Push("sink")
	s.Push("filter")
	s.Push("source")
	require.Equal(t, 3, s.Len())
	require.True(t, s.Contains("filter"))
	require.False(t, s.Contains("joiner"))
	require.Equal(t, []string{"sink", "filter", "source"}, s.Items())

	top, ok := s.Peek()
	require.True(t, ok)
	assert.Equal(t, "source", top)

	top, ok = s.Pop()
	require.True(t, ok)
	assert.Equal(t, "source", top)
	assert.False(t, s.Contains("source"))
	assert.Equal(t, 2, s.Len())

	for range 2 {
		_, ok = s.Pop()
		require.True(t, ok)
	}
	assert.True(t, s.IsEmpty())
	_, ok = s.Pop()
	assert.False(t, ok)
	s.Push("again")
	assert.Equal(t, 1, s.Len())
}

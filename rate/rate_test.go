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

package rate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/goflow/errors"
)

func TestCreate(t *testing.T) {
	r, err := Create(3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Min())
	assert.Equal(t, 3, r.Max())
	assert.Equal(t, 3, r.Avg())
	assert.True(t, r.IsFixed())
	assert.True(t, r.IsStatic())
	assert.False(t, r.IsDynamic())
	assert.Equal(t, "[3, 3, 3]", r.String())

	r, err = Create(Dynamic)
	require.NoError(t, err)
	assert.True(t, r.IsDynamic())
	assert.False(t, r.IsFixed())
	assert.Equal(t, "[*, *, *]", r.String())
	assert.Equal(t, DynamicRate(), r)

	_, err = Create(-2)
	require.ErrorIs(t, err, errors.ErrIllegalRate)
}

func TestRange(t *testing.T) {
	r, err := Range(1, 4)
	require.NoError(t, err)
	assert.Equal(t, "[1, 4, *]", r.String())

	r, err = Range(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Avg())

	r, err = Range(0, Dynamic)
	require.NoError(t, err)
	assert.Equal(t, "[0, *, *]", r.String())

	_, err = Range(4, 1)
	require.ErrorIs(t, err, errors.ErrIllegalRate)
}

func TestNewValidation(t *testing.T) {
	testCases := []struct {
		name     string
		min      int
		max      int
		avg      int
		expected bool
	}{
		{"all known", 1, 3, 2, true},
		{"avg below min", 1, 3, 0, false},
		{"avg above max", 1, 3, 4, false},
		{"equal bounds different avg", 2, 2, 1, false},
		{"negative max", 0, -5, Dynamic, false},
		{"negative avg", 0, 1, -3, false},
		{"dynamic max with avg", 1, Dynamic, 7, true},
		{"dynamic min", Dynamic, 3, Dynamic, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.min, tc.max, tc.avg)
			if tc.expected {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errors.ErrIllegalRate)
		})
	}
}

func TestMust(t *testing.T) {
	assert.Equal(t, Zero(), Fixed(0))
	assert.Equal(t, "[1, 2, *]", MustRange(1, 2).String())
	assert.Panics(t, func() { Fixed(-4) })
	assert.Panics(t, func() { MustRange(3, 1) })
}

func TestUnion(t *testing.T) {
	r, err := MustRange(1, 3).Union(Fixed(2))
	require.NoError(t, err)
	assert.Equal(t, "[1, 3, *]", r.String())

	r, err = Fixed(0).Union(Fixed(2))
	require.NoError(t, err)
	assert.Equal(t, "[0, 2, 2]", r.String())

	r, err = Fixed(2).Union(MustRange(1, Dynamic))
	require.NoError(t, err)
	assert.Equal(t, "[1, *, *]", r.String())

	r, err = DynamicRate().Union(Fixed(4))
	require.NoError(t, err)
	assert.Equal(t, DynamicRate(), r)

	// the summed average falls outside of the merged bounds
	_, err = Fixed(1).Union(Fixed(3))
	require.ErrorIs(t, err, errors.ErrIllegalRate)
	_, err = Fixed(2).Union(Fixed(2))
	require.ErrorIs(t, err, errors.ErrIllegalRate)
}

func TestStaticness(t *testing.T) {
	assert.True(t, MustRange(1, 3).IsStatic())
	assert.False(t, MustRange(1, 3).IsFixed())
	assert.True(t, MustRange(1, Dynamic).IsDynamic())
	assert.True(t, Fixed(0).IsFixed())
}

func TestContains(t *testing.T) {
	r := MustRange(1, 3)
	assert.False(t, r.Contains(0))
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(4))
	assert.True(t, MustRange(1, Dynamic).Contains(1000))
}

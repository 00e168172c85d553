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

package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type named string

func (n named) String() string { return string(n) }

func TestErrors(t *testing.T) {
	err := errors.New("something went wrong")
	internalErr := NewInternalError(err)
	require.Error(t, internalErr)
	require.EqualError(t, internalErr, "internal error: something went wrong")
	assert.ErrorIs(t, internalErr.Unwrap(), err)

	panicErr := NewPanicError(err)
	require.EqualError(t, panicErr, "panic: something went wrong")
	assert.ErrorIs(t, panicErr, err)
}

func TestGraphError(t *testing.T) {
	t.Run("with actors", func(t *testing.T) {
		err := NewGraphError("sink isn't last worker", named("Sink@1"), named("Identity@2"))
		require.ErrorIs(t, err, ErrIllegalStreamGraph)
		require.EqualError(t, err, "illegal stream graph: sink isn't last worker (Sink@1, Identity@2)")
		require.Len(t, err.Actors(), 2)
		require.Equal(t, "sink isn't last worker", err.Reason())
	})
	t.Run("without actors", func(t *testing.T) {
		err := NewGraphError("empty graph")
		require.EqualError(t, err, "illegal stream graph: empty graph")
		var graphErr *GraphError
		require.True(t, errors.As(error(err), &graphErr))
	})
}

func TestErrorConstructors(t *testing.T) {
	require.ErrorIs(t, NewErrIllegalRate("[2, 1, *]"), ErrIllegalRate)
	require.ErrorIs(t, NewErrMissedDelivery(named("r"), 3, 2), ErrMissedDelivery)
	require.ErrorIs(t, NewErrUnboundedRate(named("f"), 0), ErrUnboundedRate)

	err := NewErrRateViolation(named("Adder@3"), "pop", named("[2, 2, 2]"), 1, 0)
	require.ErrorIs(t, err, ErrRateViolation)
	assert.Contains(t, err.Error(), "Adder@3")
	assert.Contains(t, err.Error(), "[2, 2, 2]")
}

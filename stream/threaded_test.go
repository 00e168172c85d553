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

package stream

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/flow"
	"github.com/tochemey/goflow/rate"
)

func TestThreadedStream(t *testing.T) {
	t.Run("drains every element", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		splitjoin, err := flow.NewSplitjoin(flow.RoundrobinSplitter(1), flow.RoundrobinJoiner(1),
			flow.Identity(), flow.Identity(), flow.Identity())
		require.NoError(t, err)
		stream, err := NewThreadedStream[int, int](context.Background(), splitjoin)
		require.NoError(t, err)

		for i := range 9 {
			accepted, err := stream.Offer(i)
			require.NoError(t, err)
			require.True(t, accepted)
		}
		require.NoError(t, stream.Drain())

		fullyDrained, err := stream.AwaitDrainingTimeout(5 * time.Second)
		require.NoError(t, err)
		assert.True(t, fullyDrained)
		assert.True(t, stream.IsDrained())

		var out []int
		ctx := context.Background()
		for {
			value, err := stream.PollContext(ctx)
			if err != nil {
				require.ErrorIs(t, err, errors.ErrChannelClosed)
				break
			}
			out = append(out, value)
		}
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8}, out)

		accepted, err := stream.Offer(9)
		require.NoError(t, err)
		assert.False(t, accepted)
		require.NoError(t, stream.Stop())
	})

	t.Run("every waiter is released once drained", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		pipeline, err := flow.NewPipeline(flow.Identity(), flow.Identity())
		require.NoError(t, err)
		stream, err := NewThreadedStream[int, int](context.Background(), pipeline)
		require.NoError(t, err)

		const waiters = 8
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var (
			wg      sync.WaitGroup
			started sync.WaitGroup
		)
		results := make([]bool, waiters)
		errs := make([]error, waiters)
		for i := range waiters {
			wg.Add(1)
			started.Add(1)
			go func() {
				defer wg.Done()
				started.Done()
				results[i], errs[i] = stream.AwaitDraining(ctx)
			}()
		}
		started.Wait()

		for i := range 10 {
			accepted, err := stream.Offer(i)
			require.NoError(t, err)
			require.True(t, accepted)
		}
		require.NoError(t, stream.Drain())
		wg.Wait()

		for i := range waiters {
			require.NoError(t, errs[i])
			assert.True(t, results[i])
		}
		assert.Len(t, pollAll[int, int](stream), 10)
		require.NoError(t, stream.Stop())
	})

	t.Run("concurrent producers", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		pipeline, err := flow.NewPipeline(flow.Identity(), flow.Identity())
		require.NoError(t, err)
		stream, err := NewThreadedStream[int, int](context.Background(), pipeline, WithInputCapacity(16))
		require.NoError(t, err)

		const producers, perProducer = 4, 100
		var wg sync.WaitGroup
		for range producers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := 0; i < perProducer; {
					accepted, err := stream.Offer(1)
					if err != nil {
						return
					}
					if accepted {
						i++
						continue
					}
					time.Sleep(time.Millisecond)
				}
			}()
		}

		total := 0
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		for total < producers*perProducer {
			value, err := stream.PollContext(ctx)
			require.NoError(t, err)
			total += value
		}
		wg.Wait()

		require.NoError(t, stream.Drain())
		fullyDrained, err := stream.AwaitDraining(ctx)
		require.NoError(t, err)
		assert.True(t, fullyDrained)
		require.NoError(t, stream.Stop())
	})

	t.Run("unpaired element is left behind", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		pipeline, err := flow.NewPipeline(adder())
		require.NoError(t, err)
		stream, err := NewThreadedStream[int, int](context.Background(), pipeline)
		require.NoError(t, err)

		for i := 1; i <= 3; i++ {
			accepted, err := stream.Offer(i)
			require.NoError(t, err)
			require.True(t, accepted)
		}
		require.NoError(t, stream.Drain())
		require.ErrorIs(t, stream.Drain(), errors.ErrDrainAlreadyRequested)

		fullyDrained, err := stream.AwaitDrainingTimeout(5 * time.Second)
		require.NoError(t, err)
		assert.False(t, fullyDrained)
		assert.Equal(t, []int{3}, pollAll[int, int](stream))
		require.NoError(t, stream.Stop())
	})

	t.Run("work failure stops the stream", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		boom := stderrors.New("boom")
		failing := flow.NewFilter("Failing", rate.Fixed(1), rate.Fixed(1), rate.Zero(), func(flow.Input, flow.Output) error {
			return boom
		})
		pipeline, err := flow.NewPipeline(failing)
		require.NoError(t, err)
		stream, err := NewThreadedStream[int, int](context.Background(), pipeline)
		require.NoError(t, err)

		accepted, err := stream.Offer(1)
		require.NoError(t, err)
		require.True(t, accepted)

		fullyDrained, err := stream.AwaitDrainingTimeout(5 * time.Second)
		require.ErrorIs(t, err, boom)
		assert.False(t, fullyDrained)

		accepted, err = stream.Offer(2)
		require.ErrorIs(t, err, boom)
		assert.False(t, accepted)
		require.ErrorIs(t, stream.Drain(), boom)
		require.ErrorIs(t, stream.Stop(), boom)
	})

	t.Run("cancelled context stops the stream", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		ctx, cancel := context.WithCancel(context.Background())
		pipeline, err := flow.NewPipeline(flow.Identity())
		require.NoError(t, err)
		stream, err := NewThreadedStream[int, int](ctx, pipeline)
		require.NoError(t, err)
		cancel()

		fullyDrained, err := stream.AwaitDraining(context.Background())
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, fullyDrained)

		accepted, err := stream.Offer(1)
		require.ErrorIs(t, err, context.Canceled)
		assert.False(t, accepted)
		require.NoError(t, stream.Stop())
	})

	t.Run("stop before draining", func(t *testing.T) {
		defer goleak.VerifyNone(t)

		pipeline, err := flow.NewPipeline(flow.Identity())
		require.NoError(t, err)
		stream, err := NewThreadedStream[int, int](context.Background(), pipeline, WithInputCapacity(-1))
		require.NoError(t, err)
		assert.Equal(t, defaultInputCapacity, stream.head.Capacity())

		require.NoError(t, stream.Stop())
		_, err = stream.AwaitDrainingTimeout(time.Second)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("malformed graph", func(t *testing.T) {
		_, err := NewThreadedStream[int, int](context.Background(), new(flow.Pipeline))
		require.ErrorIs(t, err, errors.ErrIllegalStreamGraph)
	})
}

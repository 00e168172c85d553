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
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tochemey/goflow/channel"
	"github.com/tochemey/goflow/flow"
	"github.com/tochemey/goflow/log"
)

// ThreadedStream runs a stream graph on a dedicated goroutine.
//
// Offer and Poll may be called from any goroutine. The interpreter goroutine
// wakes up on every accepted element and on Drain, and stops once draining
// completed, the graph failed or the context given at creation is done.
type ThreadedStream[I, O any] struct {
	compiled *compiled
	head     *channel.ConcurrentChannel[any]
	tail     *channel.BlockingChannel[any]
	latch    *latch
	logger   log.Logger

	wake   chan struct{}
	group  *errgroup.Group
	cancel context.CancelFunc
}

// enforce compilation error
var _ CompiledStream[int, int] = (*ThreadedStream[int, int])(nil)

// NewThreadedStream connects the given stream graph and starts the goroutine
// running it. Cancelling ctx stops the stream.
func NewThreadedStream[I, O any](ctx context.Context, root flow.Element, opts ...Option) (*ThreadedStream[I, O], error) {
	cfg := newConfig(defaultInputCapacity, opts...)
	if cfg.inputCapacity <= 0 {
		cfg.inputCapacity = defaultInputCapacity
	}

	head := channel.NewConcurrentChannel[any](cfg.inputCapacity)
	tail := channel.NewBlockingChannel[any](0)

	compiled, err := compile(root, cfg.channels(head, tail, flow.ArrayChannelFactory), flow.NewInterpreter, cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	group, ctx := errgroup.WithContext(ctx)
	stream := &ThreadedStream[I, O]{
		compiled: compiled,
		head:     head,
		tail:     tail,
		latch:    newLatch(),
		logger:   cfg.logger,
		wake:     make(chan struct{}, 1),
		group:    group,
		cancel:   cancel,
	}

	group.Go(func() error {
		return stream.run(ctx)
	})
	return stream, nil
}

// Offer accepts the element unless the stream is draining, stopped or its
// input is full. It returns the error that stopped the stream, if any.
func (s *ThreadedStream[I, O]) Offer(element I) (bool, error) {
	ctx := context.Background()
	if !s.latch.accepting() {
		s.compiled.metrics.RecordOffer(ctx, false)
		return false, s.latch.failure()
	}

	if err := s.head.Push(element); err != nil {
		s.compiled.metrics.RecordOffer(ctx, false)
		return false, nil
	}
	s.compiled.metrics.RecordOffer(ctx, true)
	s.notify()
	return true, nil
}

// Poll returns the next output element without waiting
func (s *ThreadedStream[I, O]) Poll() (O, bool) {
	return poll[O](s.tail, s.compiled.metrics, s.logger)
}

// PollContext waits for the next output element. It fails with
// ErrChannelClosed once the stream stopped and every output was read.
func (s *ThreadedStream[I, O]) PollContext(ctx context.Context) (O, error) {
	var zero O
	for {
		element, err := s.tail.PopContext(ctx)
		if err != nil {
			return zero, err
		}
		s.compiled.metrics.RecordPoll(ctx)

		value, ok := element.(O)
		if !ok {
			s.logger.Errorf("dropping output element of type %T, want %T", element, zero)
			continue
		}
		return value, nil
	}
}

// Drain stops accepting input. The interpreter goroutine fires whatever the
// buffered elements allow, then completes draining and stops.
func (s *ThreadedStream[I, O]) Drain() error {
	if err := s.latch.request(); err != nil {
		if failure := s.latch.failure(); failure != nil {
			return failure
		}
		return err
	}
	s.logger.Debug("threaded stream draining")

	err := s.compiled.interpreter.Drain(func() {
		fullyDrained := flow.IsFullyDrained(s.compiled.graph)
		s.logger.Debugf("threaded stream drained (fully drained: %t)", fullyDrained)
		s.latch.release(fullyDrained, nil)
	})
	if err != nil {
		return err
	}
	s.notify()
	return nil
}

// IsDrained reports whether draining completed
func (s *ThreadedStream[I, O]) IsDrained() bool {
	return s.latch.isDrained()
}

// AwaitDraining waits for draining to complete and reports whether every
// element left the graph. It returns the error that stopped the stream, if any.
func (s *ThreadedStream[I, O]) AwaitDraining(ctx context.Context) (bool, error) {
	return s.latch.await(ctx)
}

// AwaitDrainingTimeout is AwaitDraining bounded by a timeout
func (s *ThreadedStream[I, O]) AwaitDrainingTimeout(timeout time.Duration) (bool, error) {
	return s.latch.awaitTimeout(timeout)
}

// Stop cancels the stream and waits for the interpreter goroutine to return.
// Stopping a drained stream returns nil.
func (s *ThreadedStream[I, O]) Stop() error {
	s.cancel()
	err := s.group.Wait()
	if stderrors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *ThreadedStream[I, O]) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *ThreadedStream[I, O]) run(ctx context.Context) error {
	defer s.tail.Close()
	for {
		select {
		case <-ctx.Done():
			s.latch.release(false, ctx.Err())
			return ctx.Err()
		case <-s.wake:
		}

		if _, err := s.compiled.interpreter.Run(); err != nil {
			s.logger.Errorf("threaded stream stopped: %v", err)
			s.latch.release(false, err)
			return err
		}

		if s.compiled.interpreter.IsDrained() {
			return nil
		}
	}
}

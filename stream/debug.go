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
	"sync"
	"time"

	"github.com/tochemey/goflow/channel"
	"github.com/tochemey/goflow/flow"
	"github.com/tochemey/goflow/log"
)

// DebugStream runs a stream graph on the goroutine calling it, checking the
// declared rates of every actor after each firing.
//
// Offer interprets the graph right after accepting an element, so the output
// is available to Poll as soon as Offer returns. All calls are serialized.
type DebugStream[I, O any] struct {
	mu       sync.Mutex
	compiled *compiled
	head     *channel.DebugChannel[any]
	tail     *channel.DebugChannel[any]
	capacity int
	latch    *latch
	logger   log.Logger
}

// enforce compilation error
var _ CompiledStream[int, int] = (*DebugStream[int, int])(nil)

// NewDebugStream connects the given stream graph and returns a DebugStream
// running it. The graph elements cannot be reused afterwards.
func NewDebugStream[I, O any](root flow.Element, opts ...Option) (*DebugStream[I, O], error) {
	cfg := newConfig(0, opts...)
	head := channel.NewDebugChannel[any]()
	tail := channel.NewDebugChannel[any]()

	compiled, err := compile(root, cfg.channels(head, tail, flow.DebugChannelFactory), flow.NewDebugInterpreter, cfg)
	if err != nil {
		return nil, err
	}

	return &DebugStream[I, O]{
		compiled: compiled,
		head:     head,
		tail:     tail,
		capacity: cfg.inputCapacity,
		latch:    newLatch(),
		logger:   cfg.logger,
	}, nil
}

// Offer accepts the element unless the stream is draining or its input is
// full, then fires as many actors as possible. An error means the graph
// cannot run: the element was accepted but the firing failed.
func (s *DebugStream[I, O]) Offer(element I) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx := context.Background()
	if !s.latch.accepting() || (s.capacity > 0 && s.head.Size() >= s.capacity) {
		s.compiled.metrics.RecordOffer(ctx, false)
		return false, nil
	}

	if err := s.head.Push(element); err != nil {
		s.compiled.metrics.RecordOffer(ctx, false)
		return false, nil
	}
	s.compiled.metrics.RecordOffer(ctx, true)

	if _, err := s.compiled.interpreter.Interpret(); err != nil {
		return true, err
	}
	return true, nil
}

// Poll returns the next output element
func (s *DebugStream[I, O]) Poll() (O, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return poll[O](s.tail, s.compiled.metrics, s.logger)
}

// Drain stops accepting input, fires whatever the buffered elements allow and
// completes draining right away.
func (s *DebugStream[I, O]) Drain() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.latch.request(); err != nil {
		return err
	}
	s.logger.Debug("debug stream draining")

	err := s.compiled.interpreter.Drain(func() {
		fullyDrained := flow.IsFullyDrained(s.compiled.graph)
		s.logger.Debugf("debug stream drained (fully drained: %t)", fullyDrained)
		s.latch.release(fullyDrained, nil)
	})
	if err != nil {
		s.latch.release(false, err)
		return err
	}

	if _, err := s.compiled.interpreter.Run(); err != nil {
		s.logger.Errorf("debug stream failed while draining: %v", err)
		s.latch.release(false, err)
		return err
	}
	return nil
}

// IsDrained reports whether draining completed
func (s *DebugStream[I, O]) IsDrained() bool {
	return s.latch.isDrained()
}

// AwaitDraining waits for draining to complete and reports whether every
// element left the graph
func (s *DebugStream[I, O]) AwaitDraining(ctx context.Context) (bool, error) {
	return s.latch.await(ctx)
}

// AwaitDrainingTimeout is AwaitDraining bounded by a timeout
func (s *DebugStream[I, O]) AwaitDrainingTimeout(timeout time.Duration) (bool, error) {
	return s.latch.awaitTimeout(timeout)
}

// DrainData returns the elements left inside the graph and the messages
// still pending. The channels are left unchanged.
func (s *DebugStream[I, O]) DrainData() *flow.DrainData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.compiled.interpreter.DrainData()
}

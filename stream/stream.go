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

	"go.uber.org/atomic"

	"github.com/tochemey/goflow/channel"
	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/flow"
	"github.com/tochemey/goflow/log"
	"github.com/tochemey/goflow/telemetry"
)

// CompiledStream is a running stream graph fed through Offer and read through Poll
type CompiledStream[I, O any] interface {
	// Offer hands an element to the stream without blocking. It returns false
	// when the input is full or the stream is draining.
	Offer(element I) (bool, error)
	// Poll returns the next output element without blocking
	Poll() (O, bool)
	// Drain stops accepting input and lets the buffered elements flow out.
	// It fails with ErrDrainAlreadyRequested when called twice.
	Drain() error
	// IsDrained reports whether draining completed
	IsDrained() bool
	// AwaitDraining waits for draining to complete and reports whether every
	// element left the graph
	AwaitDraining(ctx context.Context) (bool, error)
	// AwaitDrainingTimeout is AwaitDraining bounded by a timeout.
	// It fails with ErrDrainTimeout when the timeout elapses first.
	AwaitDrainingTimeout(timeout time.Duration) (bool, error)
}

const (
	notDraining int32 = iota
	draining
	drained
)

// latch tracks the drain state and releases every waiter once draining completes
type latch struct {
	state        *atomic.Int32
	fullyDrained *atomic.Bool
	err          *atomic.Error
	done         chan struct{}
	once         sync.Once
}

func newLatch() *latch {
	return &latch{
		state:        atomic.NewInt32(notDraining),
		fullyDrained: atomic.NewBool(false),
		err:          atomic.NewError(nil),
		done:         make(chan struct{}),
	}
}

// accepting reports whether input is still accepted
func (l *latch) accepting() bool {
	return l.state.Load() == notDraining
}

// request moves the latch from not draining to draining
func (l *latch) request() error {
	if !l.state.CompareAndSwap(notDraining, draining) {
		return errors.ErrDrainAlreadyRequested
	}
	return nil
}

// release completes draining. Only the first call counts.
func (l *latch) release(fullyDrained bool, err error) {
	l.once.Do(func() {
		l.fullyDrained.Store(fullyDrained)
		l.err.Store(err)
		l.state.Store(drained)
		close(l.done)
	})
}

func (l *latch) isDrained() bool {
	return l.state.Load() == drained
}

func (l *latch) failure() error {
	return l.err.Load()
}

func (l *latch) await(ctx context.Context) (bool, error) {
	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case <-l.done:
		return l.fullyDrained.Load(), l.err.Load()
	}
}

func (l *latch) awaitTimeout(timeout time.Duration) (bool, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-timer.C:
		return false, errors.ErrDrainTimeout
	case <-l.done:
		return l.fullyDrained.Load(), l.err.Load()
	}
}

// compiled is the connected graph and its interpreter
type compiled struct {
	graph       *flow.Graph
	interpreter *flow.Interpreter
	metrics     *telemetry.Metrics
}

type interpreterFactory func([]flow.Actor, []*flow.MessageConstraint, ...flow.InterpreterOption) (*flow.Interpreter, error)

// compile connects the graph, derives its message constraints and creates the
// interpreter running every actor of the graph
func compile(root flow.Element, factory flow.ChannelFactory, newInterpreter interpreterFactory, cfg *config) (*compiled, error) {
	graph, err := flow.Connect(root, factory)
	if err != nil {
		return nil, err
	}

	constraints, err := flow.FindConstraints(graph)
	if err != nil {
		return nil, err
	}

	metrics := telemetry.New(telemetry.WithMeterProvider(cfg.meterProvider)).Metrics()
	interpreter, err := newInterpreter(graph.Actors(), constraints,
		flow.WithInterpreterLogger(cfg.logger),
		flow.WithInterpreterMetrics(metrics))
	if err != nil {
		return nil, err
	}

	return &compiled{
		graph:       graph,
		interpreter: interpreter,
		metrics:     metrics,
	}, nil
}

// poll pops the next output element. An element of the wrong type is
// dropped and logged.
func poll[O any](tail channel.Channel[any], metrics *telemetry.Metrics, logger log.Logger) (O, bool) {
	var zero O
	for {
		element, err := tail.Pop()
		if err != nil {
			return zero, false
		}
		metrics.RecordPoll(context.Background())

		value, ok := element.(O)
		if !ok {
			logger.Errorf("dropping output element of type %T, want %T", element, zero)
			continue
		}
		return value, true
	}
}

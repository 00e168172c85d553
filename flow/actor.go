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

package flow

import (
	"fmt"

	gods "github.com/Workiva/go-datastructures/queue"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/tochemey/goflow/channel"
	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/rate"
)

// Kind identifies the shape of an actor
type Kind int

const (
	// KindFilter is an actor with one input and one output
	KindFilter Kind = iota
	// KindSplitter is an actor with one input and many outputs
	KindSplitter
	// KindJoiner is an actor with many inputs and one output
	KindJoiner
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindFilter:
		return "filter"
	case KindSplitter:
		return "splitter"
	case KindJoiner:
		return "joiner"
	default:
		return "unknown"
	}
}

// AnyCount lets a splitter or joiner accept any number of branches.
const AnyCount = -1

// Input is the read side of a channel as seen by a work function
type Input interface {
	// Peek returns the element at the given offset from the front
	Peek(index int) (any, error)
	// Pop removes and returns the front element
	Pop() (any, error)
	// Size returns the number of available elements
	Size() int
}

// Output is the write side of a channel as seen by a work function
type Output interface {
	// Push appends an element
	Push(element any) error
}

// Actor is a schedulable node of a stream graph.
//
// Actors are created with NewFilter, NewSplitter and NewJoiner. A type that
// embeds one of them is an Actor too, which is how portal recipients carry
// their own state and message handlers.
type Actor interface {
	fmt.Stringer
	// ID returns the identifier assigned at construction
	ID() uuid.UUID
	// Name returns the name given at construction
	Name() string
	// Kind returns the shape of the actor
	Kind() Kind
	// PeekRates returns one peek rate per input channel
	PeekRates() []rate.Rate
	// PopRates returns one pop rate per input channel
	PopRates() []rate.Rate
	// PushRates returns one push rate per output channel
	PushRates() []rate.Rate
	// Executions returns the number of completed firings
	Executions() int64
	// Predecessors returns the upstream actors, one per input channel.
	// The entry is nil for an input fed from outside the graph.
	Predecessors() []Actor
	// Successors returns the downstream actors, one per output channel.
	// The entry is nil for an output leaving the graph.
	Successors() []Actor
	// InputChannels returns the input channels in declaration order
	InputChannels() []channel.Channel[any]
	// OutputChannels returns the output channels in declaration order
	OutputChannels() []channel.Channel[any]
	// PendingMessages returns the number of messages waiting for delivery
	PendingMessages() int

	core() *state
	run() error
}

// state is the scheduler-facing state shared by every actor kind.
// Only the graph connection and the interpreter mutate it.
type state struct {
	self Actor
	id   uuid.UUID
	name string
	kind Kind

	peekRates []rate.Rate
	popRates  []rate.Rate
	pushRates []rate.Rate

	inputs       []channel.Channel[any]
	outputs      []channel.Channel[any]
	predecessors []Actor
	successors   []Actor

	executions *atomic.Int64
	pending    *gods.PriorityQueue
	sequence   uint64
	portals    []declaredPortal
	used       bool
}

func newState(name string, kind Kind, options []Option) *state {
	c := &state{
		id:         uuid.New(),
		name:       name,
		kind:       kind,
		executions: atomic.NewInt64(0),
		pending:    gods.NewPriorityQueue(4, true),
	}
	for _, opt := range options {
		opt.Apply(c)
	}
	return c
}

// ID returns the identifier assigned at construction
func (c *state) ID() uuid.UUID {
	return c.id
}

// Name returns the name given at construction
func (c *state) Name() string {
	return c.name
}

// Kind returns the shape of the actor
func (c *state) Kind() Kind {
	return c.kind
}

// PeekRates returns one peek rate per input channel
func (c *state) PeekRates() []rate.Rate {
	return c.peekRates
}

// PopRates returns one pop rate per input channel
func (c *state) PopRates() []rate.Rate {
	return c.popRates
}

// PushRates returns one push rate per output channel
func (c *state) PushRates() []rate.Rate {
	return c.pushRates
}

// Executions returns the number of completed firings
func (c *state) Executions() int64 {
	return c.executions.Load()
}

// Predecessors returns the upstream actors
func (c *state) Predecessors() []Actor {
	return c.predecessors
}

// Successors returns the downstream actors
func (c *state) Successors() []Actor {
	return c.successors
}

// InputChannels returns the input channels
func (c *state) InputChannels() []channel.Channel[any] {
	return c.inputs
}

// OutputChannels returns the output channels
func (c *state) OutputChannels() []channel.Channel[any] {
	return c.outputs
}

// PendingMessages returns the number of messages waiting for delivery
func (c *state) PendingMessages() int {
	return c.pending.Len()
}

// String returns the actor name followed by a short form of its identifier
func (c *state) String() string {
	return fmt.Sprintf("%s@%s", c.name, c.id.String()[:8])
}

func (c *state) core() *state {
	return c
}

// enqueue schedules a message for delivery. The delivery time must be
// strictly after the firings already completed.
func (c *state) enqueue(message *Message) error {
	executions := c.executions.Load()
	if message.deliveryTime <= executions {
		return errors.NewErrMissedDelivery(c, executions, message.deliveryTime)
	}
	c.sequence++
	message.sequence = c.sequence
	return c.pending.Put(message)
}

// deliver runs the handlers of the messages due at the next firing in
// delivery-time order. A message due earlier was missed.
func (c *state) deliver() error {
	next := c.executions.Load() + 1
	for !c.pending.Empty() {
		head, ok := c.pending.Peek().(*Message)
		if !ok || head.deliveryTime > next {
			return nil
		}

		items, err := c.pending.Get(1)
		if err != nil {
			return err
		}

		message := items[0].(*Message)
		if message.deliveryTime < next {
			return errors.NewErrMissedDelivery(c, next-1, message.deliveryTime)
		}

		message.handler()
	}
	return nil
}

// fire brackets a work invocation with message delivery and the firing
// counter. A panic in a handler or in the work function is returned as a
// PanicError and the counter is left unchanged.
func (c *state) fire(work func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case error:
				err = errors.NewPanicError(fmt.Errorf("%s: %w", c, v))
			default:
				err = errors.NewPanicError(fmt.Errorf("%s: %v", c, v))
			}
		}
	}()

	if err := c.deliver(); err != nil {
		return err
	}

	if err := work(); err != nil {
		return fmt.Errorf("%s: %w", c, err)
	}
	c.executions.Inc()
	return nil
}

// claim marks the actor as part of a composite
func (c *state) claim() error {
	if c.used {
		return fmt.Errorf("%s: %w", c, errors.ErrElementInUse)
	}
	c.used = true
	return nil
}

// release undoes claim
func (c *state) release() {
	c.used = false
}

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
	"context"
	stderrors "errors"
	"fmt"

	goset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/tochemey/goflow/channel"
	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/internal/stack"
	"github.com/tochemey/goflow/log"
	"github.com/tochemey/goflow/rate"
	"github.com/tochemey/goflow/telemetry"
)

// AfterFireFunc is called right after an actor completed a firing
type AfterFireFunc func(actor Actor) error

// Interpreter fires the actors of a working set on the calling goroutine.
//
// Firing is pull based: to fire an actor, the interpreter first fires the
// actors it depends on for data, then the senders of messages due at its
// next firing. Nothing ever blocks. An Interpreter is not safe for
// concurrent use, except Drain which may be called from any goroutine.
type Interpreter struct {
	workers     []Actor
	members     goset.Set[*state]
	sinks       []Actor
	constraints map[*state][]*MessageConstraint

	afterFire []AfterFireFunc
	logger    log.Logger
	metrics   *telemetry.Metrics

	drainCallback *atomic.Pointer[func()]
	drained       *atomic.Bool
}

// NewInterpreter creates an Interpreter for the given working set.
// Constraints between two actors outside of the set are ignored; a constraint
// with only one end inside the set is rejected.
func NewInterpreter(workers []Actor, constraints []*MessageConstraint, opts ...InterpreterOption) (*Interpreter, error) {
	interpreter := &Interpreter{
		members:       goset.NewThreadUnsafeSet[*state](),
		constraints:   make(map[*state][]*MessageConstraint),
		logger:        log.DiscardLogger,
		drainCallback: atomic.NewPointer[func()](nil),
		drained:       atomic.NewBool(false),
	}

	for _, worker := range workers {
		if interpreter.members.Add(worker.core()) {
			interpreter.workers = append(interpreter.workers, worker)
		}
	}
	if len(interpreter.workers) == 0 {
		return nil, errors.NewGraphError("empty working set")
	}

	for _, constraint := range constraints {
		sender := interpreter.members.Contains(constraint.sender.core())
		recipient := interpreter.members.Contains(constraint.recipient.core())
		switch {
		case sender && recipient:
			key := constraint.recipient.core()
			interpreter.constraints[key] = append(interpreter.constraints[key], constraint)
		case sender || recipient:
			return nil, errors.NewGraphError("message constraint crosses the working set boundary",
				constraint.sender, constraint.recipient)
		}
	}

	interpreter.sinks = Bottommost(interpreter.workers)

	for _, opt := range opts {
		opt.Apply(interpreter)
	}
	return interpreter, nil
}

// Workers returns the working set in insertion order
func (i *Interpreter) Workers() []Actor {
	return i.workers
}

// Sinks returns the actors of the working set without successor inside it
func (i *Interpreter) Sinks() []Actor {
	return i.sinks
}

// Interpret fires the sinks as many times as possible. Passes over the sinks
// are repeated until one pass fires nothing. It returns whether anything fired.
func (i *Interpreter) Interpret() (bool, error) {
	everFired := false
	for fired := true; fired; {
		fired = false
		for _, sink := range i.sinks {
			ok, err := i.Pull(sink)
			if err != nil {
				return everFired, err
			}
			if ok {
				fired = true
				everFired = true
			}
		}
	}
	return everFired, nil
}

// Pull fires the given actor once, first firing whatever it depends on.
// It returns false when the actor cannot fire without data from outside
// of the working set. Actors fired on the way stay fired.
func (i *Interpreter) Pull(actor Actor) (bool, error) {
	pending := stack.New[Actor]()
	pending.Push(actor)

	for !pending.IsEmpty() {
		current, _ := pending.Peek()

		// the actor must not already be waiting further down the stack
		_, _ = pending.Pop()
		if pending.Contains(current) {
			err := errors.NewGraphError("unsatisfiable dependency cycle", stringers(current, pending.Items()...)...)
			i.logger.Errorf("pull %s: %v", current, err)
			return false, err
		}
		pending.Push(current)

		index, err := i.unsatisfiedChannel(current)
		if err != nil {
			i.logger.Errorf("pull %s: %v", current, err)
			return false, err
		}

		if index >= 0 {
			predecessor := current.Predecessors()[index]
			if predecessor == nil || !i.members.Contains(predecessor.core()) {
				return false, nil
			}
			pending.Push(predecessor)
			continue
		}

		if sender := i.awaitedSender(current); sender != nil {
			pending.Push(sender)
			continue
		}

		if err := i.fire(current); err != nil {
			return false, err
		}
		_, _ = pending.Pop()
	}
	return true, nil
}

// Drain requests that the next Run interprets one last time then calls the
// callback. It fails with ErrDrainAlreadyRequested when called twice.
func (i *Interpreter) Drain(callback func()) error {
	if callback == nil {
		callback = func() {}
	}
	if !i.drainCallback.CompareAndSwap(nil, &callback) {
		return errors.ErrDrainAlreadyRequested
	}
	return nil
}

// Run interprets the working set. Once a drain was requested it interprets,
// calls the drain callback and every later call does nothing.
// It returns whether anything fired.
func (i *Interpreter) Run() (bool, error) {
	if i.drained.Load() {
		return false, nil
	}

	callback := i.drainCallback.Load()
	fired, err := i.Interpret()
	if err != nil {
		return fired, err
	}

	if callback != nil && i.drained.CompareAndSwap(false, true) {
		(*callback)()
	}
	return fired, nil
}

// IsDrained reports whether the drain callback ran
func (i *Interpreter) IsDrained() bool {
	return i.drained.Load()
}

// InputRequirement returns how many elements the given input channel of the
// actor must hold for the actor to fire. It fails with ErrUnboundedRate when
// the maximum peek or pop rate is dynamic.
func InputRequirement(actor Actor, input int) (int, error) {
	peek, pop := actor.PeekRates()[input], actor.PopRates()[input]
	if peek.Max() == rate.Dynamic || pop.Max() == rate.Dynamic {
		return 0, errors.NewErrUnboundedRate(actor, input)
	}
	return max(peek.Max(), pop.Max()), nil
}

// unsatisfiedChannel returns the lowest index of an input channel holding
// too few elements for the actor to fire, or -1
func (i *Interpreter) unsatisfiedChannel(actor Actor) (int, error) {
	for index, input := range actor.InputChannels() {
		required, err := InputRequirement(actor, index)
		if err != nil {
			return -1, err
		}
		if input.Size() < required {
			return index, nil
		}
	}
	return -1, nil
}

// awaitedSender returns a sender whose next message would be due at or
// before the next firing of the recipient, or nil
func (i *Interpreter) awaitedSender(recipient Actor) Actor {
	next := recipient.Executions() + 1
	for _, constraint := range i.constraints[recipient.core()] {
		if constraint.DeliveryTime(constraint.sender.Executions()) <= next {
			return constraint.sender
		}
	}
	return nil
}

func (i *Interpreter) fire(actor Actor) error {
	if err := actor.run(); err != nil {
		i.logger.Errorf("firing %s: %v", actor, err)
		return err
	}
	i.metrics.RecordFiring(context.Background(), actor.String(), actor.Kind().String())

	for _, hook := range i.afterFire {
		if err := hook(actor); err != nil {
			if stderrors.Is(err, errors.ErrRateViolation) {
				i.metrics.RecordRateViolation(context.Background(), actor.String())
			}
			i.logger.Errorf("after firing %s: %v", actor, err)
			return err
		}
	}
	return nil
}

// Edge identifies a channel by the actors at both ends.
// uuid.Nil stands for outside of the graph.
type Edge struct {
	Upstream   uuid.UUID
	Downstream uuid.UUID
}

// String returns the edge as upstream->downstream
func (e Edge) String() string {
	return fmt.Sprintf("%s->%s", e.Upstream, e.Downstream)
}

// DrainData is a snapshot of what is left in a working set
type DrainData struct {
	// Channels holds the non empty channel contents, front first
	Channels map[Edge][]any
	// PendingMessages holds the number of undelivered messages per actor, when any
	PendingMessages map[uuid.UUID]int
}

// DrainData returns the content of every channel touching the working set
// and the number of pending messages per actor.
func (i *Interpreter) DrainData() *DrainData {
	data := &DrainData{
		Channels:        make(map[Edge][]any),
		PendingMessages: make(map[uuid.UUID]int),
	}

	record := func(edge Edge, ch channel.Channel[any]) {
		if _, ok := data.Channels[edge]; ok || ch.IsEmpty() {
			return
		}
		data.Channels[edge] = channel.Drain(ch)
	}

	for _, worker := range i.workers {
		for index, input := range worker.InputChannels() {
			record(Edge{Upstream: actorID(worker.Predecessors()[index]), Downstream: worker.ID()}, input)
		}
		for index, output := range worker.OutputChannels() {
			record(Edge{Upstream: worker.ID(), Downstream: actorID(worker.Successors()[index])}, output)
		}
		if pending := worker.PendingMessages(); pending > 0 {
			data.PendingMessages[worker.ID()] = pending
		}
	}
	return data
}

func actorID(actor Actor) uuid.UUID {
	if actor == nil {
		return uuid.Nil
	}
	return actor.ID()
}

// stringers lists the first actor then the others, skipping repeats of the first
func stringers(first Actor, others ...Actor) []fmt.Stringer {
	out := []fmt.Stringer{first}
	for _, actor := range others {
		if actor != first {
			out = append(out, actor)
		}
	}
	return out
}

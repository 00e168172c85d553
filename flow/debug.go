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
	"github.com/tochemey/goflow/channel"
	"github.com/tochemey/goflow/errors"
)

// NewDebugInterpreter creates an Interpreter that checks the declared rates
// of every actor after each firing. The channels of the working set are
// expected to be DebugChannels; other channels are not checked.
func NewDebugInterpreter(workers []Actor, constraints []*MessageConstraint, opts ...InterpreterOption) (*Interpreter, error) {
	return NewInterpreter(workers, constraints, append(opts, WithAfterFire(CheckRates))...)
}

// CheckRates compares what the actor did on its DebugChannels since their
// last reset with its declared peek, pop and push rates, then resets them.
// It fails with ErrRateViolation on the first mismatch.
func CheckRates(actor Actor) error {
	peekRates, popRates := actor.PeekRates(), actor.PopRates()
	for index, input := range actor.InputChannels() {
		ch, ok := input.(*channel.DebugChannel[any])
		if !ok {
			continue
		}

		peek, pop := peekRates[index], popRates[index]
		if peeked := ch.MaxPeekIndex() + 1; !peek.Contains(peeked) {
			return errors.NewErrRateViolation(actor, "peek", peek, peeked, index)
		}
		if popped := ch.PopCount(); !pop.Contains(popped) {
			return errors.NewErrRateViolation(actor, "pop", pop, popped, index)
		}
		ch.ResetStatistics()
	}

	pushRates := actor.PushRates()
	for index, output := range actor.OutputChannels() {
		ch, ok := output.(*channel.DebugChannel[any])
		if !ok {
			continue
		}

		push := pushRates[index]
		if pushed := ch.PushCount(); !push.Contains(pushed) {
			return errors.NewErrRateViolation(actor, "push", push, pushed, index)
		}
		ch.ResetStatistics()
	}
	return nil
}

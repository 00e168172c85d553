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

	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/rate"
)

// JoinerFunc is the work of a joiner. The inputs are in branch order.
type JoinerFunc func(ins []Input, out Output) error

// JoinerRates returns one peek and one pop rate per input and the push rate
// of the output once the number of inputs is known.
type JoinerRates func(inputs int) (peek, pop []rate.Rate, push rate.Rate)

// Joiner is an actor with many inputs and one output
type Joiner struct {
	*state
	supportedInputs int
	rates           JoinerRates
	work            JoinerFunc
}

// enforce compilation error
var _ Actor = (*Joiner)(nil)

// NewJoiner creates a Joiner. supportedInputs is the number of branches
// the joiner merges, or AnyCount.
func NewJoiner(name string, supportedInputs int, rates JoinerRates, work JoinerFunc, opts ...Option) *Joiner {
	j := &Joiner{
		state:           newState(name, KindJoiner, opts),
		supportedInputs: supportedInputs,
		rates:           rates,
		work:            work,
	}
	j.self = j
	return j
}

// SupportedInputs returns the number of inputs the joiner supports, or AnyCount
func (j *Joiner) SupportedInputs() int {
	return j.supportedInputs
}

func (j *Joiner) resolveRates(inputs int) error {
	peek, pop, push := j.rates(inputs)
	if len(peek) != inputs || len(pop) != inputs {
		return fmt.Errorf("%s: %d peek and %d pop rates for %d inputs: %w", j, len(peek), len(pop), inputs, errors.ErrIllegalRate)
	}
	j.peekRates = peek
	j.popRates = pop
	j.pushRates = []rate.Rate{push}
	return nil
}

func (j *Joiner) run() error {
	return j.fire(func() error {
		ins := make([]Input, len(j.inputs))
		for i, input := range j.inputs {
			ins[i] = input
		}
		return j.work(ins, j.outputs[0])
	})
}

func (j *Joiner) accept(visitor Visitor) error {
	return visitor.VisitJoiner(j)
}

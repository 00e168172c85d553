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

// SplitterFunc is the work of a splitter. The outputs are in branch order.
type SplitterFunc func(in Input, outs []Output) error

// SplitterRates returns the peek and pop rates of the input and one push
// rate per output once the number of outputs is known.
type SplitterRates func(outputs int) (peek, pop rate.Rate, push []rate.Rate)

// Splitter is an actor with one input and many outputs
type Splitter struct {
	*state
	supportedOutputs int
	rates            SplitterRates
	work             SplitterFunc
}

// enforce compilation error
var _ Actor = (*Splitter)(nil)

// NewSplitter creates a Splitter. supportedOutputs is the number of branches
// the splitter feeds, or AnyCount.
func NewSplitter(name string, supportedOutputs int, rates SplitterRates, work SplitterFunc, opts ...Option) *Splitter {
	s := &Splitter{
		state:            newState(name, KindSplitter, opts),
		supportedOutputs: supportedOutputs,
		rates:            rates,
		work:             work,
	}
	s.self = s
	return s
}

// SupportedOutputs returns the number of outputs the splitter supports, or AnyCount
func (s *Splitter) SupportedOutputs() int {
	return s.supportedOutputs
}

// resolveRates computes the rates once the number of outputs is known
func (s *Splitter) resolveRates(outputs int) error {
	peek, pop, push := s.rates(outputs)
	if len(push) != outputs {
		return fmt.Errorf("%s: %d push rates for %d outputs: %w", s, len(push), outputs, errors.ErrIllegalRate)
	}
	s.peekRates = []rate.Rate{peek}
	s.popRates = []rate.Rate{pop}
	s.pushRates = push
	return nil
}

func (s *Splitter) run() error {
	return s.fire(func() error {
		outs := make([]Output, len(s.outputs))
		for i, output := range s.outputs {
			outs[i] = output
		}
		return s.work(s.inputs[0], outs)
	})
}

func (s *Splitter) accept(visitor Visitor) error {
	return visitor.VisitSplitter(s)
}

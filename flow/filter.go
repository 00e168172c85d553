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
	"github.com/tochemey/goflow/rate"
)

// FilterFunc is the work of a filter. It is called once per firing with
// the single input and output channels of the filter.
type FilterFunc func(in Input, out Output) error

// Filter is an actor with exactly one input and one output
type Filter struct {
	*state
	work FilterFunc
}

// enforce compilation error
var (
	_ Actor   = (*Filter)(nil)
	_ Element = (*Filter)(nil)
)

// NewFilter creates a Filter with the given pop, push and peek rates.
// A filter whose maximum pop rate is zero is a source and must come first
// in the graph. One whose maximum push rate is zero is a sink and must come last.
func NewFilter(name string, pop, push, peek rate.Rate, work FilterFunc, opts ...Option) *Filter {
	f := &Filter{
		state: newState(name, KindFilter, opts),
		work:  work,
	}
	f.self = f
	f.peekRates = []rate.Rate{peek}
	f.popRates = []rate.Rate{pop}
	f.pushRates = []rate.Rate{push}
	return f
}

// run performs one firing
func (f *Filter) run() error {
	return f.fire(func() error {
		return f.work(f.inputs[0], f.outputs[0])
	})
}

func (f *Filter) accept(visitor Visitor) error {
	return visitor.VisitFilter(f)
}

func (f *Filter) oneToOne() {}

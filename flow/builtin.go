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
	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/rate"
)

// Identity creates a filter that forwards every element unchanged
func Identity(opts ...Option) *Filter {
	return NewFilter("Identity", rate.Fixed(1), rate.Fixed(1), rate.Zero(),
		func(in Input, out Output) error {
			return transfer(in, out, 1)
		}, opts...)
}

// RoundrobinSplitter creates a splitter that moves n elements to each output
// in turn per firing. It feeds any number of branches.
func RoundrobinSplitter(n int, opts ...Option) *Splitter {
	return NewSplitter("RoundrobinSplitter", AnyCount,
		func(outputs int) (rate.Rate, rate.Rate, []rate.Rate) {
			return rate.Zero(), rate.Fixed(n * outputs), repeatRate(rate.Fixed(n), outputs)
		},
		func(in Input, outs []Output) error {
			for _, out := range outs {
				if err := transfer(in, out, n); err != nil {
					return err
				}
			}
			return nil
		}, opts...)
}

// WeightedRoundrobinSplitter creates a splitter that moves weights[i]
// elements to output i in turn per firing. It feeds len(weights) branches.
func WeightedRoundrobinSplitter(weights []int, opts ...Option) *Splitter {
	return NewSplitter("WeightedRoundrobinSplitter", len(weights),
		func(int) (rate.Rate, rate.Rate, []rate.Rate) {
			push := make([]rate.Rate, len(weights))
			for i, weight := range weights {
				push[i] = rate.Fixed(weight)
			}
			return rate.Zero(), rate.Fixed(sum(weights)), push
		},
		func(in Input, outs []Output) error {
			for i, out := range outs {
				if err := transfer(in, out, weights[i]); err != nil {
					return err
				}
			}
			return nil
		}, opts...)
}

// DuplicateSplitter creates a splitter that copies every element to all outputs.
// It feeds any number of branches.
func DuplicateSplitter(opts ...Option) *Splitter {
	return NewSplitter("DuplicateSplitter", AnyCount,
		func(outputs int) (rate.Rate, rate.Rate, []rate.Rate) {
			return rate.Zero(), rate.Fixed(1), repeatRate(rate.Fixed(1), outputs)
		},
		func(in Input, outs []Output) error {
			element, err := in.Pop()
			if err != nil {
				return errors.NewInternalError(err)
			}
			for _, out := range outs {
				if err := out.Push(element); err != nil {
					return errors.NewInternalError(err)
				}
			}
			return nil
		}, opts...)
}

// RoundrobinJoiner creates a joiner that moves n elements from each input in
// turn per firing. It merges any number of branches.
func RoundrobinJoiner(n int, opts ...Option) *Joiner {
	return NewJoiner("RoundrobinJoiner", AnyCount,
		func(inputs int) ([]rate.Rate, []rate.Rate, rate.Rate) {
			return repeatRate(rate.Zero(), inputs), repeatRate(rate.Fixed(n), inputs), rate.Fixed(n * inputs)
		},
		func(ins []Input, out Output) error {
			for _, in := range ins {
				if err := transfer(in, out, n); err != nil {
					return err
				}
			}
			return nil
		}, opts...)
}

// WeightedRoundrobinJoiner creates a joiner that moves weights[i] elements
// from input i in turn per firing. It merges len(weights) branches.
func WeightedRoundrobinJoiner(weights []int, opts ...Option) *Joiner {
	return NewJoiner("WeightedRoundrobinJoiner", len(weights),
		func(int) ([]rate.Rate, []rate.Rate, rate.Rate) {
			pop := make([]rate.Rate, len(weights))
			for i, weight := range weights {
				pop[i] = rate.Fixed(weight)
			}
			return repeatRate(rate.Zero(), len(weights)), pop, rate.Fixed(sum(weights))
		},
		func(ins []Input, out Output) error {
			for i, in := range ins {
				if err := transfer(in, out, weights[i]); err != nil {
					return err
				}
			}
			return nil
		}, opts...)
}

// transfer pops count elements from in and pushes them to out.
// The scheduler only fires an actor whose input holds enough elements, so a
// channel error here is an InternalError.
func transfer(in Input, out Output, count int) error {
	for range count {
		element, err := in.Pop()
		if err != nil {
			return errors.NewInternalError(err)
		}
		if err := out.Push(element); err != nil {
			return errors.NewInternalError(err)
		}
	}
	return nil
}

func repeatRate(r rate.Rate, count int) []rate.Rate {
	rates := make([]rate.Rate, count)
	for i := range rates {
		rates[i] = r
	}
	return rates
}

func sum(values []int) int {
	total := 0
	for _, value := range values {
		total += value
	}
	return total
}

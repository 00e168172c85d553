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
	"go.opentelemetry.io/otel/metric"

	"github.com/tochemey/goflow/channel"
	"github.com/tochemey/goflow/flow"
	"github.com/tochemey/goflow/log"
)

// defaultInputCapacity is the input capacity of a threaded stream
const defaultInputCapacity = 1024

// Option configures a stream
type Option interface {
	// Apply sets the Option value of a config.
	Apply(*config)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*config)

// Apply applies the options to the config
func (f OptionFunc) Apply(c *config) {
	f(c)
}

type config struct {
	logger        log.Logger
	meterProvider metric.MeterProvider
	inputCapacity int
	factory       flow.ChannelFactory
}

func newConfig(inputCapacity int, opts ...Option) *config {
	cfg := &config{
		logger:        log.DiscardLogger,
		inputCapacity: inputCapacity,
	}
	for _, opt := range opts {
		opt.Apply(cfg)
	}
	return cfg
}

// channels builds the factory used to connect the graph: the head and tail
// channels come from the stream, the others from the internal factory.
func (c *config) channels(head, tail channel.Channel[any], internal flow.ChannelFactory) flow.ChannelFactory {
	if c.factory != nil {
		internal = c.factory
	}
	return func(upstream, downstream flow.Actor) channel.Channel[any] {
		switch {
		case upstream == nil:
			return head
		case downstream == nil:
			return tail
		default:
			return internal(upstream, downstream)
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return OptionFunc(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithMeterProvider sets the meter provider used to record the stream metrics
func WithMeterProvider(provider metric.MeterProvider) Option {
	return OptionFunc(func(c *config) {
		c.meterProvider = provider
	})
}

// WithInputCapacity bounds the number of elements waiting at the input.
// Zero or less means unbounded for a debug stream and the default for a
// threaded one.
func WithInputCapacity(capacity int) Option {
	return OptionFunc(func(c *config) {
		c.inputCapacity = capacity
	})
}

// WithChannelFactory sets the factory of the channels between actors
func WithChannelFactory(factory flow.ChannelFactory) Option {
	return OptionFunc(func(c *config) {
		c.factory = factory
	})
}

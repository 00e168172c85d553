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
	"github.com/tochemey/goflow/log"
	"github.com/tochemey/goflow/telemetry"
)

// InterpreterOption configures an Interpreter
type InterpreterOption interface {
	// Apply sets the Option value of an interpreter.
	Apply(*Interpreter)
}

var _ InterpreterOption = InterpreterOptionFunc(nil)

// InterpreterOptionFunc implements the InterpreterOption interface.
type InterpreterOptionFunc func(*Interpreter)

// Apply applies the option
func (f InterpreterOptionFunc) Apply(i *Interpreter) {
	f(i)
}

// WithAfterFire adds a hook called after every firing. An error returned by
// the hook stops the interpreter.
func WithAfterFire(hook AfterFireFunc) InterpreterOption {
	return InterpreterOptionFunc(func(i *Interpreter) {
		if hook != nil {
			i.afterFire = append(i.afterFire, hook)
		}
	})
}

// WithInterpreterLogger sets the logger
func WithInterpreterLogger(logger log.Logger) InterpreterOption {
	return InterpreterOptionFunc(func(i *Interpreter) {
		if logger != nil {
			i.logger = logger
		}
	})
}

// WithInterpreterMetrics sets the instruments recording firings and rate violations
func WithInterpreterMetrics(metrics *telemetry.Metrics) InterpreterOption {
	return InterpreterOptionFunc(func(i *Interpreter) {
		i.metrics = metrics
	})
}

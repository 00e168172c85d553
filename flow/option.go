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

import "github.com/google/uuid"

// Option configures an actor at construction
type Option interface {
	// Apply sets the Option value of an actor.
	Apply(*state)
}

var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*state)

// Apply applies the option
func (f OptionFunc) Apply(s *state) {
	f(s)
}

// WithPortal declares that the actor sends messages through the portal with
// the given latency. Message constraints are derived from these declarations.
func WithPortal[I any](portal *Portal[I], latency int) Option {
	return OptionFunc(func(s *state) {
		s.portals = append(s.portals, declaredPortal{portal: portal, latency: latency})
	})
}

// WithID overrides the identifier generated at construction
func WithID(id uuid.UUID) Option {
	return OptionFunc(func(s *state) {
		s.id = id
	})
}

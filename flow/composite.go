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
	"github.com/tochemey/goflow/internal/validation"
)

// Element is a building block of a stream graph with one input and one
// output: a Filter, a Pipeline or a Splitjoin.
// An element belongs to at most one composite.
type Element interface {
	accept(visitor Visitor) error
	claim() error
	release()
	oneToOne()
}

// Pipeline chains elements one after the other
type Pipeline struct {
	elements []Element
	used     bool
}

// enforce compilation error
var _ Element = (*Pipeline)(nil)

// NewPipeline creates a Pipeline of the given elements
func NewPipeline(elements ...Element) (*Pipeline, error) {
	pipeline := new(Pipeline)
	if err := pipeline.Add(elements...); err != nil {
		return nil, err
	}
	return pipeline, nil
}

// Add appends elements at the end of the pipeline. When one of them cannot
// be added, none is.
func (p *Pipeline) Add(elements ...Element) error {
	for index, element := range elements {
		if element == nil {
			release(elements[:index])
			return fmt.Errorf("pipeline: nil element")
		}
		if element == Element(p) {
			release(elements[:index])
			return fmt.Errorf("pipeline: adding pipeline to itself: %w", errors.ErrElementInUse)
		}
		if err := element.claim(); err != nil {
			release(elements[:index])
			return err
		}
	}
	p.elements = append(p.elements, elements...)
	return nil
}

// Elements returns the elements in order
func (p *Pipeline) Elements() []Element {
	return p.elements
}

func (p *Pipeline) accept(visitor Visitor) error {
	descend, err := visitor.EnterPipeline(p)
	if err != nil || !descend {
		return err
	}
	for _, element := range p.elements {
		if err := element.accept(visitor); err != nil {
			return err
		}
	}
	return visitor.ExitPipeline(p)
}

func (p *Pipeline) claim() error {
	if p.used {
		return fmt.Errorf("pipeline: %w", errors.ErrElementInUse)
	}
	p.used = true
	return nil
}

func (p *Pipeline) release() {
	p.used = false
}

func (p *Pipeline) oneToOne() {}

// Splitjoin feeds the same splitter output into parallel branches and merges
// them back with a joiner
type Splitjoin struct {
	splitter *Splitter
	joiner   *Joiner
	branches []Element
	used     bool
}

// enforce compilation error
var _ Element = (*Splitjoin)(nil)

// NewSplitjoin creates a Splitjoin. It fails with ErrUnbalancedSplitjoin when
// the splitter and the joiner disagree on the number of branches or when more
// branches are given than they support.
func NewSplitjoin(splitter *Splitter, joiner *Joiner, branches ...Element) (*Splitjoin, error) {
	if splitter == nil || joiner == nil {
		return nil, fmt.Errorf("splitjoin: splitter and joiner are required")
	}

	outputs, inputs := splitter.SupportedOutputs(), joiner.SupportedInputs()
	if outputs != inputs && outputs != AnyCount && inputs != AnyCount {
		return nil, fmt.Errorf("splitter %s produces %d outputs but joiner %s consumes %d inputs: %w",
			splitter, outputs, joiner, inputs, errors.ErrUnbalancedSplitjoin)
	}

	if err := splitter.claim(); err != nil {
		return nil, err
	}
	if err := joiner.claim(); err != nil {
		splitter.release()
		return nil, err
	}

	splitjoin := &Splitjoin{splitter: splitter, joiner: joiner}
	if err := splitjoin.Add(branches...); err != nil {
		splitter.release()
		joiner.release()
		return nil, err
	}
	return splitjoin, nil
}

// Add appends branches to the splitjoin. When one of them cannot be added,
// none is.
func (s *Splitjoin) Add(branches ...Element) error {
	if limit := s.limit(); limit != AnyCount && len(s.branches)+len(branches) > limit {
		return fmt.Errorf("splitjoin supports %d branches: %w", limit, errors.ErrUnbalancedSplitjoin)
	}
	for index, branch := range branches {
		if branch == nil {
			release(branches[:index])
			return fmt.Errorf("splitjoin: nil branch")
		}
		if branch == Element(s) {
			release(branches[:index])
			return fmt.Errorf("splitjoin: adding splitjoin to itself: %w", errors.ErrElementInUse)
		}
		if err := branch.claim(); err != nil {
			release(branches[:index])
			return err
		}
	}
	s.branches = append(s.branches, branches...)
	return nil
}

// Splitter returns the splitter
func (s *Splitjoin) Splitter() *Splitter {
	return s.splitter
}

// Joiner returns the joiner
func (s *Splitjoin) Joiner() *Joiner {
	return s.joiner
}

// Branches returns the branches in order
func (s *Splitjoin) Branches() []Element {
	return s.branches
}

// limit returns the branch count both ends accept, or AnyCount
func (s *Splitjoin) limit() int {
	if outputs := s.splitter.SupportedOutputs(); outputs != AnyCount {
		return outputs
	}
	return s.joiner.SupportedInputs()
}

// validate checks that the branch count matches what both ends expect
func (s *Splitjoin) validate() error {
	limit := s.limit()
	return validation.New(validation.FailFast()).
		AddAssertion(len(s.branches) > 0,
			fmt.Errorf("splitjoin %s/%s has no branch: %w", s.splitter, s.joiner, errors.ErrUnbalancedSplitjoin)).
		AddAssertion(limit == AnyCount || limit == len(s.branches),
			fmt.Errorf("splitjoin %s/%s expects %d branches but has %d: %w",
				s.splitter, s.joiner, limit, len(s.branches), errors.ErrUnbalancedSplitjoin)).
		Validate()
}

func (s *Splitjoin) accept(visitor Visitor) error {
	descend, err := visitor.EnterSplitjoin(s)
	if err != nil || !descend {
		return err
	}

	if err := s.splitter.accept(visitor); err != nil {
		return err
	}

	for _, branch := range s.branches {
		descend, err := visitor.EnterSplitjoinBranch(branch)
		if err != nil {
			return err
		}
		if !descend {
			continue
		}
		if err := branch.accept(visitor); err != nil {
			return err
		}
		if err := visitor.ExitSplitjoinBranch(branch); err != nil {
			return err
		}
	}

	if err := s.joiner.accept(visitor); err != nil {
		return err
	}
	return visitor.ExitSplitjoin(s)
}

func (s *Splitjoin) claim() error {
	if s.used {
		return fmt.Errorf("splitjoin: %w", errors.ErrElementInUse)
	}
	s.used = true
	return nil
}

func (s *Splitjoin) release() {
	s.used = false
}

func (s *Splitjoin) oneToOne() {}

// release gives back the claims taken on the given elements
func release(elements []Element) {
	for _, element := range elements {
		element.release()
	}
}

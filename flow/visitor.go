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

import "github.com/tochemey/goflow/channel"

// Visitor walks the composite structure of a stream graph depth first.
// Enter methods return whether to descend into the element; when they
// return false the matching Exit method is not called.
type Visitor interface {
	VisitFilter(filter *Filter) error
	EnterPipeline(pipeline *Pipeline) (bool, error)
	ExitPipeline(pipeline *Pipeline) error
	EnterSplitjoin(splitjoin *Splitjoin) (bool, error)
	VisitSplitter(splitter *Splitter) error
	EnterSplitjoinBranch(branch Element) (bool, error)
	ExitSplitjoinBranch(branch Element) error
	VisitJoiner(joiner *Joiner) error
	ExitSplitjoin(splitjoin *Splitjoin) error
}

// Walk runs the visitor over the given element
func Walk(root Element, visitor Visitor) error {
	return root.accept(visitor)
}

// ActorVisitor adapts a function called for every actor in visit order into a Visitor
type ActorVisitor func(actor Actor) error

// enforce compilation error
var _ Visitor = ActorVisitor(nil)

func (f ActorVisitor) VisitFilter(filter *Filter) error { return f(filter) }

func (f ActorVisitor) EnterPipeline(*Pipeline) (bool, error) { return true, nil }

func (f ActorVisitor) ExitPipeline(*Pipeline) error { return nil }

func (f ActorVisitor) EnterSplitjoin(*Splitjoin) (bool, error) { return true, nil }

func (f ActorVisitor) VisitSplitter(splitter *Splitter) error { return f(splitter) }

func (f ActorVisitor) EnterSplitjoinBranch(Element) (bool, error) { return true, nil }

func (f ActorVisitor) ExitSplitjoinBranch(Element) error { return nil }

func (f ActorVisitor) VisitJoiner(joiner *Joiner) error { return f(joiner) }

func (f ActorVisitor) ExitSplitjoin(*Splitjoin) error { return nil }

// undrainedVisitor reports whether every channel of a connected graph but
// the tail is empty. It stops descending once leftover data is found.
type undrainedVisitor struct {
	tail         channel.Channel[any]
	fullyDrained bool
}

// enforce compilation error
var _ Visitor = (*undrainedVisitor)(nil)

// IsFullyDrained reports whether the head channel and every actor output
// channel except the tail are empty. Pending messages are not considered.
func IsFullyDrained(graph *Graph) bool {
	visitor := &undrainedVisitor{
		tail:         graph.tail,
		fullyDrained: graph.head.IsEmpty(),
	}
	_ = Walk(graph.root, visitor)
	return visitor.fullyDrained
}

func (v *undrainedVisitor) visitActor(actor Actor) error {
	// every input channel but the head is the output channel of another actor
	for _, output := range actor.OutputChannels() {
		if output != v.tail && !output.IsEmpty() {
			v.fullyDrained = false
		}
	}
	return nil
}

func (v *undrainedVisitor) VisitFilter(filter *Filter) error { return v.visitActor(filter) }

func (v *undrainedVisitor) EnterPipeline(*Pipeline) (bool, error) { return v.fullyDrained, nil }

func (v *undrainedVisitor) ExitPipeline(*Pipeline) error { return nil }

func (v *undrainedVisitor) EnterSplitjoin(*Splitjoin) (bool, error) { return v.fullyDrained, nil }

func (v *undrainedVisitor) VisitSplitter(splitter *Splitter) error { return v.visitActor(splitter) }

func (v *undrainedVisitor) EnterSplitjoinBranch(Element) (bool, error) { return v.fullyDrained, nil }

func (v *undrainedVisitor) ExitSplitjoinBranch(Element) error { return nil }

func (v *undrainedVisitor) VisitJoiner(joiner *Joiner) error { return v.visitActor(joiner) }

func (v *undrainedVisitor) ExitSplitjoin(*Splitjoin) error { return nil }

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
	"slices"

	goset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/goflow/channel"
	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/internal/validation"
	"github.com/tochemey/goflow/rate"
)

// ChannelFactory creates the channel between two adjacent actors.
// upstream is nil for the head channel and downstream is nil for the tail channel.
type ChannelFactory func(upstream, downstream Actor) channel.Channel[any]

// ArrayChannelFactory connects every actor pair with an unbounded ArrayChannel
func ArrayChannelFactory(Actor, Actor) channel.Channel[any] {
	return channel.NewArrayChannel[any]()
}

// DebugChannelFactory connects every actor pair with a DebugChannel
func DebugChannelFactory(Actor, Actor) channel.Channel[any] {
	return channel.NewDebugChannel[any]()
}

// Graph is a connected stream graph
type Graph struct {
	root   Element
	source Actor
	sink   Actor
	actors []Actor
	head   channel.Channel[any]
	tail   channel.Channel[any]
}

// Root returns the element the graph was built from
func (g *Graph) Root() Element {
	return g.root
}

// Source returns the first actor
func (g *Graph) Source() Actor {
	return g.source
}

// Sink returns the last actor
func (g *Graph) Sink() Actor {
	return g.sink
}

// Actors returns every actor in visit order
func (g *Graph) Actors() []Actor {
	return g.actors
}

// Head returns the channel feeding the source
func (g *Graph) Head() channel.Channel[any] {
	return g.head
}

// Tail returns the channel the sink pushes to
func (g *Graph) Tail() channel.Channel[any] {
	return g.tail
}

// Connect walks the element, creates one channel per pair of adjacent actors
// with the given factory and links them. The source input and the sink output
// get a head and a tail channel from the same factory.
// An element can only be connected once.
func Connect(root Element, factory ChannelFactory) (*Graph, error) {
	if root == nil {
		return nil, errors.NewGraphError("nothing to connect")
	}
	if factory == nil {
		factory = ArrayChannelFactory
	}

	visitor := &connectVisitor{factory: factory}
	if err := Walk(root, visitor); err != nil {
		return nil, err
	}
	if visitor.source == nil {
		return nil, errors.NewGraphError("stream graph has no actor")
	}

	graph := &Graph{
		root:   root,
		source: visitor.source,
		sink:   visitor.current,
		actors: visitor.actors,
		head:   factory(nil, visitor.source),
		tail:   factory(visitor.current, nil),
	}
	if graph.head == nil || graph.tail == nil {
		return nil, fmt.Errorf("channel factory returned no head or tail channel")
	}

	source := graph.source.core()
	source.inputs = append(source.inputs, graph.head)
	source.predecessors = append(source.predecessors, nil)

	sink := graph.sink.core()
	sink.outputs = append(sink.outputs, graph.tail)
	sink.successors = append(sink.successors, nil)
	return graph, nil
}

// splitjoinContext remembers the splitter to fan out from and the last actor
// of every visited branch
type splitjoinContext struct {
	splitter   *Splitter
	branchEnds []Actor
}

type connectVisitor struct {
	factory ChannelFactory
	source  Actor
	// current is the last actor met, and the sink once the walk is over
	current Actor
	actors  []Actor
	stack   []*splitjoinContext
	visited goset.Set[*state]
}

// enforce compilation error
var _ Visitor = (*connectVisitor)(nil)

func (v *connectVisitor) VisitFilter(filter *Filter) error {
	return v.visitActor(filter)
}

func (v *connectVisitor) EnterPipeline(*Pipeline) (bool, error) {
	return true, nil
}

func (v *connectVisitor) ExitPipeline(*Pipeline) error {
	return nil
}

func (v *connectVisitor) EnterSplitjoin(splitjoin *Splitjoin) (bool, error) {
	if err := splitjoin.validate(); err != nil {
		return false, err
	}
	branches := len(splitjoin.branches)
	if err := splitjoin.splitter.resolveRates(branches); err != nil {
		return false, err
	}
	if err := splitjoin.joiner.resolveRates(branches); err != nil {
		return false, err
	}
	return true, nil
}

func (v *connectVisitor) VisitSplitter(splitter *Splitter) error {
	if err := v.visitActor(splitter); err != nil {
		return err
	}
	v.stack = append(v.stack, &splitjoinContext{splitter: splitter})
	return nil
}

func (v *connectVisitor) EnterSplitjoinBranch(Element) (bool, error) {
	v.current = v.top().splitter
	return true, nil
}

func (v *connectVisitor) ExitSplitjoinBranch(Element) error {
	top := v.top()
	top.branchEnds = append(top.branchEnds, v.current)
	return nil
}

func (v *connectVisitor) VisitJoiner(joiner *Joiner) error {
	// a joiner is never the first actor since its splitter comes before it
	if err := v.mark(joiner); err != nil {
		return err
	}
	for _, end := range v.top().branchEnds {
		if err := v.link(end, joiner); err != nil {
			return err
		}
	}
	v.stack = v.stack[:len(v.stack)-1]
	v.current = joiner
	return nil
}

func (v *connectVisitor) ExitSplitjoin(*Splitjoin) error {
	return nil
}

func (v *connectVisitor) top() *splitjoinContext {
	return v.stack[len(v.stack)-1]
}

func (v *connectVisitor) mark(actor Actor) error {
	if v.visited == nil {
		v.visited = goset.NewThreadUnsafeSet[*state]()
	}
	if !v.visited.Add(actor.core()) {
		return errors.NewGraphError("actor appears more than once", actor)
	}
	v.actors = append(v.actors, actor)
	return nil
}

func (v *connectVisitor) visitActor(actor Actor) error {
	if err := v.mark(actor); err != nil {
		return err
	}
	if v.current == nil {
		v.source = actor
		v.current = actor
		return nil
	}
	if err := v.link(v.current, actor); err != nil {
		return err
	}
	v.current = actor
	return nil
}

// link connects upstream to downstream with a new channel
func (v *connectVisitor) link(upstream, downstream Actor) error {
	err := validation.New(validation.FailFast()).
		AddAssertion(upstream.core() != downstream.core(), errors.NewGraphError("connecting actor to itself", upstream)).
		AddAssertion(!slices.ContainsFunc(upstream.PushRates(), carriesNothing), errors.NewGraphError("sink isn't last actor", upstream)).
		AddAssertion(!slices.ContainsFunc(downstream.PopRates(), carriesNothing), errors.NewGraphError("source isn't first actor", downstream)).
		Validate()
	if err != nil {
		return err
	}

	ch := v.factory(upstream, downstream)
	if ch == nil {
		return fmt.Errorf("channel factory returned no channel for %s -> %s", upstream, downstream)
	}

	up, down := upstream.core(), downstream.core()
	up.outputs = append(up.outputs, ch)
	up.successors = append(up.successors, downstream)
	down.inputs = append(down.inputs, ch)
	down.predecessors = append(down.predecessors, upstream)
	return nil
}

// carriesNothing reports whether a channel with this rate never carries an element
func carriesNothing(r rate.Rate) bool {
	return r.Max() == 0
}

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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/goflow/channel"
	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/rate"
)

func sinkFilter() *Filter {
	return NewFilter("Sink", rate.Fixed(1), rate.Zero(), rate.Zero(), func(in Input, _ Output) error {
		_, err := in.Pop()
		return err
	})
}

func sourceFilter() *Filter {
	return NewFilter("Source", rate.Zero(), rate.Fixed(1), rate.Zero(), func(_ Input, out Output) error {
		return out.Push(1)
	})
}

func TestConnectPipeline(t *testing.T) {
	first, second, third := Identity(), Identity(), Identity()
	pipeline, err := NewPipeline(first, second, third)
	require.NoError(t, err)
	require.Len(t, pipeline.Elements(), 3)

	graph, err := Connect(pipeline, nil)
	require.NoError(t, err)
	require.Equal(t, Element(pipeline), graph.Root())
	require.Equal(t, []Actor{first, second, third}, graph.Actors())
	assert.Equal(t, Actor(first), graph.Source())
	assert.Equal(t, Actor(third), graph.Sink())

	// head and tail channels sit at both ends
	require.Len(t, first.InputChannels(), 1)
	assert.Equal(t, graph.Head(), first.InputChannels()[0])
	assert.Nil(t, first.Predecessors()[0])
	require.Len(t, third.OutputChannels(), 1)
	assert.Equal(t, graph.Tail(), third.OutputChannels()[0])
	assert.Nil(t, third.Successors()[0])

	// adjacent actors share one channel
	assert.Equal(t, first.OutputChannels()[0], second.InputChannels()[0])
	assert.Equal(t, []Actor{second}, first.Successors())
	assert.Equal(t, []Actor{first}, second.Predecessors())
	_, ok := graph.Head().(*channel.ArrayChannel[any])
	assert.True(t, ok)
}

func TestConnectSplitjoin(t *testing.T) {
	splitter, joiner := RoundrobinSplitter(1), RoundrobinJoiner(1)
	branches := []Element{Identity(), Identity(), Identity()}
	splitjoin, err := NewSplitjoin(splitter, joiner, branches...)
	require.NoError(t, err)
	assert.Equal(t, splitter, splitjoin.Splitter())
	assert.Equal(t, joiner, splitjoin.Joiner())
	assert.Len(t, splitjoin.Branches(), 3)

	graph, err := Connect(splitjoin, DebugChannelFactory)
	require.NoError(t, err)
	require.Len(t, graph.Actors(), 5)
	assert.Equal(t, Actor(splitter), graph.Source())
	assert.Equal(t, Actor(joiner), graph.Sink())

	require.Len(t, splitter.Successors(), 3)
	require.Len(t, joiner.Predecessors(), 3)
	for i, branch := range branches {
		filter := branch.(*Filter)
		assert.Equal(t, Actor(filter), splitter.Successors()[i])
		assert.Equal(t, Actor(filter), joiner.Predecessors()[i])
	}

	// rates are resolved once the branch count is known
	assert.Equal(t, []rate.Rate{rate.Fixed(3)}, splitter.PopRates())
	assert.Len(t, splitter.PushRates(), 3)
	assert.Equal(t, rate.Fixed(3), joiner.PushRates()[0])
	_, ok := graph.Tail().(*channel.DebugChannel[any])
	assert.True(t, ok)
}

func TestConnectNestedSplitjoin(t *testing.T) {
	inner, err := NewSplitjoin(DuplicateSplitter(), RoundrobinJoiner(1), Identity(), Identity())
	require.NoError(t, err)
	outer, err := NewSplitjoin(RoundrobinSplitter(1), RoundrobinJoiner(2), inner, Identity())
	require.NoError(t, err)
	pipeline, err := NewPipeline(Identity(), outer, Identity())
	require.NoError(t, err)

	graph, err := Connect(pipeline, nil)
	require.NoError(t, err)
	require.Len(t, graph.Actors(), 9)

	outerJoiner := outer.Joiner()
	require.Len(t, outerJoiner.Predecessors(), 2)
	assert.Equal(t, Actor(inner.Joiner()), outerJoiner.Predecessors()[0])
}

func TestConnectErrors(t *testing.T) {
	t.Run("sink isn't last", func(t *testing.T) {
		sink := sinkFilter()
		pipeline, err := NewPipeline(sink, Identity())
		require.NoError(t, err)
		_, err = Connect(pipeline, nil)
		require.ErrorIs(t, err, errors.ErrIllegalStreamGraph)

		var graphErr *errors.GraphError
		require.ErrorAs(t, err, &graphErr)
		assert.Equal(t, "sink isn't last actor", graphErr.Reason())
		assert.Equal(t, sink.String(), graphErr.Actors()[0].String())
	})

	t.Run("source isn't first", func(t *testing.T) {
		pipeline, err := NewPipeline(Identity(), sourceFilter())
		require.NoError(t, err)
		_, err = Connect(pipeline, nil)
		require.ErrorIs(t, err, errors.ErrIllegalStreamGraph)
	})

	t.Run("source and sink at the ends", func(t *testing.T) {
		pipeline, err := NewPipeline(sourceFilter(), Identity(), sinkFilter())
		require.NoError(t, err)
		_, err = Connect(pipeline, nil)
		require.NoError(t, err)
	})

	t.Run("empty pipeline", func(t *testing.T) {
		pipeline, err := NewPipeline()
		require.NoError(t, err)
		_, err = Connect(pipeline, nil)
		require.ErrorIs(t, err, errors.ErrIllegalStreamGraph)
	})

	t.Run("element reused", func(t *testing.T) {
		identity := Identity()
		_, err := NewPipeline(identity)
		require.NoError(t, err)
		_, err = NewPipeline(identity)
		require.ErrorIs(t, err, errors.ErrElementInUse)
	})

	t.Run("failed construction releases its claims", func(t *testing.T) {
		splitter, joiner := WeightedRoundrobinSplitter([]int{1, 1}), RoundrobinJoiner(1)
		first, second, third := Identity(), Identity(), Identity()
		_, err := NewSplitjoin(splitter, joiner, first, second, third)
		require.ErrorIs(t, err, errors.ErrUnbalancedSplitjoin)

		used := Identity()
		_, err = NewPipeline(used)
		require.NoError(t, err)
		_, err = NewSplitjoin(splitter, joiner, first, used)
		require.ErrorIs(t, err, errors.ErrElementInUse)

		// every element is still free for a valid splitjoin
		splitjoin, err := NewSplitjoin(splitter, joiner, first, second)
		require.NoError(t, err)
		_, err = NewPipeline(splitjoin, third)
		require.NoError(t, err)

		taken := Identity()
		_, err = NewPipeline(taken, taken)
		require.ErrorIs(t, err, errors.ErrElementInUse)
		_, err = NewPipeline(taken)
		require.NoError(t, err)
	})

	t.Run("unbalanced splitjoin", func(t *testing.T) {
		_, err := NewSplitjoin(WeightedRoundrobinSplitter([]int{1, 1}), WeightedRoundrobinJoiner([]int{1, 1, 1}))
		require.ErrorIs(t, err, errors.ErrUnbalancedSplitjoin)

		_, err = NewSplitjoin(WeightedRoundrobinSplitter([]int{1, 1}), RoundrobinJoiner(1), Identity(), Identity(), Identity())
		require.ErrorIs(t, err, errors.ErrUnbalancedSplitjoin)

		splitjoin, err := NewSplitjoin(WeightedRoundrobinSplitter([]int{1, 1}), RoundrobinJoiner(1), Identity())
		require.NoError(t, err)
		_, err = Connect(splitjoin, nil)
		require.ErrorIs(t, err, errors.ErrUnbalancedSplitjoin)
	})
}

func TestGraphQueries(t *testing.T) {
	splitter, joiner := DuplicateSplitter(), RoundrobinJoiner(1)
	left, right := Identity(), Identity()
	splitjoin, err := NewSplitjoin(splitter, joiner, left, right)
	require.NoError(t, err)
	last := Identity()
	pipeline, err := NewPipeline(splitjoin, last)
	require.NoError(t, err)
	graph, err := Connect(pipeline, nil)
	require.NoError(t, err)

	assert.Equal(t, Upstream, ComparePosition(splitter, last))
	assert.Equal(t, Downstream, ComparePosition(last, left))
	assert.Equal(t, Incomparable, ComparePosition(left, right))
	assert.Equal(t, Same, ComparePosition(left, left))
	assert.Equal(t, "incomparable", Incomparable.String())

	assert.ElementsMatch(t, []Actor{left, right, joiner, last}, AllSuccessors(splitter))
	assert.ElementsMatch(t, []Actor{splitter, left, right, joiner}, AllPredecessors(last))
	assert.Empty(t, AllPredecessors(splitter))

	assert.Equal(t, []Actor{last}, Bottommost(graph.Actors()))
	assert.Equal(t, []Actor{left, right}, Bottommost([]Actor{splitter, left, right}))
}

func TestIsFullyDrained(t *testing.T) {
	first, second := Identity(), Identity()
	pipeline, err := NewPipeline(first, second)
	require.NoError(t, err)
	graph, err := Connect(pipeline, nil)
	require.NoError(t, err)
	require.True(t, IsFullyDrained(graph))

	// data in the tail does not count
	require.NoError(t, graph.Tail().Push(1))
	assert.True(t, IsFullyDrained(graph))

	require.NoError(t, first.OutputChannels()[0].Push(2))
	assert.False(t, IsFullyDrained(graph))
	_, err = first.OutputChannels()[0].Pop()
	require.NoError(t, err)

	require.NoError(t, graph.Head().Push(3))
	assert.False(t, IsFullyDrained(graph))
}

func TestActorVisitor(t *testing.T) {
	splitjoin, err := NewSplitjoin(DuplicateSplitter(), RoundrobinJoiner(1), Identity(), Identity())
	require.NoError(t, err)
	pipeline, err := NewPipeline(Identity(), splitjoin)
	require.NoError(t, err)

	var kinds []Kind
	err = Walk(pipeline, ActorVisitor(func(actor Actor) error {
		kinds = append(kinds, actor.Kind())
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []Kind{KindFilter, KindSplitter, KindFilter, KindFilter, KindJoiner}, kinds)
	assert.Equal(t, "joiner", KindJoiner.String())
}

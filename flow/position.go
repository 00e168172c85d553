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
	goset "github.com/deckarep/golang-set/v2"
)

// Position is the relative placement of two actors in a stream graph
type Position int

const (
	// Incomparable means neither actor can reach the other
	Incomparable Position = iota
	// Upstream means the first actor feeds, maybe indirectly, the second one
	Upstream
	// Downstream means the second actor feeds, maybe indirectly, the first one
	Downstream
	// Same means both are the same actor
	Same
)

// String returns the position name
func (p Position) String() string {
	switch p {
	case Upstream:
		return "upstream"
	case Downstream:
		return "downstream"
	case Same:
		return "same"
	default:
		return "incomparable"
	}
}

// ComparePosition returns where left sits relative to right
func ComparePosition(left, right Actor) Position {
	if left.core() == right.core() {
		return Same
	}
	if reaches(left, right, Actor.Successors) {
		return Upstream
	}
	if reaches(left, right, Actor.Predecessors) {
		return Downstream
	}
	return Incomparable
}

// AllPredecessors returns every actor upstream of the given one, nearest first
func AllPredecessors(actor Actor) []Actor {
	return closure(actor, Actor.Predecessors)
}

// AllSuccessors returns every actor downstream of the given one, nearest first
func AllSuccessors(actor Actor) []Actor {
	return closure(actor, Actor.Successors)
}

// Bottommost returns the actors of the set that have no successor inside the
// set, in the order they are given.
func Bottommost(actors []Actor) []Actor {
	members := goset.NewThreadUnsafeSet[*state]()
	for _, actor := range actors {
		members.Add(actor.core())
	}

	bottommost := make([]Actor, 0, len(actors))
	for _, actor := range actors {
		inside := false
		for _, successor := range actor.Successors() {
			if successor != nil && members.Contains(successor.core()) {
				inside = true
				break
			}
		}
		if !inside {
			bottommost = append(bottommost, actor)
		}
	}
	return bottommost
}

// reaches runs a breadth-first search from start following next
func reaches(start, target Actor, next func(Actor) []Actor) bool {
	for _, actor := range closure(start, next) {
		if actor.core() == target.core() {
			return true
		}
	}
	return false
}

func closure(start Actor, next func(Actor) []Actor) []Actor {
	closed := goset.NewThreadUnsafeSet[*state](start.core())
	frontier := []Actor{start}
	var found []Actor
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		for _, neighbor := range next(current) {
			if neighbor == nil || !closed.Add(neighbor.core()) {
				continue
			}
			found = append(found, neighbor)
			frontier = append(frontier, neighbor)
		}
	}
	return found
}

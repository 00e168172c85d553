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

	goset "github.com/deckarep/golang-set/v2"

	"github.com/tochemey/goflow/errors"
	"github.com/tochemey/goflow/internal/validation"
)

// MessageConstraint states that a sender may send messages to a recipient
// through a portal with a fixed latency
type MessageConstraint struct {
	sender    Actor
	recipient Actor
	portal    portalRef
	latency   int
	direction Position
}

// Sender returns the sending actor
func (c *MessageConstraint) Sender() Actor {
	return c.sender
}

// Recipient returns the receiving actor
func (c *MessageConstraint) Recipient() Actor {
	return c.recipient
}

// Latency returns the declared latency
func (c *MessageConstraint) Latency() int {
	return c.latency
}

// Direction returns the position of the sender relative to the recipient.
// Upstream means the sender feeds the recipient, so the message travels
// downstream with the data. Downstream means the message travels against it.
func (c *MessageConstraint) Direction() Position {
	return c.direction
}

// DeliveryTime returns the firing number of the recipient before which the
// next message of the sender is delivered, given the firings the sender completed.
func (c *MessageConstraint) DeliveryTime(senderExecutions int64) int64 {
	return senderExecutions + 1 + int64(c.latency)
}

// String describes the constraint
func (c *MessageConstraint) String() string {
	return fmt.Sprintf("%s -> %s via %s (latency %d, sender %s)", c.sender, c.recipient, c.portal, c.latency, c.direction)
}

// FindConstraints derives one constraint per sender, declared portal and
// recipient of the connected graph. Every recipient must belong to the graph
// and be strictly upstream or downstream of its sender. Latencies must not be negative.
func FindConstraints(graph *Graph) ([]*MessageConstraint, error) {
	members := goset.NewThreadUnsafeSet[*state]()
	for _, actor := range graph.actors {
		members.Add(actor.core())
	}

	var constraints []*MessageConstraint
	violations := validation.New(validation.AllErrors())
	for _, sender := range graph.actors {
		for _, declared := range sender.core().portals {
			if declared.latency < 0 {
				violations.AddError(errors.NewGraphError(
					fmt.Sprintf("negative latency %d on %s", declared.latency, declared.portal), sender))
				continue
			}

			for _, recipient := range declared.portal.recipientActors() {
				recipient = recipient.core().self
				if !members.Contains(recipient.core()) {
					violations.AddError(errors.NewGraphError(
						fmt.Sprintf("recipient of %s is outside of the graph", declared.portal), sender, recipient))
					continue
				}

				direction := ComparePosition(sender, recipient)
				if direction == Same || direction == Incomparable {
					violations.AddError(errors.NewGraphError(
						fmt.Sprintf("%s messaging through %s", direction, declared.portal), sender, recipient))
					continue
				}

				constraints = append(constraints, &MessageConstraint{
					sender:    sender,
					recipient: recipient,
					portal:    declared.portal,
					latency:   declared.latency,
					direction: direction,
				})
			}
		}
	}

	if err := violations.Validate(); err != nil {
		return nil, err
	}
	return constraints, nil
}

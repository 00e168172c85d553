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
	"sync"

	gods "github.com/Workiva/go-datastructures/queue"
	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/tochemey/goflow/errors"
)

// portalRef is the type-erased view of a Portal
type portalRef interface {
	fmt.Stringer
	recipientActors() []Actor
}

// declaredPortal records that an actor sends through a portal with a latency
type declaredPortal struct {
	portal  portalRef
	latency int
}

// Portal delivers messages to a set of recipients of type I. Recipients
// must be actors, typically user types embedding a Filter, Splitter or
// Joiner and implementing the message methods of I.
type Portal[I any] struct {
	id         uuid.UUID
	mu         sync.RWMutex
	recipients []I
	actors     []Actor
}

// NewPortal creates a Portal without recipient
func NewPortal[I any]() *Portal[I] {
	return &Portal[I]{id: uuid.New()}
}

// AddRecipient registers a recipient. It fails with ErrNotAnActor unless
// the recipient is an actor.
func (p *Portal[I]) AddRecipient(recipient I) error {
	actor, ok := any(recipient).(Actor)
	if !ok {
		return fmt.Errorf("%T: %w", recipient, errors.ErrNotAnActor)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.recipients = append(p.recipients, recipient)
	p.actors = append(p.actors, actor)
	return nil
}

// Recipients returns the registered recipients
func (p *Portal[I]) Recipients() []I {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.recipients)
}

// Handle returns the handle the sender uses to send messages with the given
// latency. The sender must declare the portal with WithPortal and the same latency.
func (p *Portal[I]) Handle(sender Actor, latency int) *Handle[I] {
	return &Handle[I]{portal: p, sender: sender, latency: latency}
}

// String returns the portal identifier
func (p *Portal[I]) String() string {
	return fmt.Sprintf("portal@%s", p.id.String()[:8])
}

func (p *Portal[I]) recipientActors() []Actor {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.actors)
}

// Handle sends messages through a portal on behalf of one sender
type Handle[I any] struct {
	portal  *Portal[I]
	sender  Actor
	latency int
}

// Send enqueues a message on every recipient. The handler fn runs with the
// recipient and the arguments right before the recipient's firing number
// senderExecutions + 1 + latency, where senderExecutions is the number of
// firings the sender had completed when sending.
func (h *Handle[I]) Send(method string, fn func(recipient I, args ...any), args ...any) error {
	if !h.declared() {
		return fmt.Errorf("%s does not declare %s with latency %d: %w", h.sender, h.portal, h.latency, errors.ErrUndeclaredPortal)
	}

	deliveryTime := h.sender.Executions() + 1 + int64(h.latency)

	h.portal.mu.RLock()
	recipients := slices.Clone(h.portal.recipients)
	actors := slices.Clone(h.portal.actors)
	h.portal.mu.RUnlock()

	var err error
	for i, recipient := range recipients {
		message := &Message{
			method:       method,
			args:         args,
			deliveryTime: deliveryTime,
			handler: func() {
				fn(recipient, args...)
			},
		}
		err = multierr.Append(err, actors[i].core().enqueue(message))
	}
	return err
}

func (h *Handle[I]) declared() bool {
	for _, declared := range h.sender.core().portals {
		if declared.portal == portalRef(h.portal) && declared.latency == h.latency {
			return true
		}
	}
	return false
}

// Message is a method call waiting to be delivered to an actor
type Message struct {
	method       string
	args         []any
	deliveryTime int64
	sequence     uint64
	handler      func()
}

// enforce compilation error
var _ gods.Item = (*Message)(nil)

// Method returns the name of the method the message invokes
func (m *Message) Method() string {
	return m.method
}

// Args returns the message arguments
func (m *Message) Args() []any {
	return m.args
}

// DeliveryTime returns the firing number before which the message is delivered
func (m *Message) DeliveryTime() int64 {
	return m.deliveryTime
}

// Compare orders messages by delivery time then by send order
func (m *Message) Compare(other gods.Item) int {
	o := other.(*Message)
	switch {
	case m.deliveryTime < o.deliveryTime:
		return -1
	case m.deliveryTime > o.deliveryTime:
		return 1
	case m.sequence < o.sequence:
		return -1
	case m.sequence > o.sequence:
		return 1
	default:
		return 0
	}
}

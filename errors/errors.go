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

package errors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIllegalRate is returned when a rate declaration violates the min/max/avg invariants.
	ErrIllegalRate = errors.New("illegal rate")

	// ErrChannelFull is returned when pushing onto a capacity-bounded channel that has no room left.
	ErrChannelFull = errors.New("channel is full")

	// ErrChannelEmpty is returned when popping from a channel that holds no elements.
	ErrChannelEmpty = errors.New("channel is empty")

	// ErrIndexOutOfBounds is returned when peeking past the logical size of a channel.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrChannelClosed is returned by blocking channels once they have been closed.
	ErrChannelClosed = errors.New("channel is closed")

	// ErrIllegalStreamGraph indicates that the stream graph cannot be executed at all.
	ErrIllegalStreamGraph = errors.New("illegal stream graph")

	// ErrUnboundedRate is returned when an actor declares a dynamic maximum peek or pop rate.
	// The pull scheduler cannot compute a required buffer size for such an actor.
	ErrUnboundedRate = errors.New("unbounded input rates are not supported")

	// ErrRateViolation is returned in debug mode when an actor's observed behavior does not
	// conform to its declared rates.
	ErrRateViolation = errors.New("rate declaration violated")

	// ErrMissedDelivery is returned when a message would be delivered at or before the
	// recipient's current firing.
	ErrMissedDelivery = errors.New("message delivery missed")

	// ErrNotAnActor is returned when registering a portal recipient that is not a Filter, Splitter or Joiner.
	ErrNotAnActor = errors.New("recipient is not an actor")

	// ErrUndeclaredPortal is returned when an actor sends through a portal it never declared.
	ErrUndeclaredPortal = errors.New("portal was not declared by the sender")

	// ErrUnbalancedSplitjoin is returned when a splitjoin's branch count does not match its
	// splitter or joiner.
	ErrUnbalancedSplitjoin = errors.New("unbalanced splitjoin")

	// ErrElementInUse is returned when a stream element is added to more than one composite.
	ErrElementInUse = errors.New("stream element is already in use")

	// ErrDrainAlreadyRequested is returned when drain is requested more than once.
	ErrDrainAlreadyRequested = errors.New("drain already requested")

	// ErrDrainTimeout is returned when waiting for a stream to drain times out.
	ErrDrainTimeout = errors.New("timed out waiting for the stream to drain")

	// ErrStreamClosed is returned when a stream stopped before it finished draining.
	ErrStreamClosed = errors.New("stream is closed")
)

// NewErrIllegalRate formats an ErrIllegalRate for the given rate values.
func NewErrIllegalRate(rate string) error {
	return fmt.Errorf("rate=%s %w", rate, ErrIllegalRate)
}

// NewErrRateViolation formats an ErrRateViolation with the actor, the declared rate and the observed count.
func NewErrRateViolation(actor fmt.Stringer, what string, declared fmt.Stringer, observed, channel int) error {
	return fmt.Errorf("%s: %s rate %s but observed %d on channel %d: %w", actor, what, declared, observed, channel, ErrRateViolation)
}

// NewErrMissedDelivery formats an ErrMissedDelivery for the given recipient.
func NewErrMissedDelivery(recipient fmt.Stringer, executions, deliveryTime int64) error {
	return fmt.Errorf("recipient=%s executions=%d delivery time=%d: %w", recipient, executions, deliveryTime, ErrMissedDelivery)
}

// NewErrUnboundedRate formats an ErrUnboundedRate for the given actor.
func NewErrUnboundedRate(actor fmt.Stringer, channel int) error {
	return fmt.Errorf("%s input channel %d: %w", actor, channel, ErrUnboundedRate)
}

// GraphError reports a malformed stream graph together with the actors involved.
// It matches ErrIllegalStreamGraph under errors.Is.
type GraphError struct {
	reason string
	actors []fmt.Stringer
}

// enforce compilation error
var _ error = (*GraphError)(nil)

// NewGraphError creates an instance of GraphError
func NewGraphError(reason string, actors ...fmt.Stringer) *GraphError {
	return &GraphError{reason: reason, actors: actors}
}

// Error implements the standard error interface
func (e *GraphError) Error() string {
	if len(e.actors) == 0 {
		return fmt.Sprintf("%s: %s", ErrIllegalStreamGraph, e.reason)
	}
	names := make([]string, 0, len(e.actors))
	for _, actor := range e.actors {
		names = append(names, actor.String())
	}
	return fmt.Sprintf("%s: %s (%s)", ErrIllegalStreamGraph, e.reason, strings.Join(names, ", "))
}

// Reason returns the diagnostic message
func (e *GraphError) Reason() string {
	return e.reason
}

// Actors returns the actors involved in the error, for diagnostics.
func (e *GraphError) Actors() []fmt.Stringer {
	return e.actors
}

// Is makes GraphError match ErrIllegalStreamGraph
func (e *GraphError) Is(target error) bool {
	return target == ErrIllegalStreamGraph
}

// PanicError defines the panic error
// wrapping the underlying error
type PanicError struct {
	err error
}

// enforce compilation error
var _ error = (*PanicError)(nil)

// NewPanicError creates an instance of PanicError
func NewPanicError(err error) *PanicError {
	return &PanicError{err}
}

// Error implements the standard error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.err)
}

func (e *PanicError) Unwrap() error {
	return e.err
}

// InternalError defines an error that is explicit to the application
type InternalError struct {
	err error
}

// enforce compilation error
var _ error = (*InternalError)(nil)

// NewInternalError returns an intance of InternalError
func NewInternalError(err error) *InternalError {
	return &InternalError{
		err: fmt.Errorf("internal error: %w", err),
	}
}

// Error implements the standard error interface
func (i *InternalError) Error() string {
	return i.err.Error()
}

func (i *InternalError) Unwrap() error {
	return i.err
}

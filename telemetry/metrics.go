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

package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	firingCounterName        = "goflow.actor.firings"
	rateViolationCounterName = "goflow.actor.rate_violations"
	offerCounterName         = "goflow.stream.offers"
	rejectedOfferCounterName = "goflow.stream.rejected_offers"
	pollCounterName          = "goflow.stream.polls"

	actorAttribute = "actor"
	kindAttribute  = "kind"
)

// Metrics groups the stream instruments
type Metrics struct {
	firings        metric.Int64Counter
	rateViolations metric.Int64Counter
	offers         metric.Int64Counter
	rejectedOffers metric.Int64Counter
	polls          metric.Int64Counter
}

// NewMetrics creates an instance of Metrics
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	metrics := new(Metrics)
	var err error

	if metrics.firings, err = meter.Int64Counter(
		firingCounterName,
		metric.WithDescription("The total number of actor firings"),
	); err != nil {
		return nil, fmt.Errorf("failed to create firing count instrument, %w", err)
	}

	if metrics.rateViolations, err = meter.Int64Counter(
		rateViolationCounterName,
		metric.WithDescription("The total number of firings that violated the declared rates"),
	); err != nil {
		return nil, fmt.Errorf("failed to create rate violation count instrument, %w", err)
	}

	if metrics.offers, err = meter.Int64Counter(
		offerCounterName,
		metric.WithDescription("The total number of elements accepted by streams"),
	); err != nil {
		return nil, fmt.Errorf("failed to create offer count instrument, %w", err)
	}

	if metrics.rejectedOffers, err = meter.Int64Counter(
		rejectedOfferCounterName,
		metric.WithDescription("The total number of elements rejected by streams"),
	); err != nil {
		return nil, fmt.Errorf("failed to create rejected offer count instrument, %w", err)
	}

	if metrics.polls, err = meter.Int64Counter(
		pollCounterName,
		metric.WithDescription("The total number of elements polled from streams"),
	); err != nil {
		return nil, fmt.Errorf("failed to create poll count instrument, %w", err)
	}

	return metrics, nil
}

// RecordFiring counts one firing of the named actor
func (m *Metrics) RecordFiring(ctx context.Context, actor, kind string) {
	if m == nil {
		return
	}
	m.firings.Add(ctx, 1, metric.WithAttributes(
		attribute.String(actorAttribute, actor),
		attribute.String(kindAttribute, kind),
	))
}

// RecordRateViolation counts one rate violation of the named actor
func (m *Metrics) RecordRateViolation(ctx context.Context, actor string) {
	if m == nil {
		return
	}
	m.rateViolations.Add(ctx, 1, metric.WithAttributes(attribute.String(actorAttribute, actor)))
}

// RecordOffer counts one offered element, accepted or not
func (m *Metrics) RecordOffer(ctx context.Context, accepted bool) {
	if m == nil {
		return
	}
	if accepted {
		m.offers.Add(ctx, 1)
		return
	}
	m.rejectedOffers.Add(ctx, 1)
}

// RecordPoll counts one polled element
func (m *Metrics) RecordPoll(ctx context.Context) {
	if m == nil {
		return
	}
	m.polls.Add(ctx, 1)
}

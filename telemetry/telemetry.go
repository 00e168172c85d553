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
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	instrumentationName = "github.com/tochemey/goflow"
	version             = "0.1.0"
)

// Telemetry holds the meter used to instrument streams and interpreters
type Telemetry struct {
	meterProvider metric.MeterProvider
	meter         metric.Meter
	metrics       *Metrics
}

// New creates an instance of Telemetry.
// The global meter provider is used unless WithMeterProvider is given.
func New(options ...Option) *Telemetry {
	telemetry := &Telemetry{
		meterProvider: otel.GetMeterProvider(),
	}

	for _, opt := range options {
		opt.Apply(telemetry)
	}

	telemetry.meter = telemetry.meterProvider.Meter(
		instrumentationName,
		metric.WithInstrumentationVersion(Version()),
	)

	metrics, err := NewMetrics(telemetry.meter)
	if err != nil {
		otel.Handle(err)
		metrics = nil
	}
	telemetry.metrics = metrics
	return telemetry
}

// MeterProvider returns the meter provider
func (t *Telemetry) MeterProvider() metric.MeterProvider {
	return t.meterProvider
}

// Meter returns the meter
func (t *Telemetry) Meter() metric.Meter {
	return t.meter
}

// Metrics returns the stream instruments. It returns nil when the
// instruments could not be created.
func (t *Telemetry) Metrics() *Metrics {
	return t.metrics
}

// Version returns the instrumentation version
func Version() string {
	return version
}

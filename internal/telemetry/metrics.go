// Package telemetry holds the relay's OpenTelemetry instruments.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the relay's counters. A nil *Metrics is a no-op, so callers
// never need to guard instrumentation sites.
type Metrics struct {
	issued   metric.Int64Counter
	decided  metric.Int64Counter
	consumed metric.Int64Counter
	rejected metric.Int64Counter
	reaped   metric.Int64Counter
}

// New creates the relay's counters on the given MeterProvider.
func New(mp metric.MeterProvider) (*Metrics, error) {
	meter := mp.Meter("approval-relay")

	issued, err := meter.Int64Counter("approvals.issued",
		metric.WithDescription("Approval requests issued and dispatched"))
	if err != nil {
		return nil, err
	}
	decided, err := meter.Int64Counter("decisions.recorded",
		metric.WithDescription("Decisions recorded from approver callbacks"))
	if err != nil {
		return nil, err
	}
	consumed, err := meter.Int64Counter("decisions.consumed",
		metric.WithDescription("Decisions delivered to a polling caller"))
	if err != nil {
		return nil, err
	}
	rejected, err := meter.Int64Counter("callbacks.rejected",
		metric.WithDescription("Approver callbacks dropped, by reason"))
	if err != nil {
		return nil, err
	}
	reaped, err := meter.Int64Counter("store.reaped",
		metric.WithDescription("Expired entries removed by the reaper"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		issued:   issued,
		decided:  decided,
		consumed: consumed,
		rejected: rejected,
		reaped:   reaped,
	}, nil
}

// Issued counts a dispatched approval request for the given kind.
func (m *Metrics) Issued(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.issued.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}

// Decided counts a recorded decision with its outcome.
func (m *Metrics) Decided(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.decided.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// Consumed counts a decision handed to a polling caller.
func (m *Metrics) Consumed(ctx context.Context) {
	if m == nil {
		return
	}
	m.consumed.Add(ctx, 1)
}

// Rejected counts a dropped callback with the gate that rejected it.
func (m *Metrics) Rejected(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// Reaped counts entries physically removed by a reaper sweep.
func (m *Metrics) Reaped(ctx context.Context, removed int) {
	if m == nil || removed == 0 {
		return
	}
	m.reaped.Add(ctx, int64(removed))
}

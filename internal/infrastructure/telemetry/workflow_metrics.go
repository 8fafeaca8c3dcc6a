package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when a metrics set is created without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// WorkflowMetrics tracks the referral status-update journey and the health
// of the upstream APIs it depends on.
//
// All recording methods are safe on a nil receiver.
type WorkflowMetrics struct {
	stepsTotal            *Counter
	validationErrorsTotal *Counter
	statusUpdatesTotal    *Counter
	upstreamDuration      *Histogram
}

// NewWorkflowMetrics registers the workflow instruments on meter
func NewWorkflowMetrics(meter metric.Meter) (*WorkflowMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	steps, err := NewCounter(meter,
		"acp_status_update_steps_total",
		"Status update steps completed, by step and journey",
		"{step}",
	)
	if err != nil {
		return nil, err
	}

	validationErrors, err := NewCounter(meter,
		"acp_status_update_validation_errors_total",
		"Form submissions rejected by validation, by field",
		"{error}",
	)
	if err != nil {
		return nil, err
	}

	statusUpdates, err := NewCounter(meter,
		"acp_referral_status_updates_total",
		"Referral status updates submitted upstream, by status and journey",
		"{update}",
	)
	if err != nil {
		return nil, err
	}

	upstream, err := NewHistogram(meter, HistogramOpts{
		Name:        "acp_upstream_request_duration_seconds",
		Description: "Duration of calls to upstream APIs",
		Unit:        "s",
		Boundaries:  UpstreamDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &WorkflowMetrics{
		stepsTotal:            steps,
		validationErrorsTotal: validationErrors,
		statusUpdatesTotal:    statusUpdates,
		upstreamDuration:      upstream,
	}, nil
}

// StepCompleted records a successfully submitted step
func (m *WorkflowMetrics) StepCompleted(ctx context.Context, journey, step string) {
	if m == nil {
		return
	}
	m.stepsTotal.Inc(ctx, AttrJourney.String(journey), AttrStep.String(step))
}

// ValidationFailed records a rejected form field
func (m *WorkflowMetrics) ValidationFailed(ctx context.Context, field string) {
	if m == nil {
		return
	}
	m.validationErrorsTotal.Inc(ctx, AttrField.String(field))
}

// StatusUpdated records a status change accepted by the referral API
func (m *WorkflowMetrics) StatusUpdated(ctx context.Context, journey, status string) {
	if m == nil {
		return
	}
	m.statusUpdatesTotal.Inc(ctx, AttrJourney.String(journey), AttrStatus.String(status))
}

// UpstreamRequest records the duration and outcome of one upstream call
func (m *WorkflowMetrics) UpstreamRequest(ctx context.Context, api, operation, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamDuration.RecordDuration(ctx, d,
		AttrUpstreamAPI.String(api),
		AttrUpstreamOperation.String(operation),
		AttrUpstreamOutcome.String(outcome),
	)
}

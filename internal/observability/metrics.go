package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Sumatoshi-tech/samplers/pkg/safeconv"
)

const (
	metricRunsTotal         = "samplers.runs.total"
	metricObservationsTotal = "samplers.observations.total"
	metricRunDuration       = "samplers.run.duration.seconds"
	metricErrorsTotal       = "samplers.errors.total"

	attrStatus = "status"

	// StatusOK marks a run that finished normally.
	StatusOK = "ok"
	// StatusError marks a run that failed.
	StatusError = "error"
)

// durationBucketBoundaries covers 1ms to 10min; an unbounded sampler piped
// into a slow consumer can run for a long time.
var durationBucketBoundaries = []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 60, 600}

// CommandMetrics holds the instruments recorded once per command run.
type CommandMetrics struct {
	runsTotal         metric.Int64Counter
	observationsTotal metric.Int64Counter
	runDuration       metric.Float64Histogram
	errorsTotal       metric.Int64Counter
}

// NewCommandMetrics creates the command instruments from the given meter.
func NewCommandMetrics(mt metric.Meter) (*CommandMetrics, error) {
	b := newMetricBuilder(mt)

	cm := &CommandMetrics{
		runsTotal:         b.counter(metricRunsTotal, "Total number of command runs", "{run}"),
		observationsTotal: b.counter(metricObservationsTotal, "Values read or generated", "{value}"),
		runDuration:       b.histogram(metricRunDuration, "Command duration in seconds", "s", durationBucketBoundaries...),
		errorsTotal:       b.counter(metricErrorsTotal, "Total number of failed runs", "{error}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return cm, nil
}

// RecordRun records a finished run of command that handled values observations.
func (cm *CommandMetrics) RecordRun(ctx context.Context, command, status string, values uint64, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrCommand, command),
		attribute.String(attrStatus, status),
	)

	cm.runsTotal.Add(ctx, 1, attrs)
	cm.observationsTotal.Add(ctx, safeconv.SaturateUint64ToInt64(values), attrs)
	cm.runDuration.Record(ctx, duration.Seconds(), attrs)

	if status == StatusError {
		cm.errorsTotal.Add(ctx, 1, attrs)
	}
}

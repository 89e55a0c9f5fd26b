package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/samplers/internal/config"
	"github.com/Sumatoshi-tech/samplers/internal/observability"
	"github.com/Sumatoshi-tech/samplers/pkg/safeconv"
	"github.com/Sumatoshi-tech/samplers/pkg/stream"
)

const (
	spanPrefix      = "samplers."
	attrValues      = "samplers.values"
	tracerScopeName = "samplers"
)

// Runtime carries the loaded configuration and telemetry providers to a command.
type Runtime struct {
	Config   *config.Config
	Logger   *slog.Logger
	Tracer   trace.Tracer
	Metrics  *observability.CommandMetrics
	shutdown func(ctx context.Context) error
}

type runtimeKey struct{}

func withRuntime(ctx context.Context, rt *Runtime) context.Context {
	return context.WithValue(ctx, runtimeKey{}, rt)
}

// runtimeFrom returns the Runtime installed by the root command, or a silent
// default one when a command runs on its own.
func runtimeFrom(cmd *cobra.Command) *Runtime {
	if ctx := cmd.Context(); ctx != nil {
		if rt, ok := ctx.Value(runtimeKey{}).(*Runtime); ok {
			return rt
		}
	}

	return defaultRuntime()
}

func defaultRuntime() *Runtime {
	metrics, err := observability.NewCommandMetrics(noopmetric.NewMeterProvider().Meter(tracerScopeName))
	if err != nil {
		// The no-op meter never fails to create instruments.
		panic(err)
	}

	return &Runtime{
		Config:   config.Default(),
		Logger:   slog.New(slog.DiscardHandler),
		Tracer:   nooptrace.NewTracerProvider().Tracer(tracerScopeName),
		Metrics:  metrics,
		shutdown: func(context.Context) error { return nil },
	}
}

// commandFunc does the work of one command and reports how many values it handled.
type commandFunc func(ctx context.Context, rt *Runtime) (uint64, error)

// instrument runs fn inside a span, records the run metrics and flushes telemetry.
// A closed downstream pipe ends the run successfully.
func instrument(cmd *cobra.Command, fn commandFunc) error {
	rt := runtimeFrom(cmd)
	name := cmd.Name()

	ctx, span := rt.Tracer.Start(cmd.Context(), spanPrefix+name)
	start := time.Now()

	count, err := fn(ctx, rt)
	if err != nil && stream.IsClosedPipe(err) {
		rt.Logger.DebugContext(ctx, "downstream closed", "values", humanize.Comma(safeconv.SaturateUint64ToInt64(count)))

		err = nil
	}

	status := observability.StatusOK

	span.SetAttributes(attribute.Int64(attrValues, safeconv.SaturateUint64ToInt64(count)))

	if err != nil {
		status = observability.StatusError

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()

	elapsed := time.Since(start)
	rt.Metrics.RecordRun(ctx, name, status, count, elapsed)
	rt.Logger.DebugContext(ctx, "command finished",
		"status", status, "values", humanize.Comma(safeconv.SaturateUint64ToInt64(count)), "elapsed", elapsed)

	shutdownErr := rt.shutdown(context.WithoutCancel(ctx))
	if shutdownErr != nil {
		return errors.Join(err, shutdownErr)
	}

	return err
}

// internal/telemetry/telemetry.go
// Package telemetry is the connector's OpenTelemetry touch point.  Outbound
// upstream RPCs and inbound dispatch deliveries are wrapped in spans here so
// a deployment that installs a real trace.TracerProvider gets request-level
// visibility for free; without one, the global no-op provider makes every
// call below a cheap pass-through.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/meshline/connector"

func tracer() trace.Tracer {
    return otel.Tracer(tracerName)
}

// StartUpstreamCall opens a client span around one backend gRPC call.
func StartUpstreamCall(ctx context.Context, service, method, instanceID string) (context.Context, trace.Span) {
    return tracer().Start(ctx, service+"/"+method,
        trace.WithSpanKind(trace.SpanKindClient),
        trace.WithAttributes(
            attribute.String("upstream.service", service),
            attribute.String("upstream.method", method),
            attribute.String("upstream.instance", instanceID),
        ))
}

// StartDispatch opens a server span around one inbound push delivery.
func StartDispatch(ctx context.Context, targetUserID string) (context.Context, trace.Span) {
    return tracer().Start(ctx, "DispatchService/DispatchMessage",
        trace.WithSpanKind(trace.SpanKindServer),
        trace.WithAttributes(attribute.String("dispatch.target_user_id", targetUserID)))
}

// End records err on span (if any) and finishes it.
func End(span trace.Span, err error) {
    if err != nil {
        span.RecordError(err)
        span.SetStatus(codes.Error, err.Error())
    }
    span.End()
}

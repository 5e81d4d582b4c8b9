/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package tracing

import (
	"context"
	"fmt"
	"os"

	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/lifecycle"
)

var logger = log.New("tracing")

const instrumentationVersion = "1.0.0"

// Subsystem defines a FediKit subsystem.
type Subsystem string

// Subsystems.
const (
	SubsystemActivityPub Subsystem = "activitypub"
	SubsystemAMQP        Subsystem = "pubsub/amqp"
)

// Tracing attributes.
const (
	AttributeMessageUUID       attribute.Key = "fedikit.messageUUID"
	AttributeActivityID        attribute.Key = "fedikit.activityID"
	AttributeActivityType      attribute.Key = "fedikit.activityType"
	AttributeOutboxMessageType attribute.Key = "fedikit.outboxMessageType"
)

const tracerRootName = "github.com/fedikit/fedikit"

// ProviderType specifies the type of the tracer provider.
type ProviderType = string

const (
	// ProviderNone indicates that tracing is disabled.
	ProviderNone ProviderType = ""
	// ProviderJaeger indicates that tracing data should be in Jaeger format.
	ProviderJaeger ProviderType = "JAEGER"
)

// Provider creates tracers and may be started and stopped.
type Provider interface {
	trace.TracerProvider

	Start()
	Stop()
}

// Initialize creates a tracer provider of the given type and registers it globally.
func Initialize(provider, serviceName, url string) (Provider, error) {
	switch provider {
	case ProviderNone:
		tp := newNoopTracerProvider()

		otel.SetTracerProvider(tp)

		return tp, nil

	case ProviderJaeger:
		tp, err := newJaegerTracerProvider(serviceName, url)
		if err != nil {
			return nil, fmt.Errorf("create new tracer provider: %w", err)
		}

		otel.SetTextMapPropagator(propagation.TraceContext{})

		// Register the provider globally so that imported instrumentation
		// defaults to it.
		otel.SetTracerProvider(tp)

		logger.Info("Enabled tracing", logfields.WithTracingProvider(provider),
			logfields.WithServiceName(serviceName), log.WithURL(url))

		return &otelTracerProvider{TracerProvider: tp}, nil

	default:
		return nil, fmt.Errorf("unsupported tracing provider: %s", provider)
	}
}

// Tracer returns a tracer for the given subsystem.
func Tracer(subsystem Subsystem) trace.Tracer {
	return otel.GetTracerProvider().Tracer(fmt.Sprintf("%s/pkg/%s", tracerRootName, subsystem),
		trace.WithInstrumentationVersion(instrumentationVersion))
}

// MessageUUIDAttribute returns the fedikit.messageUUID tracing attribute.
func MessageUUIDAttribute(value string) attribute.KeyValue {
	return AttributeMessageUUID.String(value)
}

// ActivityIDAttribute returns the fedikit.activityID tracing attribute.
func ActivityIDAttribute(value string) attribute.KeyValue {
	return AttributeActivityID.String(value)
}

// ActivityTypeAttribute returns the fedikit.activityType tracing attribute.
func ActivityTypeAttribute(value string) attribute.KeyValue {
	return AttributeActivityType.String(value)
}

// OutboxMessageTypeAttribute returns the fedikit.outboxMessageType tracing attribute.
func OutboxMessageTypeAttribute(value string) attribute.KeyValue {
	return AttributeOutboxMessageType.String(value)
}

// Span lazily starts a trace.Span. Start may be invoked multiple times but only
// the first invocation starts the span, and End is a no-op unless the span was
// started.
type Span struct {
	span   trace.Span
	tracer trace.Tracer
	ctx    context.Context
}

// NewSpan returns a span that will be started on the first call to Start.
func NewSpan(tracer trace.Tracer, ctx context.Context) *Span {
	return &Span{tracer: tracer, ctx: ctx}
}

// Start starts the span if it hasn't already been started and returns the span context.
func (s *Span) Start(name string, opts ...trace.SpanStartOption) context.Context {
	if s.span == nil {
		s.ctx, s.span = s.tracer.Start(s.ctx, name, opts...)
	}

	return s.ctx
}

// End ends the span if it was started.
func (s *Span) End(opts ...trace.SpanEndOption) {
	if s.span != nil {
		s.span.End(opts...)
	}
}

// newJaegerTracerProvider returns a tracer provider that batches spans to the
// Jaeger collector at the given URL.
func newJaegerTracerProvider(serviceName, url string) (*tracesdk.TracerProvider, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(url)))
	if err != nil {
		return nil, fmt.Errorf("create jaeger collector: %w", err)
	}

	rsc := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.ProcessPIDKey.Int(os.Getpid()),
	)

	return tracesdk.NewTracerProvider(tracesdk.WithBatcher(exp), tracesdk.WithResource(rsc)), nil
}

type otelTracerProvider struct {
	*tracesdk.TracerProvider
}

func (tp *otelTracerProvider) Start() {}

func (tp *otelTracerProvider) Stop() {
	if err := tp.TracerProvider.Shutdown(context.Background()); err != nil {
		logger.Warn("Error shutting down tracer provider", log.WithError(err))
	}
}

type noopTracerProvider struct {
	*lifecycle.Lifecycle
	trace.TracerProvider
}

func newNoopTracerProvider() *noopTracerProvider {
	return &noopTracerProvider{
		Lifecycle:      lifecycle.New("noopTracerProvider"),
		TracerProvider: trace.NewNoopTracerProvider(),
	}
}

/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package otelamqp

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/observability/tracing"
	"github.com/fedikit/fedikit/pkg/pubsub/spi"
)

var logger = log.New("otelamqp")

const messagingSystem = "rabbitmq"

type pubSub interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	SubscribeWithOpts(ctx context.Context, topic string, opts ...spi.Option) (<-chan *message.Message, error)
	Publish(topic string, messages ...*message.Message) error
	PublishWithOpts(topic string, msg *message.Message, opts ...spi.Option) error
	IsConnected() bool
	Close() error
}

// PubSub wraps a publisher/subscriber with OpenTelemetry tracing. The span
// context is propagated in the message metadata so that consumers continue
// the trace started by the publisher.
type PubSub struct {
	pubSub

	tracer      trace.Tracer
	propagators propagation.TextMapPropagator
}

// New returns a traced wrapper around the given publisher/subscriber.
func New(p pubSub) *PubSub {
	return &PubSub{
		pubSub:      p,
		tracer:      tracing.Tracer(tracing.SubsystemAMQP),
		propagators: otel.GetTextMapPropagator(),
	}
}

// Publish publishes the given message to the queue within a producer span.
func (p *PubSub) Publish(queue string, messages ...*message.Message) error {
	if len(messages) == 0 {
		logger.Warn("No messages to publish.")

		return nil
	}

	if len(messages) > 1 {
		logger.Warn("Tracing is supported for only one message at a time. No tracing will be performed.",
			logfields.WithTotal(len(messages)))

		return p.pubSub.Publish(queue, messages...)
	}

	msg := messages[0]

	span := p.startSpan(queue, msg, "publish", semconv.MessagingOperationPublish, trace.SpanKindProducer)
	defer span.End()

	err := p.pubSub.Publish(queue, msg)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

// PublishWithOpts publishes the given message to the queue within a producer span.
func (p *PubSub) PublishWithOpts(queue string, msg *message.Message, opts ...spi.Option) error {
	span := p.startSpan(queue, msg, "publish", semconv.MessagingOperationPublish, trace.SpanKindProducer)
	defer span.End()

	err := p.pubSub.PublishWithOpts(queue, msg, opts...)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}

	return err
}

// Subscribe subscribes to the queue. Each received message is traced within a consumer span.
func (p *PubSub) Subscribe(ctx context.Context, queue string) (<-chan *message.Message, error) {
	msgChan, err := p.pubSub.Subscribe(ctx, queue)
	if err != nil {
		return nil, err
	}

	return p.traced(queue, msgChan), nil
}

// SubscribeWithOpts subscribes to the queue. Each received message is traced within a consumer span.
func (p *PubSub) SubscribeWithOpts(ctx context.Context, queue string, opts ...spi.Option) (<-chan *message.Message, error) {
	msgChan, err := p.pubSub.SubscribeWithOpts(ctx, queue, opts...)
	if err != nil {
		return nil, err
	}

	return p.traced(queue, msgChan), nil
}

// traced returns a channel that relays messages from msgChan, starting a
// consumer span around the delivery of each message.
func (p *PubSub) traced(queue string, msgChan <-chan *message.Message) <-chan *message.Message {
	subChan := make(chan *message.Message)

	go func() {
		for msg := range msgChan {
			span := p.startSpan(queue, msg, "receive", semconv.MessagingOperationReceive, trace.SpanKindConsumer)

			subChan <- msg

			span.End()
		}
	}()

	return subChan
}

// startSpan starts a span for the given operation. The parent context is taken from
// the message metadata (if present) and the new span context is injected back into
// the metadata.
func (p *PubSub) startSpan(queue string, msg *message.Message, operation string,
	operationAttr attribute.KeyValue, kind trace.SpanKind) trace.Span {
	carrier := NewMessageCarrier(msg)

	ctx := p.propagators.Extract(context.Background(), carrier)

	ctx, span := p.tracer.Start(ctx, fmt.Sprintf("%s %s", queue, operation),
		trace.WithSpanKind(kind),
		trace.WithAttributes(
			semconv.MessagingSystem(messagingSystem),
			semconv.MessagingDestinationKindQueue,
			semconv.MessagingDestinationName(queue),
			semconv.MessagingMessagePayloadSizeBytes(len(msg.Payload)),
			operationAttr,
			tracing.MessageUUIDAttribute(msg.UUID),
		),
	)

	p.propagators.Inject(ctx, carrier)

	return span
}

var _ propagation.TextMapCarrier = (*MessageCarrier)(nil)

// MessageCarrier propagates trace context in the metadata of a watermill message.
type MessageCarrier struct {
	msg *message.Message
}

// NewMessageCarrier returns a carrier over the given message's metadata.
func NewMessageCarrier(msg *message.Message) *MessageCarrier {
	return &MessageCarrier{msg: msg}
}

// Get returns the metadata value for the given key.
func (c *MessageCarrier) Get(key string) string {
	return c.msg.Metadata.Get(key)
}

// Set sets the metadata value for the given key.
func (c *MessageCarrier) Set(key, val string) {
	c.msg.Metadata.Set(key, val)
}

// Keys returns the metadata keys.
func (c *MessageCarrier) Keys() []string {
	var keys []string

	for key := range c.msg.Metadata {
		keys = append(keys, key)
	}

	return keys
}

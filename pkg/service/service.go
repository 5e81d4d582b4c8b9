/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package service wires the ActivityPub protocol engine to its transports: an
// HTTP/message-queue inbox on the receive side and a message-queue outbox on
// the send side.
package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/fedikit/fedikit/pkg/client/transport"
	"github.com/fedikit/fedikit/pkg/httpserver/auth"
	"github.com/fedikit/fedikit/pkg/lifecycle"
	pubsubspi "github.com/fedikit/fedikit/pkg/pubsub/spi"
	"github.com/fedikit/fedikit/pkg/restapi/common"
	"github.com/fedikit/fedikit/pkg/service/actor"
	"github.com/fedikit/fedikit/pkg/service/inbox"
	"github.com/fedikit/fedikit/pkg/service/outbox"
	"github.com/fedikit/fedikit/pkg/service/resolver"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

const (
	inboxActivitiesTopic  = "fedikit.activity.inbox"
	outboxActivitiesTopic = "fedikit.activity.outbox"
)

type pubSub interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	SubscribeWithOpts(ctx context.Context, topic string, opts ...pubsubspi.Option) (<-chan *message.Message, error)
	Publish(topic string, messages ...*message.Message) error
	Close() error
}

type signatureVerifier interface {
	VerifyRequest(req *http.Request) (bool, *url.URL, error)
}

type metricsProvider interface {
	OutboxPostTime(value time.Duration)
	OutboxResolveInboxesTime(value time.Duration)
	OutboxIncrementActivityCount(activityType string)
}

// Config holds the configuration parameters for an ActivityPub service.
type Config struct {
	ServiceName           string
	ServiceEndpoint       string
	InboxIRI              *url.URL
	OutboxIRI             *url.URL
	MaxConcurrentRequests int
	CacheSize             int
	CacheExpiration       time.Duration
	BufferSize            int
	SubscriberPoolSize    int
	MaxRecursionDepth     int
	AuthTokens            auth.Config
}

// Service is an ActivityPub service with an inbox, an outbox and the engine
// that applies the side effects of the activities flowing through them.
type Service struct {
	*lifecycle.Lifecycle

	engine *actor.Actor
	inbox  *inbox.Inbox
	outbox *outbox.Outbox
}

// New returns a new ActivityPub service.
func New(cfg *Config, actx *spi.Context, pubSub pubSub, tp *transport.Provider,
	sigVerifier signatureVerifier, metrics metricsProvider, handlerOpts ...spi.HandlerOpt) (*Service, error) {
	if actx.Transport == nil && tp != nil {
		actx.Transport = &transportProvider{provider: tp}
	}

	rslv := resolver.New(&resolver.Config{
		ServiceName:           cfg.ServiceName,
		MaxConcurrentRequests: cfg.MaxConcurrentRequests,
		CacheSize:             cfg.CacheSize,
		CacheExpiration:       cfg.CacheExpiration,
	}, actx.Store)

	eng := actor.New(&actor.Config{
		ServiceName:           cfg.ServiceName,
		MaxConcurrentRequests: cfg.MaxConcurrentRequests,
		CacheSize:             cfg.CacheSize,
		CacheExpiration:       cfg.CacheExpiration,
	}, actx, actor.WithResolver(rslv))

	ib, err := inbox.New(
		&inbox.Config{
			ServiceEndpoint: cfg.ServiceEndpoint,
			InboxIRI:        cfg.InboxIRI,
			Topic:           inboxActivitiesTopic,
			BufferSize:      cfg.BufferSize,
			AuthTokens:      cfg.AuthTokens,
		},
		actx, pubSub, eng, sigVerifier,
	)
	if err != nil {
		return nil, fmt.Errorf("create inbox: %w", err)
	}

	ob, err := outbox.New(
		&outbox.Config{
			ServiceName:        cfg.ServiceName,
			OutboxIRI:          cfg.OutboxIRI,
			Topic:              outboxActivitiesTopic,
			MaxRecursionDepth:  cfg.MaxRecursionDepth,
			SubscriberPoolSize: cfg.SubscriberPoolSize,
		},
		actx, pubSub, eng, rslv, metrics, handlerOpts...,
	)
	if err != nil {
		return nil, fmt.Errorf("create outbox: %w", err)
	}

	s := &Service{
		engine: eng,
		inbox:  ib,
		outbox: ob,
	}

	s.Lifecycle = lifecycle.New(cfg.ServiceName,
		lifecycle.WithStart(s.start),
		lifecycle.WithStop(s.stop),
	)

	return s, nil
}

func (s *Service) start() {
	s.inbox.Start()
	s.outbox.Start()
}

func (s *Service) stop() {
	s.outbox.Stop()
	s.inbox.Stop()
	s.engine.Stop()
}

// Engine returns the side-effect engine, which also serves the protocol's
// HTTP orchestration.
func (s *Service) Engine() *actor.Actor {
	return s.engine
}

// Outbox returns the outbox, to which activities may be posted.
func (s *Service) Outbox() spi.Outbox {
	return s.outbox
}

// InboxHTTPHandler returns the HTTP handler for the inbox, which must be
// registered with an HTTP server.
func (s *Service) InboxHTTPHandler() common.HTTPHandler {
	return s.inbox.HTTPHandler()
}

// Subscribe allows a client to receive the activities that were accepted by
// the inbox handler.
func (s *Service) Subscribe() <-chan *vocab.ActivityType {
	return s.engine.InboxHandler().Subscribe()
}

// transportProvider adapts the concrete HTTP-signature transport to the
// engine's transport interface.
type transportProvider struct {
	provider *transport.Provider
}

func (p *transportProvider) NewTransport(boxIRI *url.URL, appAgent string) (spi.Transport, error) {
	return p.provider.NewTransport(boxIRI, appAgent)
}

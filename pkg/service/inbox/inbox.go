/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package inbox

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/message/router/plugin"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	apperrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/httpserver/auth"
	"github.com/fedikit/fedikit/pkg/lifecycle"
	"github.com/fedikit/fedikit/pkg/pubsub"
	"github.com/fedikit/fedikit/pkg/pubsub/wmlogger"
	"github.com/fedikit/fedikit/pkg/restapi/common"
	"github.com/fedikit/fedikit/pkg/service/inbox/httpsubscriber"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

var logger = log.New("activitypub_service")

type pubSub interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	Publish(topic string, messages ...*message.Message) error
	Close() error
}

type receiver interface {
	Receive(ctx context.Context, actx *spi.Context, inboxIRI *url.URL, activity *vocab.ActivityType) error
}

type signatureVerifier interface {
	VerifyRequest(req *http.Request) (bool, *url.URL, error)
}

// Config holds the configuration parameters for the inbox service.
type Config struct {
	ServiceEndpoint string
	InboxIRI        *url.URL
	Topic           string
	BufferSize      int
	AuthTokens      auth.Config
}

// Inbox is the receive side of the federation transport. Incoming HTTP requests
// are authenticated and posted to a message queue, and a subscriber applies the
// receive-side effects of each activity.
type Inbox struct {
	*Config
	*lifecycle.Lifecycle

	router         *message.Router
	httpSubscriber *httpsubscriber.Subscriber
	msgChannel     <-chan *message.Message
	receiver       receiver
	actx           *spi.Context
}

// New returns a new inbox service.
func New(cfg *Config, actx *spi.Context, pubSub pubSub, rcv receiver,
	sigVerifier signatureVerifier) (*Inbox, error) {
	h := &Inbox{
		Config:   cfg,
		receiver: rcv,
		actx:     actx,
	}

	h.Lifecycle = lifecycle.New(cfg.ServiceEndpoint,
		lifecycle.WithStart(h.start),
		lifecycle.WithStop(h.stop),
	)

	msgChan, err := pubSub.Subscribe(context.Background(), cfg.Topic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to topic [%s]: %w", cfg.Topic, err)
	}

	httpSubscriber := httpsubscriber.New(
		&httpsubscriber.Config{
			ServiceEndpoint: cfg.ServiceEndpoint,
			BufferSize:      cfg.BufferSize,
			AuthTokens:      cfg.AuthTokens,
		},
		sigVerifier,
	)

	router, err := message.NewRouter(message.RouterConfig{}, wmlogger.New())
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}

	router.AddMiddleware(middleware.Recoverer, middleware.CorrelationID)

	router.AddPlugin(plugin.SignalsHandler)

	router.AddHandler(
		cfg.ServiceEndpoint, cfg.ServiceEndpoint,
		httpSubscriber, cfg.Topic, pubSub,
		func(msg *message.Message) ([]*message.Message, error) {
			// Simply forward the message.
			return message.Messages{msg}, nil
		},
	)

	h.router = router
	h.httpSubscriber = httpSubscriber
	h.msgChannel = msgChan

	return h, nil
}

// HTTPHandler returns the HTTP handler which must be registered with an HTTP server.
func (h *Inbox) HTTPHandler() common.HTTPHandler {
	return h.httpSubscriber
}

func (h *Inbox) start() {
	go h.route()

	go h.listen()

	// The HTTP subscriber needs to be started after the router is ready.
	<-h.router.Running()
}

func (h *Inbox) stop() {
	if err := h.router.Close(); err != nil {
		logger.Warn("Error closing router", logfields.WithServiceEndpoint(h.ServiceEndpoint), log.WithError(err))
	} else {
		logger.Debug("Closed router", logfields.WithServiceEndpoint(h.ServiceEndpoint))
	}
}

func (h *Inbox) route() {
	logger.Debug("Starting router", logfields.WithServiceEndpoint(h.ServiceEndpoint))

	if err := h.router.Run(context.Background()); err != nil {
		// This happens on startup so the best thing to do is to panic.
		panic(err)
	}

	logger.Debug("Router stopped", logfields.WithServiceEndpoint(h.ServiceEndpoint))
}

func (h *Inbox) listen() {
	logger.Debug("Starting message listener", logfields.WithServiceEndpoint(h.ServiceEndpoint))

	for msg := range h.msgChannel {
		logger.Debug("Got new message", logfields.WithMessageID(msg.UUID),
			logfields.WithServiceEndpoint(h.ServiceEndpoint))

		h.handle(msg)
	}

	logger.Debug("Message listener stopped", logfields.WithServiceEndpoint(h.ServiceEndpoint))
}

func (h *Inbox) handle(msg *message.Message) {
	ctx := pubsub.ContextFromMessage(msg)

	activity := &vocab.ActivityType{}

	if err := vocab.UnmarshalJSON(msg.Payload, activity); err != nil {
		logger.Errorc(ctx, "Error unmarshalling activity message. Dropping.",
			logfields.WithMessageID(msg.UUID), log.WithError(err))

		// The message is not going to get any better with a retry.
		msg.Ack()

		return
	}

	blocked, err := h.blocked(ctx, activity)
	if err != nil {
		logger.Errorc(ctx, "Error checking block list",
			logfields.WithActivityID(activity.ID()), log.WithError(err))

		msg.Nack()

		return
	}

	if blocked {
		logger.Infoc(ctx, "Ignoring activity from blocked actor",
			logfields.WithActivityID(activity.ID()), logfields.WithActorIRI(activity.Actor()))

		msg.Ack()

		return
	}

	err = h.receiver.Receive(ctx, h.actx, h.InboxIRI, activity)

	switch {
	case err == nil:
		logger.Debugc(ctx, "Successfully handled message", logfields.WithMessageID(msg.UUID),
			logfields.WithActivityID(activity.ID()))

		msg.Ack()

	case apperrors.IsTransient(err):
		logger.Warnc(ctx, "Transient error handling message. The message will be retried.",
			logfields.WithMessageID(msg.UUID), logfields.WithActivityID(activity.ID()), log.WithError(err))

		msg.Nack()

	default:
		// A persistent error means a retry would fail the same way, so the
		// message is acknowledged and dropped.
		logger.Warnc(ctx, "Persistent error handling message. Dropping.",
			logfields.WithMessageID(msg.UUID), logfields.WithActivityID(activity.ID()), log.WithError(err))

		msg.Ack()
	}
}

func (h *Inbox) blocked(ctx context.Context, activity *vocab.ActivityType) (bool, error) {
	if h.actx.Federated == nil {
		return false, nil
	}

	actors := activity.Actors()
	if len(actors) == 0 {
		return false, nil
	}

	return h.actx.Federated.Blocked(ctx, h.actx, actors)
}

/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/addressing"
	apperrors "github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/lifecycle"
	"github.com/fedikit/fedikit/pkg/pubsub"
	pubsubspi "github.com/fedikit/fedikit/pkg/pubsub/spi"
	"github.com/fedikit/fedikit/pkg/service/spi"
	"github.com/fedikit/fedikit/pkg/vocab"
)

const (
	loggerModule = "activitypub_service"

	defaultMaxRecursionDepth  = 2
	defaultSubscriberPoolSize = 5
)

type pubSub interface {
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
	SubscribeWithOpts(ctx context.Context, topic string, opts ...pubsubspi.Option) (<-chan *message.Message, error)
	Publish(topic string, messages ...*message.Message) error
	Close() error
}

type engine interface {
	PostOutbox(ctx context.Context, actx *spi.Context, outboxIRI *url.URL, activity *vocab.ActivityType,
		raw vocab.Document) (bool, error)
	AddNewIDs(ctx context.Context, actx *spi.Context, activity *vocab.ActivityType) error
}

type inboxResolver interface {
	ResolveInboxes(ctx context.Context, t spi.Transport, recipients, hidden []*url.URL,
		excludeInbox *url.URL, maxDepth int) ([]*url.URL, error)
}

type metricsProvider interface {
	OutboxPostTime(value time.Duration)
	OutboxResolveInboxesTime(value time.Duration)
	OutboxIncrementActivityCount(activityType string)
}

// Config holds configuration parameters for the outbox.
type Config struct {
	ServiceName        string
	OutboxIRI          *url.URL
	Topic              string
	MaxRecursionDepth  int
	SubscriberPoolSize int
}

// Outbox posts activities to the local outbox, applies the send-side effects
// and delivers the activity to its recipients. Recipient resolution and
// delivery are performed asynchronously via a message queue, so that a failed
// delivery to one recipient may be retried without affecting the others.
type Outbox struct {
	*Config
	*lifecycle.Lifecycle

	actx              *spi.Context
	engine            engine
	resolver          inboxResolver
	publisher         message.Publisher
	msgChan           <-chan *message.Message
	undeliverableChan <-chan *message.Message
	handlers          *spi.Handlers
	jsonMarshal       func(v interface{}) ([]byte, error)
	jsonUnmarshal     func(data []byte, v interface{}) error
	metrics           metricsProvider
	logger            *log.Log
}

// New returns a new outbox service.
func New(cnfg *Config, actx *spi.Context, pubSub pubSub, eng engine, rslv inboxResolver,
	metrics metricsProvider, handlerOpts ...spi.HandlerOpt) (*Outbox, error) {
	cfg := populateConfigDefaults(cnfg)

	logger := log.New(loggerModule, log.WithFields(logfields.WithServiceName(cfg.ServiceName)))

	options := &spi.Handlers{}

	for _, opt := range handlerOpts {
		opt(options)
	}

	msgChan, err := pubSub.SubscribeWithOpts(context.Background(), cfg.Topic,
		pubsubspi.WithPool(cfg.SubscriberPoolSize))
	if err != nil {
		return nil, fmt.Errorf("subscribe to topic [%s]: %w", cfg.Topic, err)
	}

	undeliverableChan, err := pubSub.Subscribe(context.Background(), pubsubspi.UndeliverableTopic)
	if err != nil {
		return nil, fmt.Errorf("subscribe to topic [%s]: %w", pubsubspi.UndeliverableTopic, err)
	}

	h := &Outbox{
		Config:            &cfg,
		actx:              actx,
		engine:            eng,
		resolver:          rslv,
		publisher:         pubSub,
		msgChan:           msgChan,
		undeliverableChan: undeliverableChan,
		handlers:          options,
		jsonMarshal:       json.Marshal,
		jsonUnmarshal:     json.Unmarshal,
		metrics:           metrics,
		logger:            logger,
	}

	h.Lifecycle = lifecycle.New(cfg.ServiceName,
		lifecycle.WithStart(h.start),
		lifecycle.WithStop(h.stop),
	)

	return h, nil
}

func (h *Outbox) start() {
	go h.listen()
	go h.listenUndeliverable()
}

func (h *Outbox) stop() {
	h.logger.Info("Outbox stopped")
}

func (h *Outbox) listen() {
	h.logger.Debug("Starting message listener")

	for msg := range h.msgChan {
		h.logger.Debug("Got new message", logfields.WithMessageID(msg.UUID))

		h.handle(msg)
	}

	h.logger.Debug("Message listener stopped")
}

func (h *Outbox) listenUndeliverable() {
	for msg := range h.undeliverableChan {
		activityMsg := &activityMessage{}

		if err := h.jsonUnmarshal(msg.Payload, activityMsg); err != nil {
			h.logger.Warn("Error unmarshalling undeliverable message",
				logfields.WithMessageID(msg.UUID), log.WithError(err))

			msg.Ack()

			continue
		}

		if activityMsg.Type == deliverType && h.handlers.UndeliverableHandler != nil {
			h.logger.Warn("Activity could not be delivered", logfields.WithActivityID(activityMsg.Activity.ID()),
				logfields.WithTargetIRI(activityMsg.TargetIRI))

			h.handlers.UndeliverableHandler.HandleUndeliverableActivity(activityMsg.Activity,
				activityMsg.TargetIRI.String())
		}

		msg.Ack()
	}
}

type messageType string

const (
	broadcastType         messageType = "broadcast"
	deliverType           messageType = "deliver"
	resolveAndDeliverType messageType = "resolve-and-deliver"
)

type activityMessage struct {
	Type        messageType                  `json:"type"`
	Activity    *vocab.ActivityType          `json:"activity"`
	TargetIRI   *vocab.URLProperty           `json:"target,omitempty"`
	Hidden      bool                         `json:"hidden,omitempty"`
	ExcludeIRIs *vocab.URLCollectionProperty `json:"exclude,omitempty"`
}

// Post posts an activity to the outbox and returns the id of the activity that
// was posted. If the activity does not specify an id then a unique id is
// minted for it. An exclude list may be provided so that the activity is not
// delivered to the given URLs.
func (h *Outbox) Post(ctx context.Context, activity *vocab.ActivityType, exclude ...*url.URL) (*url.URL, error) {
	if h.State() != lifecycle.StateStarted {
		return nil, lifecycle.ErrNotStarted
	}

	h.incrementCount(activity.Type().Types())

	startTime := time.Now()
	defer func() {
		h.metrics.OutboxPostTime(time.Since(startTime))
	}()

	if activity.ID().URL() == nil {
		if err := h.engine.AddNewIDs(ctx, h.actx, activity); err != nil {
			return nil, fmt.Errorf("mint activity id: %w", err)
		}
	}

	if err := h.publishBroadcastMessage(ctx, activity, exclude); err != nil {
		return nil, fmt.Errorf("publish activity message [%s]: %w", activity.ID(), err)
	}

	return activity.ID().URL(), nil
}

func (h *Outbox) handle(msg *message.Message) {
	activity, err := h.handleActivityMsg(msg)

	switch {
	case err == nil:
		h.logger.Debug("Acking activity message", logfields.WithMessageID(msg.UUID),
			logfields.WithActivityID(activity.ID()))

		msg.Ack()

	case apperrors.IsTransient(err):
		h.logger.Warn("Transient error handling message", logfields.WithMessageID(msg.UUID), log.WithError(err))

		msg.Nack()

	default:
		// Ack the message to indicate that it should not be redelivered since
		// this is a persistent error.
		h.logger.Warn("Persistent error handling message", logfields.WithMessageID(msg.UUID), log.WithError(err))

		msg.Ack()
	}
}

func (h *Outbox) handleActivityMsg(msg *message.Message) (*vocab.ActivityType, error) {
	ctx := pubsub.ContextFromMessage(msg)

	activityMsg := &activityMessage{}

	if err := h.jsonUnmarshal(msg.Payload, activityMsg); err != nil {
		return nil, fmt.Errorf("unmarshal activity message [%s]: %w", msg.UUID, err)
	}

	switch activityMsg.Type {
	case broadcastType:
		h.logger.Debugc(ctx, "Handling 'broadcast' activity message",
			logfields.WithMessageID(msg.UUID), logfields.WithActivityID(activityMsg.Activity.ID()))

		if err := h.handleBroadcast(ctx, activityMsg.Activity, activityMsg.ExcludeIRIs.URLs()); err != nil {
			return nil, fmt.Errorf("handle 'broadcast' message for activity [%s]: %w",
				activityMsg.Activity.ID(), err)
		}

		return activityMsg.Activity, nil

	case resolveAndDeliverType:
		h.logger.Debugc(ctx, "Handling 'resolve-and-deliver' activity message", logfields.WithMessageID(msg.UUID),
			logfields.WithActivityID(activityMsg.Activity.ID()), logfields.WithTargetIRI(activityMsg.TargetIRI))

		if err := h.handleResolveAndDeliver(ctx, activityMsg.Activity, activityMsg.TargetIRI.URL(),
			activityMsg.Hidden); err != nil {
			return nil, fmt.Errorf("handle 'resolve-and-deliver' message for activity [%s] to [%s]: %w",
				activityMsg.Activity.ID(), activityMsg.TargetIRI, err)
		}

		return activityMsg.Activity, nil

	case deliverType:
		h.logger.Debugc(ctx, "Handling 'deliver' activity message", logfields.WithMessageID(msg.UUID),
			logfields.WithActivityID(activityMsg.Activity.ID()), logfields.WithTargetIRI(activityMsg.TargetIRI))

		if err := h.deliver(ctx, activityMsg.Activity, activityMsg.TargetIRI.URL()); err != nil {
			return nil, fmt.Errorf("handle 'deliver' message for activity [%s] to [%s]: %w",
				activityMsg.Activity.ID(), activityMsg.TargetIRI, err)
		}

		return activityMsg.Activity, nil

	default:
		return nil, fmt.Errorf("unsupported activity message type [%s]", activityMsg.Type)
	}
}

func (h *Outbox) handleBroadcast(ctx context.Context, activity *vocab.ActivityType, excludeIRIs []*url.URL) error {
	raw, err := vocab.MarshalToDoc(activity)
	if err != nil {
		return fmt.Errorf("marshal activity [%s]: %w", activity.ID(), err)
	}

	deliverable, err := h.engine.PostOutbox(ctx, h.actx, h.OutboxIRI, activity, raw)
	if err != nil {
		return fmt.Errorf("post to outbox: %w", err)
	}

	if !deliverable || !h.actx.FederatedEnabled() {
		h.logger.Debug("Activity will not federate", logfields.WithActivityID(activity.ID()))

		return nil
	}

	hidden := addressing.HiddenRecipients(activity.ObjectType)

	recipients, _ := addressing.ExcludePublic(addressing.Recipients(activity.ObjectType))
	recipients = addressing.DedupeIRIs(recipients, append(hidden, excludeIRIs...))

	// The hidden recipients are dropped from the activity before it goes over
	// the wire.
	addressing.StripHiddenRecipients(activity)

	for _, r := range recipients {
		if err := h.publishResolveAndDeliverMessage(ctx, activity, r, false); err != nil {
			return fmt.Errorf("publish activity for resolve [%s]: %w", r, err)
		}
	}

	for _, r := range addressing.DedupeIRIs(hidden, excludeIRIs) {
		if err := h.publishResolveAndDeliverMessage(ctx, activity, r, true); err != nil {
			return fmt.Errorf("publish activity for resolve [%s]: %w", r, err)
		}
	}

	return nil
}

func (h *Outbox) handleResolveAndDeliver(ctx context.Context, activity *vocab.ActivityType,
	target *url.URL, hidden bool) error {
	startTime := time.Now()

	defer func() {
		h.metrics.OutboxResolveInboxesTime(time.Since(startTime))
	}()

	t, err := h.actx.Transport.NewTransport(h.OutboxIRI, h.actx.AppAgent)
	if err != nil {
		return fmt.Errorf("new transport for outbox [%s]: %w", h.OutboxIRI, err)
	}

	ourInbox, err := h.inboxForOutbox(ctx)
	if err != nil {
		return err
	}

	var recipients, hiddenRecipients []*url.URL

	if hidden {
		hiddenRecipients = []*url.URL{target}
	} else {
		recipients = []*url.URL{target}
	}

	inboxes, err := h.resolver.ResolveInboxes(ctx, t, recipients, hiddenRecipients, ourInbox, h.MaxRecursionDepth)
	if err != nil {
		if apperrors.IsTransient(err) {
			return fmt.Errorf("resolve inboxes for [%s]: %w", target, err)
		}

		h.logger.Warn("Persistent error resolving some inboxes. They will be ignored.",
			logfields.WithTargetIRI(target), log.WithError(err))
	}

	for _, inbox := range inboxes {
		if err := h.publishDeliverMessage(ctx, activity, inbox); err != nil {
			// The only time publish returns an error is if there's something
			// wrong with the local server. (Maybe it's being shut down.)
			return fmt.Errorf("publish activity to inbox [%s]: %w", inbox, err)
		}
	}

	return nil
}

func (h *Outbox) deliver(ctx context.Context, activity *vocab.ActivityType, target *url.URL) error {
	t, err := h.actx.Transport.NewTransport(h.OutboxIRI, h.actx.AppAgent)
	if err != nil {
		return fmt.Errorf("new transport for outbox [%s]: %w", h.OutboxIRI, err)
	}

	payload, err := vocab.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshal activity [%s]: %w", activity.ID(), err)
	}

	return t.Deliver(ctx, payload, target)
}

func (h *Outbox) inboxForOutbox(ctx context.Context) (*url.URL, error) {
	actorIRI, err := h.actx.Store.ActorForOutbox(ctx, h.OutboxIRI)
	if err != nil {
		return nil, fmt.Errorf("actor for outbox [%s]: %w", h.OutboxIRI, err)
	}

	inbox, _, err := h.actx.Store.InboxForActor(ctx, actorIRI)
	if err != nil {
		return nil, fmt.Errorf("inbox for actor [%s]: %w", actorIRI, err)
	}

	return inbox, nil
}

func (h *Outbox) publishBroadcastMessage(ctx context.Context, activity *vocab.ActivityType,
	excludeIRIs []*url.URL) error {
	activityMsg := &activityMessage{
		Type:        broadcastType,
		Activity:    activity,
		ExcludeIRIs: vocab.NewURLCollectionProperty(excludeIRIs...),
	}

	return h.publishMessage(ctx, activityMsg)
}

func (h *Outbox) publishResolveAndDeliverMessage(ctx context.Context, activity *vocab.ActivityType,
	target *url.URL, hidden bool) error {
	activityMsg := &activityMessage{
		Type:      resolveAndDeliverType,
		Activity:  activity,
		TargetIRI: vocab.NewURLProperty(target),
		Hidden:    hidden,
	}

	return h.publishMessage(ctx, activityMsg)
}

func (h *Outbox) publishDeliverMessage(ctx context.Context, activity *vocab.ActivityType, target *url.URL) error {
	activityMsg := &activityMessage{
		Type:      deliverType,
		Activity:  activity,
		TargetIRI: vocab.NewURLProperty(target),
	}

	return h.publishMessage(ctx, activityMsg)
}

func (h *Outbox) publishMessage(ctx context.Context, activityMsg *activityMessage) error {
	msgBytes, err := h.jsonMarshal(activityMsg)
	if err != nil {
		return apperrors.NewBadRequestf("marshal message: %s", err)
	}

	msg := pubsub.NewMessage(ctx, msgBytes)

	h.logger.Debugc(ctx, "Publishing activity message to topic", logfields.WithMessageID(msg.UUID),
		logfields.WithActivityID(activityMsg.Activity.ID()), logfields.WithTopic(h.Topic))

	return h.publisher.Publish(h.Topic, msg)
}

func (h *Outbox) incrementCount(types []vocab.Type) {
	for _, activityType := range types {
		h.metrics.OutboxIncrementActivityCount(string(activityType))
	}
}

func populateConfigDefaults(cnfg *Config) Config {
	cfg := *cnfg

	if cfg.MaxRecursionDepth <= 0 {
		cfg.MaxRecursionDepth = defaultMaxRecursionDepth
	}

	if cfg.SubscriberPoolSize == 0 {
		cfg.SubscriberPoolSize = defaultSubscriberPoolSize
	}

	return cfg
}

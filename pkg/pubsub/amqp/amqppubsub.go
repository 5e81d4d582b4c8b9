/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package amqp

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill-amqp/v2/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/cenkalti/backoff"
	"github.com/rabbitmq/amqp091-go"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
	"github.com/fedikit/fedikit/pkg/errors"
	"github.com/fedikit/fedikit/pkg/lifecycle"
	"github.com/fedikit/fedikit/pkg/pubsub/spi"
	"github.com/fedikit/fedikit/pkg/pubsub/wmlogger"
)

const loggerModule = "pubsub"

var logger = log.New(loggerModule)

const (
	defaultMaxConnectRetries     = 25
	defaultMaxConnectInterval    = 5 * time.Second
	defaultMaxConnectElapsedTime = 3 * time.Minute
	defaultMaxConnectionChannels = 1000

	defaultMaxRedeliveryAttempts     = 10
	defaultRedeliveryMultiplier      = 1.5
	defaultRedeliveryInitialInterval = 2 * time.Second
	defaultMaxRedeliveryInterval     = 30 * time.Second

	exchange           = "fedikit"
	redeliveryQueue    = "fedikit.redelivery"
	redeliveryExchange = "fedikit.redelivery"
	waitExchange       = "fedikit.wait"
	waitQueue          = "fedikit.wait"
	directExchangeType = "direct"

	expiredReason = "expired"

	metadataDeadLetterExchange   = "x-dead-letter-exchange"
	metadataDeadLetterRoutingKey = "x-dead-letter-routing-key"
	metadataDeath                = "x-death"
	metadataFirstDeathQueue      = "x-first-death-queue"
	metadataFirstDeathReason     = "x-first-death-reason"
	metadataRedeliveryCount      = "fedikit-redelivery-count"
	metadataQueue                = "fedikit-queue"
	metadataExpiration           = "expiration"
)

// Config holds the configuration for the publisher/subscriber.
type Config struct {
	URI                       string
	MaxConnectRetries         uint64
	MaxConnectionChannels     int
	PublisherChannelPoolSize  int
	PublisherConfirmDelivery  bool
	MaxRedeliveryAttempts     int
	RedeliveryMultiplier      float64
	RedeliveryInitialInterval time.Duration
	MaxRedeliveryInterval     time.Duration
}

type closeable interface {
	Close() error
}

type subscriber interface {
	closeable
	Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error)
}

type initializingSubscriber interface {
	subscriber
	SubscribeInitialize(topic string) error
}

type publisher interface {
	closeable
	Publish(topic string, messages ...*message.Message) error
}

type connection interface {
	closeable
	IsConnected() bool
}

type connMgr interface {
	closeable
	getConnection(shared bool) (connection, error)
	isConnected() bool
}

type createSubscriberFunc func(cfg *amqp.Config, conn connection) (initializingSubscriber, error)

type createConnectionFunc func(cfg amqp.ConnectionConfig) (connection, error)

// PubSub implements a publisher/subscriber that connects to an AMQP-compatible message queue.
type PubSub struct {
	*lifecycle.Lifecycle
	Config

	amqpConfig           amqp.Config
	amqpRedeliveryConfig amqp.Config
	amqpWaitConfig       amqp.Config
	connMgr              connMgr
	createSubscriber     createSubscriberFunc
	createPublisher      createPublisherFunc
	subscriber           subscriber
	publisher            publisher
	redeliverySubscriber subscriber
	waitSubscriber       initializingSubscriber
	waitPublisher        publisher
	pools                []*pooledSubscriber
	mutex                sync.RWMutex
	redeliveryChan       <-chan *message.Message
}

// New returns a new AMQP publisher/subscriber.
func New(cfg Config) *PubSub {
	cfg = initConfig(cfg)

	p := &PubSub{
		Config:               cfg,
		amqpConfig:           newQueueConfig(cfg),
		amqpRedeliveryConfig: newRedeliveryQueueConfig(cfg),
		amqpWaitConfig:       newWaitQueueConfig(cfg),
	}

	p.Lifecycle = lifecycle.New("amqp",
		lifecycle.WithStart(p.start),
		lifecycle.WithStop(p.stop))

	p.connMgr = newConnectionMgr(p.amqpConfig.Connection)

	p.createSubscriber = func(cfg *amqp.Config, conn connection) (initializingSubscriber, error) {
		wrapper, ok := conn.(*amqp.ConnectionWrapper)
		if !ok {
			return nil, fmt.Errorf("invalid connection type: %T", conn)
		}

		return amqp.NewSubscriberWithConnection(*cfg, wmlogger.New(), wrapper)
	}

	p.createPublisher = func(cfg *amqp.Config, conn connection) (publisher, error) {
		wrapper, ok := conn.(*amqp.ConnectionWrapper)
		if !ok {
			return nil, fmt.Errorf("invalid connection type: %T", conn)
		}

		return amqp.NewPublisherWithConnection(*cfg, wmlogger.New(), wrapper)
	}

	// Start the service immediately.
	p.Start()

	return p
}

// Subscribe subscribes to a topic and returns the Go channel over which messages
// are sent. The returned channel will be closed when Close() is called on this struct.
func (p *PubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return p.SubscribeWithOpts(ctx, topic)
}

// SubscribeWithOpts subscribes to a topic using the given options, and returns the Go channel over which messages
// are sent. The returned channel will be closed when Close() is called on this struct.
func (p *PubSub) SubscribeWithOpts(ctx context.Context, topic string,
	opts ...spi.Option) (<-chan *message.Message, error) {
	if p.State() != lifecycle.StateStarted {
		return nil, lifecycle.ErrNotStarted
	}

	options := &spi.Options{}

	for _, opt := range opts {
		opt(options)
	}

	if options.PoolSize == 0 {
		logger.Debug("Subscribing to topic", log.WithTopic(topic))

		return p.subscriber.Subscribe(ctx, topic)
	}

	logger.Debug("Creating subscriber pool", log.WithTopic(topic), logfields.WithSize(options.PoolSize))

	pool, err := newPooledSubscriber(ctx, options.PoolSize, p.subscriber, topic)
	if err != nil {
		return nil, fmt.Errorf("subscriber pool: %w", err)
	}

	p.mutex.Lock()
	p.pools = append(p.pools, pool)
	p.mutex.Unlock()

	pool.start()

	return pool.msgChan, nil
}

// Publish publishes the given messages to the given topic.
func (p *PubSub) Publish(topic string, messages ...*message.Message) error {
	if p.State() != lifecycle.StateStarted {
		return lifecycle.ErrNotStarted
	}

	logger.Debug("Publishing messages", log.WithTopic(topic))

	if err := p.publisher.Publish(topic, messages...); err != nil {
		return errors.NewTransient(err)
	}

	return nil
}

// PublishWithOpts publishes the given message to the given topic using the given options. If a delivery
// delay is specified then the message is posted to the wait queue with an expiration, after which it is
// delivered to the given topic.
func (p *PubSub) PublishWithOpts(topic string, msg *message.Message, opts ...spi.Option) error {
	if p.State() != lifecycle.StateStarted {
		return lifecycle.ErrNotStarted
	}

	options := &spi.Options{}

	for _, opt := range opts {
		opt(options)
	}

	if options.DeliveryDelay == 0 {
		return p.Publish(topic, msg)
	}

	logger.Debug("Publishing message to wait queue", log.WithTopic(topic),
		logfields.WithMessageID(msg.UUID), logfields.WithDeliveryDelay(options.DeliveryDelay))

	err := p.waitPublisher.Publish(waitQueue,
		newMessage(msg,
			withQueue(topic),
			withExpiration(options.DeliveryDelay),
		),
	)
	if err != nil {
		return errors.NewTransient(fmt.Errorf("publish message to queue [%s]: %w", waitQueue, err))
	}

	return nil
}

// IsConnected returns true if the publisher/subscriber is connected to the message queue.
func (p *PubSub) IsConnected() bool {
	if p.State() != lifecycle.StateStarted {
		return false
	}

	return p.connMgr.isConnected()
}

// Close stops the publisher/subscriber.
func (p *PubSub) Close() error {
	p.Stop()

	return nil
}

func (p *PubSub) stop() {
	logger.Debug("Closing publishers...")

	closeResource(p.publisher)
	closeResource(p.waitPublisher)

	logger.Debug("Closing subscribers...")

	closeResource(p.subscriber)
	closeResource(p.redeliverySubscriber)
	closeResource(p.waitSubscriber)

	logger.Debug("Closing pools...")

	p.mutex.RLock()

	for _, s := range p.pools {
		s.stop()
	}

	p.mutex.RUnlock()

	if p.connMgr != nil {
		logger.Debug("Closing connections...")

		if err := p.connMgr.Close(); err != nil {
			logger.Warn("Error closing connections", log.WithError(err))
		}
	}
}

func (p *PubSub) start() {
	logger.Info("Connecting to message queue",
		logfields.WithAddress(extractEndpoint(p.Config.URI)))

	maxRetries := p.MaxConnectRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxConnectRetries
	}

	err := backoff.RetryNotify(
		func() error {
			return p.connect()
		},
		backoff.WithMaxRetries(newConnectBackOff(), maxRetries),
		func(err error, duration time.Duration) {
			logger.Debug("Error connecting to message queue. Retrying...",
				logfields.WithAddress(extractEndpoint(p.Config.URI)),
				logfields.WithBackoff(duration), log.WithError(err))
		},
	)
	if err != nil {
		panic(fmt.Sprintf("unable to connect to message queue after %d attempts", maxRetries))
	}

	retryChan, err := p.redeliverySubscriber.Subscribe(context.Background(), redeliveryQueue)
	if err != nil {
		panic(fmt.Sprintf("subscribe to queue [%s]: %s", redeliveryQueue, err))
	}

	p.redeliveryChan = retryChan

	// Initialize the wait queue so that it is created. This queue contains all messages that
	// need to wait for redelivery. There are actually no subscribers to this queue. Messages in
	// this queue have an expiration time, so when the message expires, it is automatically placed
	// back on the redelivery queue.
	err = p.waitSubscriber.SubscribeInitialize(waitQueue)
	if err != nil {
		panic(fmt.Sprintf("initialize queue [%s]: %s", waitQueue, err))
	}

	go p.processRedeliveryQueue()

	logger.Info("Successfully connected to message queue",
		logfields.WithAddress(extractEndpoint(p.Config.URI)))
}

func (p *PubSub) connect() error {
	pub, err := newPublisherPool(p.connMgr, p.MaxConnectionChannels, &p.amqpConfig, p.createPublisher)
	if err != nil {
		return err
	}

	conn, err := p.connMgr.getConnection(true)
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}

	waitPub, err := p.createPublisher(&p.amqpWaitConfig, conn)
	if err != nil {
		return err
	}

	p.publisher = pub
	p.waitPublisher = waitPub

	p.subscriber = newSubscriberMgr(p.connMgr, p.MaxConnectionChannels, false, &p.amqpConfig, p.createSubscriber)
	p.redeliverySubscriber = newSubscriberMgr(p.connMgr, p.MaxConnectionChannels, true,
		&p.amqpRedeliveryConfig, p.createSubscriber)
	p.waitSubscriber = newSubscriberMgr(p.connMgr, p.MaxConnectionChannels, true,
		&p.amqpWaitConfig, p.createSubscriber)

	return nil
}

/*
processRedeliveryQueue processes messages from the 'redelivery' queue.
The 'redelivery' queue is configured as the 'dead-letter-queue' for all queues in FediKit. When a message is rejected
by a subscriber, it is automatically sent to the 'redelivery' queue. The first time a message is rejected, the
redelivery handler immediately redelivers the message to the original destination queue. If the message is rejected
again, it is posted to a 'wait' queue and is given an expiration. The 'wait' queue has no subscribers, so the message
will sit there until it expires. The 'redelivery' queue is also configured as the 'dead-letter-queue' for the 'wait'
queue, so when the message expires, it is automatically sent back to the 'redelivery' queue and this handler processes
the message again. If the message metadata, 'reason', is set to "expired" then it is posted to the original destination
queue, otherwise (if reason is "rejected") it is posted back to the 'wait' queue with a bigger expiration. This process
repeats until the maximum number of redelivery attempts has been reached, at which point redelivery for the message is
aborted.
*/
func (p *PubSub) processRedeliveryQueue() {
	logger.Info("Starting message redelivery listener")

	for msg := range p.redeliveryChan {
		p.handleRedelivery(msg)
	}

	logger.Info("Message redelivery listener stopped")
}

func (p *PubSub) handleRedelivery(msg *message.Message) {
	logger.Debug("Got new message for redelivery", logfields.WithMessageID(msg.UUID),
		logfields.WithMetadata(msg.Metadata))

	queue, err := getQueue(msg)
	if err != nil {
		logger.Warn("Error resolving queue for message. Message will not be redelivered.",
			logfields.WithMessageID(msg.UUID), log.WithError(err))

		msg.Ack()

		return
	}

	redeliveryAttempts := getRedeliveryAttempts(msg)

	if redeliveryAttempts < p.MaxRedeliveryAttempts {
		err = p.redeliver(msg, queue, redeliveryAttempts)
		if err != nil {
			logger.Error("Error redelivering message. The message will be nacked and retried.",
				logfields.WithMessageID(msg.UUID), log.WithError(err))

			// Nack the message so that it may be retried.
			msg.Nack()

			return
		}
	} else {
		logger.Error("Message will not be redelivered since the maximum number of redelivery attempts has been reached",
			logfields.WithMessageID(msg.UUID), log.WithTopic(queue), logfields.WithRetries(redeliveryAttempts))
	}

	msg.Ack()
}

func (p *PubSub) redeliver(msg *message.Message, queue string, redeliveryAttempts int) error {
	// Publish the message immediately on the first attempt and after every expiration.
	if redeliveryAttempts == 0 || msg.Metadata[metadataFirstDeathReason] == expiredReason {
		redeliveryAttempts++

		err := p.publisher.Publish(queue,
			newMessage(msg,
				withQueue(queue),
				withRedeliveryAttempts(redeliveryAttempts),
			),
		)
		if err != nil {
			return fmt.Errorf("publish message to queue [%s]: %w", queue, err)
		}

		logger.Info("Posted message for redelivery", logfields.WithMessageID(msg.UUID),
			log.WithTopic(queue), logfields.WithRetries(redeliveryAttempts))

		return nil
	}

	expiration := p.getRedeliveryInterval(redeliveryAttempts)

	// Post the message to the wait queue with the given expiration so that it isn't immediately redelivered.
	err := p.waitPublisher.Publish(waitQueue,
		newMessage(msg,
			withQueue(queue),
			withExpiration(expiration),
		),
	)
	if err != nil {
		return fmt.Errorf("publish message to queue [%s]: %w", waitQueue, err)
	}

	logger.Info("Posted message to wait queue for redelivery", logfields.WithMessageID(msg.UUID),
		log.WithTopic(waitQueue), logfields.WithDeliveryDelay(expiration), logfields.WithRetries(redeliveryAttempts))

	return nil
}

func (p *PubSub) getRedeliveryInterval(attempts int) time.Duration {
	if attempts == 0 {
		return 0
	}

	if attempts == 1 {
		return p.RedeliveryInitialInterval
	}

	interval := time.Duration(float64(p.RedeliveryInitialInterval) * math.Pow(p.RedeliveryMultiplier, float64(attempts-1)))

	if interval > p.MaxRedeliveryInterval {
		interval = p.MaxRedeliveryInterval
	}

	return interval
}

func closeResource(c closeable) {
	if c == nil {
		return
	}

	if err := c.Close(); err != nil {
		logger.Warn("Error closing resource", log.WithError(err))
	}
}

func newConnectBackOff() backoff.BackOff {
	b := &backoff.ExponentialBackOff{
		InitialInterval:     backoff.DefaultInitialInterval,
		RandomizationFactor: backoff.DefaultRandomizationFactor,
		Multiplier:          backoff.DefaultMultiplier,
		MaxInterval:         defaultMaxConnectInterval,
		MaxElapsedTime:      defaultMaxConnectElapsedTime,
		Clock:               backoff.SystemClock,
	}

	b.Reset()

	return b
}

type connectionMgr struct {
	config           amqp.ConnectionConfig
	createConnection createConnectionFunc
	mutex            sync.Mutex
	connections      []connection
	sharedConnection connection
}

func newConnectionMgr(cfg amqp.ConnectionConfig) *connectionMgr {
	return &connectionMgr{
		config: cfg,
		createConnection: func(cfg amqp.ConnectionConfig) (connection, error) {
			return amqp.NewConnection(cfg, wmlogger.New())
		},
	}
}

// getConnection returns a connection to the AMQP server. If shared is true then an existing (shared)
// connection is returned (one is created if it doesn't exist), otherwise a new connection is returned.
func (m *connectionMgr) getConnection(shared bool) (connection, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if shared && m.sharedConnection != nil {
		return m.sharedConnection, nil
	}

	logger.Debug("Creating new AMQP connection",
		logfields.WithAddress(extractEndpoint(m.config.AmqpURI)))

	conn, err := m.createConnection(m.config)
	if err != nil {
		return nil, fmt.Errorf("create connection: %w", err)
	}

	m.connections = append(m.connections, conn)

	if shared {
		m.sharedConnection = conn
	}

	logger.Info("Created new AMQP connection", logfields.WithTotal(len(m.connections)),
		logfields.WithAddress(extractEndpoint(m.config.AmqpURI)))

	return conn, nil
}

func (m *connectionMgr) isConnected() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, conn := range m.connections {
		if !conn.IsConnected() {
			return false
		}
	}

	return true
}

func (m *connectionMgr) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	logger.Debug("Closing AMQP connections", logfields.WithTotal(len(m.connections)))

	var lastErr error

	for _, conn := range m.connections {
		if err := conn.Close(); err != nil {
			lastErr = err
		}
	}

	m.connections = nil
	m.sharedConnection = nil

	return lastErr
}

type subscriberInfo struct {
	subscriber initializingSubscriber
	channels   int
}

// subscriberConnectionMgr manages the number of channels per connection. A new subscriber
// (and connection) is created after the maximum number of channels on the current connection
// has been reached.
type subscriberConnectionMgr struct {
	cfg              *amqp.Config
	connMgr          connMgr
	createSubscriber createSubscriberFunc
	sharedConnection bool
	channelLimit     int
	mutex            sync.RWMutex
	subscribers      []*subscriberInfo
	current          *subscriberInfo
}

func newSubscriberMgr(connMgr connMgr, channelLimit int, sharedConnection bool, cfg *amqp.Config,
	createSubscriber createSubscriberFunc) *subscriberConnectionMgr {
	return &subscriberConnectionMgr{
		cfg:              cfg,
		connMgr:          connMgr,
		createSubscriber: createSubscriber,
		sharedConnection: sharedConnection,
		channelLimit:     channelLimit,
	}
}

func (m *subscriberConnectionMgr) Close() error {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	logger.Debug("Closing subscribers", logfields.WithTotal(len(m.subscribers)))

	for _, s := range m.subscribers {
		if err := s.subscriber.Close(); err != nil {
			logger.Warn("Error closing subscriber", log.WithError(err))
		}
	}

	return nil
}

func (m *subscriberConnectionMgr) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	s, err := m.get()
	if err != nil {
		return nil, err
	}

	return s.Subscribe(ctx, topic)
}

func (m *subscriberConnectionMgr) SubscribeInitialize(topic string) error {
	s, err := m.get()
	if err != nil {
		return err
	}

	return s.SubscribeInitialize(topic)
}

func (m *subscriberConnectionMgr) get() (initializingSubscriber, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.current == nil || m.current.channels >= m.channelLimit {
		logger.Debug("Creating new subscriber")

		conn, err := m.connMgr.getConnection(m.sharedConnection)
		if err != nil {
			return nil, fmt.Errorf("get connection: %w", err)
		}

		s, err := m.createSubscriber(m.cfg, conn)
		if err != nil {
			return nil, err
		}

		newCurrent := &subscriberInfo{subscriber: s}

		m.subscribers = append(m.subscribers, newCurrent)
		m.current = newCurrent

		logger.Info("Created new subscriber", logfields.WithTotal(len(m.subscribers)))
	}

	m.current.channels++

	logger.Debug("Added subscription channel", logfields.WithTotal(len(m.subscribers)),
		logfields.WithSize(m.current.channels))

	return m.current.subscriber, nil
}

// extractEndpoint returns the endpoint of the AMQP URL, i.e. everything after @.
func extractEndpoint(amqpURL string) string {
	i := strings.Index(amqpURL, "://")
	if i < 0 {
		return ""
	}

	path := amqpURL[i+3:]

	j := strings.Index(path, "@")
	if j < 0 {
		return path
	}

	return path[j+1:]
}

func getRedeliveryAttempts(msg *message.Message) int {
	var count int

	countValue, ok := msg.Metadata[metadataRedeliveryCount]
	if ok {
		c, err := strconv.ParseInt(countValue, 10, 0)
		if err != nil {
			logger.Warn("Invalid redelivery count in message metadata. Count will be set to 0.",
				logfields.WithMessageID(msg.UUID), logfields.WithProperty(metadataRedeliveryCount),
				log.WithError(err))
		} else {
			count = int(c)
		}
	}

	return count
}

func getQueue(msg *message.Message) (string, error) {
	queue, ok := msg.Metadata[metadataQueue]
	if ok {
		return queue, nil
	}

	queue, ok = msg.Metadata[metadataFirstDeathQueue]
	if ok {
		return queue, nil
	}

	logger.Warn("Queue metadata not found in message. The message will not be redelivered.",
		logfields.WithMessageID(msg.UUID), logfields.WithProperty(metadataFirstDeathQueue))

	return "", fmt.Errorf("metadata not found: %s", metadataFirstDeathQueue)
}

type messageOptions struct {
	queue              string
	expiration         time.Duration
	redeliveryAttempts int
}

type messageOpt func(*messageOptions)

func withQueue(queue string) messageOpt {
	return func(options *messageOptions) {
		options.queue = queue
	}
}

func withExpiration(expiration time.Duration) messageOpt {
	return func(options *messageOptions) {
		options.expiration = expiration
	}
}

func withRedeliveryAttempts(attempts int) messageOpt {
	return func(options *messageOptions) {
		options.redeliveryAttempts = attempts
	}
}

func newMessage(msg *message.Message, opts ...messageOpt) *message.Message {
	options := &messageOptions{}

	for _, opt := range opts {
		opt(options)
	}

	newMsg := msg.Copy()

	// The metadata containing x-death info must be deleted since an error occurs when posting with this metadata.
	delete(newMsg.Metadata, metadataDeath)

	newMsg.Metadata.Set(metadataQueue, options.queue)

	if options.expiration > 0 {
		newMsg.Metadata.Set(metadataExpiration, options.expiration.String())
	} else {
		delete(newMsg.Metadata, metadataExpiration)
	}

	if options.redeliveryAttempts > 0 {
		newMsg.Metadata.Set(metadataRedeliveryCount, strconv.FormatInt(int64(options.redeliveryAttempts), 10))
	}

	return newMsg
}

func newQueueConfig(cfg Config) amqp.Config {
	queueConfig := newDefaultQueueConfig(cfg)
	queueConfig.Exchange = newAMQPExchangeConfig(exchange)
	queueConfig.Queue = newAMQPQueueConfig(amqp091.Table{
		metadataDeadLetterRoutingKey: redeliveryQueue,
		metadataDeadLetterExchange:   redeliveryExchange,
	})

	return queueConfig
}

func newRedeliveryQueueConfig(cfg Config) amqp.Config {
	queueConfig := newDefaultQueueConfig(cfg)
	queueConfig.Exchange = newAMQPExchangeConfig(redeliveryExchange)
	queueConfig.Consume = amqp.ConsumeConfig{
		Qos:             amqp.QosConfig{PrefetchCount: 1},
		NoRequeueOnNack: false, // Ensure that the message is re-queued if the server goes down before it is Acked.
	}

	return queueConfig
}

func newWaitQueueConfig(cfg Config) amqp.Config {
	queueConfig := newDefaultQueueConfig(cfg)
	queueConfig.Exchange = newAMQPExchangeConfig(waitExchange)
	queueConfig.Queue = newAMQPQueueConfig(amqp091.Table{
		metadataDeadLetterRoutingKey: redeliveryQueue,
		metadataDeadLetterExchange:   redeliveryExchange,
	})

	return queueConfig
}

func newDefaultQueueConfig(cfg Config) amqp.Config {
	return amqp.Config{
		Connection: amqp.ConnectionConfig{AmqpURI: cfg.URI},
		Marshaler:  &DefaultMarshaler{},
		Queue:      newAMQPQueueConfig(nil),
		QueueBind: amqp.QueueBindConfig{
			GenerateRoutingKey: func(queue string) string { return queue },
		},
		Publish: amqp.PublishConfig{
			GenerateRoutingKey: func(queue string) string { return queue },
			ChannelPoolSize:    cfg.PublisherChannelPoolSize,
			ConfirmDelivery:    cfg.PublisherConfirmDelivery,
		},
		Consume: amqp.ConsumeConfig{
			Qos:             amqp.QosConfig{PrefetchCount: 1},
			NoRequeueOnNack: true,
		},
		TopologyBuilder: &amqp.DefaultTopologyBuilder{},
	}
}

func newAMQPExchangeConfig(exchange string) amqp.ExchangeConfig {
	return amqp.ExchangeConfig{
		GenerateName: func(topic string) string {
			return exchange
		},
		Type:    directExchangeType,
		Durable: true,
	}
}

func newAMQPQueueConfig(args amqp091.Table) amqp.QueueConfig {
	return amqp.QueueConfig{
		GenerateName: amqp.GenerateQueueNameTopicName,
		Durable:      true,
		Arguments:    args,
	}
}

func initConfig(cfg Config) Config {
	if cfg.MaxConnectionChannels == 0 {
		cfg.MaxConnectionChannels = defaultMaxConnectionChannels
	}

	if cfg.MaxRedeliveryAttempts == 0 {
		cfg.MaxRedeliveryAttempts = defaultMaxRedeliveryAttempts
	}

	if cfg.RedeliveryMultiplier == 0 {
		cfg.RedeliveryMultiplier = defaultRedeliveryMultiplier
	}

	if cfg.RedeliveryInitialInterval == 0 {
		cfg.RedeliveryInitialInterval = defaultRedeliveryInitialInterval
	}

	if cfg.MaxRedeliveryInterval == 0 {
		cfg.MaxRedeliveryInterval = defaultMaxRedeliveryInterval
	}

	return cfg
}

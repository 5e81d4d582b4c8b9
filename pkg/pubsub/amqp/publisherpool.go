/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package amqp

import (
	"fmt"
	"sync/atomic"

	"github.com/ThreeDotsLabs/watermill-amqp/v2/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
)

type createPublisherFunc func(cfg *amqp.Config, conn connection) (publisher, error)

// publisherPool spreads the publisher channels over multiple connections. The number of
// connections is determined by the configured channel pool size and the maximum number
// of channels per connection. Publishes are load balanced over the connections in
// round-robin fashion.
type publisherPool struct {
	publishers []publisher
	lb         *roundRobin
}

func newPublisherPool(connMgr connMgr, maxChannelsPerConn int, cfg *amqp.Config,
	createPublisher createPublisherFunc) (*publisherPool, error) {
	publishers, err := createPublishers(connMgr, maxChannelsPerConn, cfg, createPublisher)
	if err != nil {
		return nil, fmt.Errorf("create publishers: %w", err)
	}

	return &publisherPool{
		publishers: publishers,
		lb:         newRoundRobin(len(publishers) - 1),
	}, nil
}

func (p *publisherPool) Publish(topic string, messages ...*message.Message) error {
	i := p.lb.nextIndex()

	if len(p.publishers) > 1 {
		logger.Debug("Using publisher", logfields.WithIndex(i))
	}

	return p.publishers[i].Publish(topic, messages...)
}

func (p *publisherPool) Close() error {
	logger.Debug("Closing publisher pool", logfields.WithTotal(len(p.publishers)))

	var lastErr error

	for _, pub := range p.publishers {
		if err := pub.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}

func createPublishers(connMgr connMgr, maxChannelsPerConn int, cfg *amqp.Config,
	createPublisher createPublisherFunc) ([]publisher, error) {
	numPublishers := numConnections(cfg.Publish.ChannelPoolSize, maxChannelsPerConn)

	newCfg := *cfg

	// Split the channels evenly across the connections.
	newCfg.Publish.ChannelPoolSize /= numPublishers

	publishers := make([]publisher, 0, numPublishers)

	for i := 0; i < numPublishers; i++ {
		conn, err := connMgr.getConnection(false)
		if err != nil {
			return nil, fmt.Errorf("get connection: %w", err)
		}

		pub, err := createPublisher(&newCfg, conn)
		if err != nil {
			return nil, fmt.Errorf("new publisher: %w", err)
		}

		publishers = append(publishers, pub)
	}

	logger.Info("Created publisher connections, each with its own channel pool",
		logfields.WithTotal(len(publishers)), logfields.WithSize(newCfg.Publish.ChannelPoolSize),
		logfields.WithAddress(extractEndpoint(newCfg.Connection.AmqpURI)))

	return publishers, nil
}

func numConnections(channelPoolSize, maxChannelsPerConn int) int {
	if channelPoolSize == 0 {
		return 1
	}

	n := channelPoolSize / maxChannelsPerConn

	if channelPoolSize%maxChannelsPerConn > 0 {
		n++
	}

	return n
}

// roundRobin returns indexes from 0 to max, cycling back to 0 after max.
type roundRobin struct {
	size    uint64
	counter uint64
}

func newRoundRobin(max int) *roundRobin {
	return &roundRobin{size: uint64(max) + 1}
}

func (r *roundRobin) nextIndex() int {
	return int((atomic.AddUint64(&r.counter, 1) - 1) % r.size)
}

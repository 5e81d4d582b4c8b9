/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package amqp

import (
	"context"
	"fmt"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/trustbloc/logutil-go/pkg/log"

	logfields "github.com/fedikit/fedikit/internal/pkg/log"
)

// pooledSubscriber manages a pool of subscriptions on the same topic. Messages from
// all subscriptions are forwarded to a single Go channel that is consumed by the
// subscriber.
type pooledSubscriber struct {
	topic    string
	msgChan  chan *message.Message
	channels []<-chan *message.Message
	wg       sync.WaitGroup
	logger   *log.Log
}

func newPooledSubscriber(ctx context.Context, size int, subscriber subscriber,
	topic string) (*pooledSubscriber, error) {
	l := log.New(loggerModule, log.WithFields(log.WithTopic(topic)))

	p := &pooledSubscriber{
		topic:    topic,
		msgChan:  make(chan *message.Message, size),
		channels: make([]<-chan *message.Message, size),
		logger:   l,
	}

	for i := 0; i < size; i++ {
		l.Debug("Subscribing to topic...", logfields.WithIndex(i))

		msgChan, err := subscriber.Subscribe(ctx, topic)
		if err != nil {
			return nil, fmt.Errorf("subscribe to topic [%s]: %w", topic, err)
		}

		p.channels[i] = msgChan
	}

	return p, nil
}

func (s *pooledSubscriber) start() {
	s.logger.Info("Starting pooled subscriber", logfields.WithSize(len(s.channels)))

	s.wg.Add(len(s.channels))

	for i, msgChan := range s.channels {
		go s.forward(i, msgChan)
	}
}

func (s *pooledSubscriber) forward(i int, msgChan <-chan *message.Message) {
	defer s.wg.Done()

	for msg := range msgChan {
		s.logger.Debug("Pool subscriber got message", logfields.WithIndex(i),
			logfields.WithMessageID(msg.UUID))

		s.msgChan <- msg
	}

	s.logger.Info("Message channel was closed. Exiting pooled subscriber.", logfields.WithIndex(i))
}

// stop waits for all of the forwarders to exit (which happens after the underlying
// subscriptions are closed) and then closes the subscriber channel.
func (s *pooledSubscriber) stop() {
	s.logger.Info("Closing pooled subscriber")

	s.wg.Wait()

	close(s.msgChan)
}

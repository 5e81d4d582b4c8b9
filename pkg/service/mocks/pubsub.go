/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	pubsubspi "github.com/fedikit/fedikit/pkg/pubsub/spi"
)

// MockPubSub implements a mock publisher-subscriber.
type MockPubSub struct {
	Err error

	mutex    sync.Mutex
	msgChans map[string]chan *message.Message
	closed   bool
}

// NewPubSub returns a mock publisher-subscriber.
func NewPubSub() *MockPubSub {
	return &MockPubSub{
		msgChans: make(map[string]chan *message.Message),
	}
}

// WithError injects an error into the mock publisher-subscriber.
func (m *MockPubSub) WithError(err error) *MockPubSub {
	m.Err = err

	return m
}

// Subscribe subscribes to the given topic.
func (m *MockPubSub) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	return m.msgChan(topic), nil
}

// SubscribeWithOpts subscribes to the given topic.
func (m *MockPubSub) SubscribeWithOpts(ctx context.Context, topic string,
	opts ...pubsubspi.Option) (<-chan *message.Message, error) {
	return m.Subscribe(ctx, topic)
}

// Publish publishes the messages to the subscriber of the given topic. Messages
// published to a topic with no subscriber are dropped.
func (m *MockPubSub) Publish(topic string, messages ...*message.Message) error {
	if m.Err != nil {
		return m.Err
	}

	m.mutex.Lock()
	msgChan, ok := m.msgChans[topic]
	m.mutex.Unlock()

	if !ok {
		return nil
	}

	for _, msg := range messages {
		msgChan <- msg
	}

	return nil
}

// Close closes the subscriber channels.
func (m *MockPubSub) Close() error {
	if m.Err != nil {
		return m.Err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.closed {
		return nil
	}

	m.closed = true

	for _, msgChan := range m.msgChans {
		close(msgChan)
	}

	return nil
}

func (m *MockPubSub) msgChan(topic string) chan *message.Message {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	msgChan, ok := m.msgChans[topic]
	if !ok {
		msgChan = make(chan *message.Message)
		m.msgChans[topic] = msgChan
	}

	return msgChan
}

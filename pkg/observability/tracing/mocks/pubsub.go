/*
Copyright FediKit Contributors. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mocks

import (
	"context"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/fedikit/fedikit/pkg/pubsub/spi"
)

// PubSub implements a mock publisher/subscriber.
type PubSub struct {
	mutex sync.Mutex

	subscribeChan         <-chan *message.Message
	subscribeErr          error
	subscribeWithOptsChan <-chan *message.Message
	subscribeWithOptsErr  error
	publishErr            error
	publishWithOptsErr    error
	closeErr              error
	connected             bool
}

// SubscribeReturns sets the mock values to be returned from Subscribe.
func (m *PubSub) SubscribeReturns(msgChan <-chan *message.Message, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscribeChan = msgChan
	m.subscribeErr = err
}

// SubscribeWithOptsReturns sets the mock values to be returned from SubscribeWithOpts.
func (m *PubSub) SubscribeWithOptsReturns(msgChan <-chan *message.Message, err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.subscribeWithOptsChan = msgChan
	m.subscribeWithOptsErr = err
}

// PublishReturns sets the mock error to be returned from Publish.
func (m *PubSub) PublishReturns(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.publishErr = err
}

// PublishWithOptsReturns sets the mock error to be returned from PublishWithOpts.
func (m *PubSub) PublishWithOptsReturns(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.publishWithOptsErr = err
}

// CloseReturns sets the mock error to be returned from Close.
func (m *PubSub) CloseReturns(err error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.closeErr = err
}

// IsConnectedReturns sets the mock value to be returned from IsConnected.
func (m *PubSub) IsConnectedReturns(connected bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.connected = connected
}

// Subscribe returns the mock channel and error.
func (m *PubSub) Subscribe(_ context.Context, _ string) (<-chan *message.Message, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.subscribeChan, m.subscribeErr
}

// SubscribeWithOpts returns the mock channel and error.
func (m *PubSub) SubscribeWithOpts(_ context.Context, _ string, _ ...spi.Option) (<-chan *message.Message, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.subscribeWithOptsChan, m.subscribeWithOptsErr
}

// Publish returns the mock error.
func (m *PubSub) Publish(_ string, _ ...*message.Message) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.publishErr
}

// PublishWithOpts returns the mock error.
func (m *PubSub) PublishWithOpts(_ string, _ *message.Message, _ ...spi.Option) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.publishWithOptsErr
}

// IsConnected returns the mock value.
func (m *PubSub) IsConnected() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.connected
}

// Close returns the mock error.
func (m *PubSub) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	return m.closeErr
}
